package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func stub(net string) Entry {
	return Entry{
		EmployeeID: "emp-001",
		GrossPay:   d("5000.00"),
		Taxes: []TaxLine{
			{Name: "Federal Income Tax", Amount: d("600.00")},
			{Name: "Social Security", Amount: d("310.00")},
			{Name: "Medicare", Amount: d("72.50")},
		},
		Deductions: []Deduction{
			{Name: "401k", Amount: d("250.00"), Type: DeductionPreTax},
			{Name: "Garnishment", Amount: d("100.00"), Type: DeductionPostTax},
		},
		NetPayClaimed: d(net),
		Currency:      CurrencyUSD,
	}
}

func TestVerifyGrossToNet(t *testing.T) {
	t.Run("exact match verifies", func(t *testing.T) {
		result := VerifyGrossToNet(stub("3667.50"))
		assert.True(t, result.Verified)
		assert.True(t, result.RecalculatedNetPay.Equal(d("3667.50")))
		assert.True(t, result.Discrepancy.IsZero())
	})

	t.Run("scale differences do not matter", func(t *testing.T) {
		result := VerifyGrossToNet(stub("3667.5"))
		assert.True(t, result.Verified)
	})

	t.Run("one cent off is caught", func(t *testing.T) {
		result := VerifyGrossToNet(stub("3667.51"))
		assert.False(t, result.Verified)
		assert.True(t, result.Discrepancy.Equal(d("-0.01")))
		assert.Equal(t,
			"Mathematical discrepancy detected. Claimed net: 3667.51, calculated: 3667.50. Diff: -0.01",
			result.Message)
	})

	t.Run("binary float drift does not occur", func(t *testing.T) {
		entry := Entry{
			GrossPay:      d("0.3"),
			Taxes:         []TaxLine{{Name: "a", Amount: d("0.1")}, {Name: "b", Amount: d("0.1")}},
			NetPayClaimed: d("0.1"),
		}
		assert.True(t, VerifyGrossToNet(entry).Verified)
	})

	t.Run("no taxes or deductions", func(t *testing.T) {
		result := VerifyGrossToNet(Entry{GrossPay: d("100"), NetPayClaimed: d("100.00")})
		assert.True(t, result.Verified)
	})
}

func TestParseCurrency(t *testing.T) {
	c, ok := ParseCurrency("")
	assert.True(t, ok)
	assert.Equal(t, CurrencyUSD, c)

	c, ok = ParseCurrency("GBP")
	assert.True(t, ok)
	assert.Equal(t, CurrencyGBP, c)

	_, ok = ParseCurrency("usd")
	assert.False(t, ok)
}

func TestDeductionTypeValid(t *testing.T) {
	assert.True(t, DeductionPreTax.Valid())
	assert.True(t, DeductionPostTax.Valid())
	assert.False(t, DeductionType("ROTH").Valid())
}

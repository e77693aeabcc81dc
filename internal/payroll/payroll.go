// Package payroll recomputes net pay from its parts and compares it with a
// claimed figure. This is pure domain logic - no I/O, no side effects.
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is the ISO code a payroll entry is denominated in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// ParseCurrency recognises the supported currencies. Empty means USD.
func ParseCurrency(s string) (Currency, bool) {
	switch c := Currency(s); c {
	case "":
		return CurrencyUSD, true
	case CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return c, true
	}
	return "", false
}

// DeductionType separates pre-tax deductions (401k, health insurance) from
// post-tax ones (Roth 401k, garnishments). Both reduce net pay equally.
type DeductionType string

const (
	DeductionPreTax  DeductionType = "PRE_TAX"
	DeductionPostTax DeductionType = "POST_TAX"
)

// Valid reports whether t is a known deduction type.
func (t DeductionType) Valid() bool {
	return t == DeductionPreTax || t == DeductionPostTax
}

// TaxLine is one withheld tax, e.g. "Federal Income Tax".
type TaxLine struct {
	Name   string
	Amount decimal.Decimal
}

// Deduction is one non-tax deduction.
type Deduction struct {
	Name   string
	Amount decimal.Decimal
	Type   DeductionType
}

// Entry is a single pay stub under verification.
type Entry struct {
	EmployeeID    string
	GrossPay      decimal.Decimal
	Taxes         []TaxLine
	Deductions    []Deduction
	NetPayClaimed decimal.Decimal
	Currency      Currency
}

// Result is the verdict. Discrepancy is recalculated minus claimed, so a
// positive value means the claim underpays.
type Result struct {
	Verified           bool
	RecalculatedNetPay decimal.Decimal
	Discrepancy        decimal.Decimal
	Message            string
}

// VerifyGrossToNet checks that gross pay minus taxes minus deductions equals
// the claimed net pay exactly. No rounding tolerance is applied.
func VerifyGrossToNet(entry Entry) Result {
	totalTax := decimal.Zero
	for _, t := range entry.Taxes {
		totalTax = totalTax.Add(t.Amount)
	}
	totalDeductions := decimal.Zero
	for _, d := range entry.Deductions {
		totalDeductions = totalDeductions.Add(d.Amount)
	}

	net := entry.GrossPay.Sub(totalTax).Sub(totalDeductions)
	diff := net.Sub(entry.NetPayClaimed)

	if diff.IsZero() {
		return Result{
			Verified:           true,
			RecalculatedNetPay: net,
			Discrepancy:        diff,
			Message:            "Net pay matches gross minus taxes and deductions.",
		}
	}
	return Result{
		Verified:           false,
		RecalculatedNetPay: net,
		Discrepancy:        diff,
		Message: fmt.Sprintf("Mathematical discrepancy detected. Claimed net: %s, calculated: %s. Diff: %s",
			entry.NetPayClaimed.StringFixed(2), net.StringFixed(2), diff.StringFixed(2)),
	}
}

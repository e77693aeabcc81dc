package relatedparty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		loan    Loan
		risk    Risk
		message string
	}{
		{
			name: "loan to director is barred",
			loan: Loan{LenderType: "private_company", BorrowerRole: "Director", InterestRate: rate("12"), MarketRate: rate("8")},
			risk: RiskInsiderBorrower,
			message: "Loans to Director are prohibited under Section 185 unless specific exemptions apply " +
				"(MD/WTD + Employee Scheme).",
		},
		{
			name: "spaces in role are normalized",
			loan: Loan{BorrowerRole: "holding company director", InterestRate: rate("12"), MarketRate: rate("8")},
			risk: RiskInsiderBorrower,
			message: "Loans to holding company director are prohibited under Section 185 unless specific exemptions apply " +
				"(MD/WTD + Employee Scheme).",
		},
		{
			name:    "below market rate to unrelated borrower",
			loan:    Loan{BorrowerRole: "subsidiary", InterestRate: rate("6.5"), MarketRate: rate("7.25")},
			risk:    RiskBelowMarketYield,
			message: "Interest rate 6.5% is below market yield 7.25%. Must charge commercial rate.",
		},
		{
			name: "at market rate is allowed",
			loan: Loan{BorrowerRole: "subsidiary", InterestRate: rate("7.25"), MarketRate: rate("7.25")},
			risk: RiskNone,
		},
		{
			name: "rates default to zero",
			loan: Loan{BorrowerRole: "vendor"},
			risk: RiskNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Verify(tt.loan)
			assert.Equal(t, tt.risk == RiskNone, got.Verified)
			assert.Equal(t, tt.risk, got.Risk)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, "PARTNER_OF_DIRECTOR", NormalizeRole("partner of director"))
}

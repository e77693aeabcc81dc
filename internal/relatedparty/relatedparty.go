// Package relatedparty guards corporate loans to insiders: loans to directors
// and their relatives are barred, and other corporate loans must carry at
// least the market rate.
package relatedparty

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Risk names the provision a loan breaches.
type Risk string

const (
	RiskNone             Risk = ""
	RiskInsiderBorrower  Risk = "SECTION_185_VIOLATION"
	RiskBelowMarketYield Risk = "SECTION_186_VIOLATION"
)

// prohibitedRoles are matched as substrings of the normalized borrower role.
var prohibitedRoles = []string{
	"DIRECTOR",
	"DIRECTOR_RELATIVE",
	"PARTNER",
	"PARTNER_OF_DIRECTOR",
	"HOLDING_COMPANY_DIRECTOR",
}

// Loan is one corporate loan under audit. Rates are percentages.
type Loan struct {
	LenderType   string
	BorrowerRole string
	InterestRate decimal.Decimal
	MarketRate   decimal.Decimal
}

// Result is the loan verdict. Message is non-empty iff Verified is false.
type Result struct {
	Verified bool
	Risk     Risk
	Message  string
}

// NormalizeRole upper-cases role and joins words with underscores.
func NormalizeRole(role string) string {
	return strings.ReplaceAll(strings.ToUpper(role), " ", "_")
}

// Verify checks the borrower first; an insider loan is blocked whatever its rate.
func Verify(loan Loan) Result {
	role := NormalizeRole(loan.BorrowerRole)
	for _, prohibited := range prohibitedRoles {
		if strings.Contains(role, prohibited) {
			return Result{
				Verified: false,
				Risk:     RiskInsiderBorrower,
				Message: fmt.Sprintf("Loans to %s are prohibited under Section 185 unless specific exemptions apply (MD/WTD + Employee Scheme).",
					loan.BorrowerRole),
			}
		}
	}

	if loan.InterestRate.LessThan(loan.MarketRate) {
		return Result{
			Verified: false,
			Risk:     RiskBelowMarketYield,
			Message: fmt.Sprintf("Interest rate %s%% is below market yield %s%%. Must charge commercial rate.",
				loan.InterestRate.String(), loan.MarketRate.String()),
		}
	}
	return Result{Verified: true}
}

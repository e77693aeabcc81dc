// Package remittance enforces Liberalised Remittance Scheme (LRS) rules on
// outbound foreign remittances.
package remittance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AnnualLimitUSD is the per-person LRS ceiling for one financial year.
var AnnualLimitUSD = decimal.NewFromInt(250000)

// prohibitedPurposes are matched as upper-case substrings of the declared purpose.
var prohibitedPurposes = []string{
	"GAMBLING",
	"LOTTERY",
	"RACING",
	"BANNED_MAGAZINES",
	"SWEEPSTAKES",
	"MARGIN_TRADING",
}

// Result is the remittance verdict. Message is non-empty iff Verified is false.
type Result struct {
	Verified bool
	Message  string
}

// Prohibited reports whether purpose falls under a prohibited category.
func Prohibited(purpose string) bool {
	p := strings.ToUpper(purpose)
	for _, banned := range prohibitedPurposes {
		if strings.Contains(p, banned) {
			return true
		}
	}
	return false
}

// VerifyLRS checks a remittance of amountUSD for purpose, given the amount
// already remitted this financial year. Prohibited purposes are rejected
// before the limit is considered. Reaching the limit exactly is allowed.
func VerifyLRS(amountUSD decimal.Decimal, purpose string, fyUsage decimal.Decimal) Result {
	if Prohibited(purpose) {
		return Result{
			Verified: false,
			Message:  fmt.Sprintf("BLOCKED: Remittance for '%s' is strictly prohibited under FEMA Schedule I.", purpose),
		}
	}
	if fyUsage.Add(amountUSD).GreaterThan(AnnualLimitUSD) {
		return Result{
			Verified: false,
			Message: fmt.Sprintf("BLOCKED: Transaction exceeds LRS limit ($250,000). Remaining: $%s",
				AnnualLimitUSD.Sub(fyUsage).String()),
		}
	}
	return Result{Verified: true}
}

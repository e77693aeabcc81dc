// Package setoff guards trading loss set-offs: a speculative (intraday) loss
// may only reduce speculative income.
package setoff

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const speculativeMarker = "intraday"

// Result is the set-off verdict. Message is non-empty iff Verified is false
// and carries both the violation and the required treatment.
type Result struct {
	Verified bool
	Message  string
}

// IsSpeculative reports whether an income head is speculative. Any head that
// mentions intraday trading counts, case-insensitively.
func IsSpeculative(head string) bool {
	return strings.Contains(strings.ToLower(head), speculativeMarker)
}

// Verify checks whether a loss booked under lossHead may be set off against
// income under offsetHead. F&O is non-speculative business income and
// delivery trades are capital gains; neither can absorb an intraday loss.
func Verify(lossHead string, lossAmount decimal.Decimal, offsetHead string) Result {
	if IsSpeculative(lossHead) && !IsSpeculative(offsetHead) {
		amount := lossAmount.String()
		return Result{
			Verified: false,
			Message: fmt.Sprintf(
				"Illegal Set-Off: Intraday (Speculative) loss of %s cannot reduce %s. "+
					"Loss of %s must be CARRIED FORWARD (4 years). It cannot be consumed now.",
				amount, strings.ToLower(offsetHead), amount),
		}
	}
	return Result{Verified: true}
}

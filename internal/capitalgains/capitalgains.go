// Package capitalgains classifies a disposal as short or long term by its
// holding period and checks a claimed tax rate against the statutory one.
package capitalgains

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Term is the holding-period classification.
type Term string

const (
	ShortTerm Term = "STCG"
	LongTerm  Term = "LTCG"
)

// defaultHoldingDays applies to asset types without their own threshold.
const defaultHoldingDays = 1095

// holdingDays is the number of days an asset must be held beyond to be long term.
var holdingDays = map[string]int{
	"equity":      365,
	"real_estate": 730,
	"debt_fund":   0,
	"debt":        1095,
}

// slabRate marks a term taxed at the holder's income slab; any claim passes.
const slabRate = "SLAB"

var statutoryRates = map[string]string{
	"equity_LTCG": "12.5",
	"equity_STCG": "20",
	"debt_LTCG":   slabRate,
	"debt_STCG":   slabRate,
}

// Holding describes one disposal under audit.
type Holding struct {
	AssetType   string
	Purchased   time.Time
	Sold        time.Time
	ClaimedRate string
}

// Result is the rate verdict. Message is non-empty iff Verified is false.
type Result struct {
	Verified bool
	Term     Term
	Message  string
}

// DetermineTerm returns LongTerm when the asset was held strictly longer
// than its threshold. Dates are compared as calendar days.
func DetermineTerm(purchased, sold time.Time, assetType string) Term {
	limit, ok := holdingDays[strings.ToLower(assetType)]
	if !ok {
		limit = defaultHoldingDays
	}
	if daysBetween(purchased, sold) > limit {
		return LongTerm
	}
	return ShortTerm
}

// VerifyRate checks the claimed rate (with or without a trailing %) against
// the statutory rate for the asset and term. Combinations without a fixed
// rate always pass.
func VerifyRate(assetType string, term Term, claimedRate string) Result {
	key := strings.ToLower(assetType) + "_" + string(term)
	expected, ok := statutoryRates[key]
	if !ok || expected == slabRate {
		return Result{Verified: true, Term: term}
	}

	claimed, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(claimedRate, "%", "")))
	if err == nil && claimed.Equal(decimal.RequireFromString(expected)) {
		return Result{Verified: true, Term: term}
	}
	return Result{
		Verified: false,
		Term:     term,
		Message:  fmt.Sprintf("Rate Mismatch for %s: Statutory Rate is %s%%, claimed %s.", key, expected, claimedRate),
	}
}

// Verify classifies the holding and checks its claimed rate.
func Verify(h Holding) Result {
	return VerifyRate(h.AssetType, DetermineTerm(h.Purchased, h.Sold, h.AssetType), h.ClaimedRate)
}

func daysBetween(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// Package nexus checks year-to-date sales activity against per-jurisdiction
// economic nexus thresholds.
//
// A Table is built once at startup and never mutated, so a single *Table is
// safe to share across goroutines without locking.
package nexus

import (
	"fmt"
	"math"
	"sort"
	"strings"

	dErrors "taxguard/pkg/domain-errors"
)

// Threshold is the activity level past which a seller must register.
// Either clause trips the rule.
type Threshold struct {
	Amount       float64
	Transactions int64
}

// Result is the outcome of a nexus check. Message is set only when Verified is false.
type Result struct {
	Verified bool
	Message  string
}

// Table maps canonical jurisdiction codes to thresholds.
type Table struct {
	thresholds map[string]Threshold
}

// NewTable validates and normalizes thresholds into an immutable Table.
func NewTable(thresholds map[string]Threshold) (*Table, error) {
	t := &Table{thresholds: make(map[string]Threshold, len(thresholds))}
	for code, th := range thresholds {
		canonical := Normalize(code)
		if canonical == "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "jurisdiction code is required")
		}
		if math.IsNaN(th.Amount) || math.IsInf(th.Amount, 0) || th.Amount < 0 {
			return nil, dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("jurisdiction %s: amount threshold must be a non-negative number", canonical))
		}
		if th.Transactions < 0 {
			return nil, dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("jurisdiction %s: transaction threshold must be non-negative", canonical))
		}
		if _, dup := t.thresholds[canonical]; dup {
			return nil, dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("jurisdiction %s is configured more than once", canonical))
		}
		t.thresholds[canonical] = th
	}
	return t, nil
}

// DefaultTable returns the built-in US state thresholds.
//
// CA, TX and FL carry a zero transaction threshold. Because the rule is
// "amount OR transactions", a zero there means every evaluation for those
// states trips the transaction clause, whatever the sales amount. That may be
// meant as a "sales-only" marker or may be a data bug; it is kept literally
// until the intended regulatory reading is confirmed.
func DefaultTable() *Table {
	return &Table{thresholds: map[string]Threshold{
		"NY": {Amount: 500000, Transactions: 100},
		"CA": {Amount: 500000, Transactions: 0},
		"TX": {Amount: 500000, Transactions: 0},
		"FL": {Amount: 100000, Transactions: 0},
	}}
}

// Normalize returns the canonical form of a jurisdiction code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Check evaluates sales activity in jurisdiction. Unknown jurisdictions
// always pass: the absence of a rule is not a violation.
func (t *Table) Check(jurisdiction string, ytdSales float64, transactions int64) Result {
	code := Normalize(jurisdiction)
	th, ok := t.thresholds[code]
	if !ok {
		return Result{Verified: true}
	}

	if ytdSales >= th.Amount || transactions >= th.Transactions {
		return Result{
			Verified: false,
			Message:  fmt.Sprintf("Nexus threshold exceeded in %s. Registration required.", code),
		}
	}
	return Result{Verified: true}
}

// Lookup returns the threshold configured for jurisdiction.
func (t *Table) Lookup(jurisdiction string) (Threshold, bool) {
	th, ok := t.thresholds[Normalize(jurisdiction)]
	return th, ok
}

// Jurisdictions lists the configured codes in sorted order.
func (t *Table) Jurisdictions() []string {
	codes := make([]string, 0, len(t.thresholds))
	for code := range t.thresholds {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of configured jurisdictions.
func (t *Table) Len() int {
	return len(t.thresholds)
}

package preflight

import (
	"github.com/shopspring/decimal"

	"taxguard/internal/capitalgains"
	"taxguard/internal/classification"
	"taxguard/internal/relatedparty"
)

// TaxDecision is the caller's declared tax treatment for a sale.
type TaxDecision string

// TaxDecisionNoTax declares that no tax is owed. It is the only decision the
// nexus check can contradict.
const TaxDecisionNoTax TaxDecision = "no_tax"

// SalesData is year-to-date activity in one jurisdiction.
type SalesData struct {
	Amount       float64
	Transactions int64
}

// Intent is the record under audit. Every field is optional: nil pointers and
// empty strings mean "not supplied" and the dependent check is skipped.
type Intent struct {
	WorkerFacts *classification.Facts
	// WorkerType is the declared classification, compared verbatim against
	// the computed tag.
	WorkerType  classification.WorkerType
	SalesData   *SalesData
	State       string
	TaxDecision TaxDecision

	// LossHead and OffsetHead name the income heads of a trading set-off.
	// Both must be present for the set-off check to run.
	LossHead   string
	LossAmount decimal.Decimal
	OffsetHead string

	// Holding is a capital asset disposal with a claimed tax rate.
	Holding *capitalgains.Holding

	// Loan is a corporate loan checked for insider borrowers and below-market yield.
	Loan *relatedparty.Loan

	// RemittanceUSD and Purpose describe an outbound remittance under the
	// LRS. FYUsage is the amount already remitted this financial year.
	RemittanceUSD *decimal.Decimal
	Purpose       string
	FYUsage       decimal.Decimal
}

// AuditResult is the combined verdict. Blocks are in the order the checks
// ran: classification, nexus, set-off, capital gains, related party, remittance.
type AuditResult struct {
	Allowed bool
	Blocks  []string
}

// BlockKind labels which check produced a block.
type BlockKind string

const (
	BlockMisclassification BlockKind = "misclassification"
	BlockNexus             BlockKind = "nexus"
	BlockSpeculativeSetOff BlockKind = "speculative_setoff"
	BlockCapitalGainsRate  BlockKind = "capital_gains_rate"
	BlockRelatedPartyLoan  BlockKind = "related_party_loan"
	BlockRemittance        BlockKind = "remittance"
)

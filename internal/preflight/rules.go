package preflight

import (
	"fmt"

	"taxguard/internal/capitalgains"
	"taxguard/internal/classification"
	"taxguard/internal/nexus"
	"taxguard/internal/relatedparty"
	"taxguard/internal/remittance"
	"taxguard/internal/setoff"
)

// Audit reconciles the declared intent against the computed decisions.
// This is pure domain logic - no I/O, no side effects.
func Audit(table *nexus.Table, intent Intent) AuditResult {
	ev := evaluate(table, intent)
	return AuditResult{
		Allowed: len(ev.blocks) == 0,
		Blocks:  ev.blocks,
	}
}

// evaluation is everything one pass over an intent decided. blocks is never nil.
type evaluation struct {
	blocks []string
	kinds  []BlockKind

	// classified is the computed worker type, empty when no facts were supplied.
	classified classification.WorkerType
	// nexus is the threshold verdict, nil when the check did not run.
	nexus *nexus.Result
}

func (e *evaluation) block(kind BlockKind, reason string) {
	e.blocks = append(e.blocks, reason)
	e.kinds = append(e.kinds, kind)
}

// evaluate runs the checks in a fixed order.
func evaluate(table *nexus.Table, intent Intent) evaluation {
	ev := evaluation{blocks: []string{}}

	// Rule 1: declared worker type must match the computed classification
	if intent.WorkerFacts != nil {
		ev.classified = intent.WorkerFacts.Classify()
		if intent.WorkerType != "" && intent.WorkerType != ev.classified {
			ev.block(BlockMisclassification, misclassificationMessage(ev.classified, intent.WorkerType))
		}
	}

	// Rule 2: "no tax owed" must not be declared where nexus is exceeded.
	// Any other declared decision, or none, lets a nexus hit through.
	if intent.SalesData != nil && intent.State != "" && table != nil {
		check := table.Check(intent.State, intent.SalesData.Amount, intent.SalesData.Transactions)
		ev.nexus = &check
		if !check.Verified && intent.TaxDecision == TaxDecisionNoTax {
			ev.block(BlockNexus, check.Message)
		}
	}

	// Rule 3: a speculative loss cannot reduce non-speculative income
	if intent.LossHead != "" && intent.OffsetHead != "" {
		check := setoff.Verify(intent.LossHead, intent.LossAmount, intent.OffsetHead)
		if !check.Verified {
			ev.block(BlockSpeculativeSetOff, check.Message)
		}
	}

	// Rule 4: claimed capital gains rate must match the statutory rate
	if intent.Holding != nil && intent.Holding.AssetType != "" && intent.Holding.ClaimedRate != "" {
		check := capitalgains.Verify(*intent.Holding)
		if !check.Verified {
			ev.block(BlockCapitalGainsRate, check.Message)
		}
	}

	// Rule 5: no insider borrowers, no below-market corporate loans
	if intent.Loan != nil && intent.Loan.LenderType != "" && intent.Loan.BorrowerRole != "" {
		check := relatedparty.Verify(*intent.Loan)
		if !check.Verified {
			ev.block(BlockRelatedPartyLoan, check.Message)
		}
	}

	// Rule 6: remittance must stay within the LRS limit and purpose list
	if intent.RemittanceUSD != nil && intent.Purpose != "" {
		check := remittance.VerifyLRS(*intent.RemittanceUSD, intent.Purpose, intent.FYUsage)
		if !check.Verified {
			ev.block(BlockRemittance, check.Message)
		}
	}

	return ev
}

func misclassificationMessage(computed, declared classification.WorkerType) string {
	return fmt.Sprintf("Misclassification Risk: Logic says %s, Intent says %s", computed, declared)
}

package handler

import (
	"taxguard/internal/classification"
	"taxguard/internal/nexus"
	"taxguard/internal/payroll"
	"taxguard/internal/preflight"
)

// AuditResponse is the HTTP response for POST /v1/preflight/audit.
type AuditResponse struct {
	Allowed bool     `json:"allowed"`
	Blocks  []string `json:"blocks"`
}

// ClassifyResponse is the HTTP response for POST /v1/classification/classify.
type ClassifyResponse struct {
	WorkerType string `json:"worker_type"`
}

// NexusCheckResponse is the HTTP response for POST /v1/nexus/check.
type NexusCheckResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}

// ThresholdResponse is one entry of GET /v1/nexus/thresholds.
type ThresholdResponse struct {
	Jurisdiction string  `json:"jurisdiction"`
	Amount       float64 `json:"amount"`
	Transactions int64   `json:"transactions"`
}

// ThresholdsResponse is the HTTP response for GET /v1/nexus/thresholds.
type ThresholdsResponse struct {
	Thresholds []ThresholdResponse `json:"thresholds"`
}

// FromAuditResult converts a domain AuditResult to an HTTP response.
func FromAuditResult(result *preflight.AuditResult) *AuditResponse {
	blocks := result.Blocks
	if blocks == nil {
		blocks = []string{}
	}
	return &AuditResponse{
		Allowed: result.Allowed,
		Blocks:  blocks,
	}
}

// FromWorkerType converts a computed classification to an HTTP response.
func FromWorkerType(wt classification.WorkerType) *ClassifyResponse {
	return &ClassifyResponse{WorkerType: string(wt)}
}

// FromNexusResult converts a nexus verdict to an HTTP response.
func FromNexusResult(result nexus.Result) *NexusCheckResponse {
	return &NexusCheckResponse{
		Verified: result.Verified,
		Message:  result.Message,
	}
}

// FromTable lists the configured thresholds in jurisdiction order.
func FromTable(table *nexus.Table) *ThresholdsResponse {
	resp := &ThresholdsResponse{Thresholds: make([]ThresholdResponse, 0, table.Len())}
	for _, code := range table.Jurisdictions() {
		th, _ := table.Lookup(code)
		resp.Thresholds = append(resp.Thresholds, ThresholdResponse{
			Jurisdiction: code,
			Amount:       th.Amount,
			Transactions: th.Transactions,
		})
	}
	return resp
}

// PayrollResponse is the HTTP response for POST /v1/payroll/verify. Money is
// rendered as fixed two-decimal strings.
type PayrollResponse struct {
	Verified           bool   `json:"verified"`
	RecalculatedNetPay string `json:"recalculated_net_pay"`
	Discrepancy        string `json:"discrepancy"`
	Message            string `json:"message"`
}

// FromPayrollResult converts a payroll verdict to an HTTP response.
func FromPayrollResult(result *payroll.Result) *PayrollResponse {
	return &PayrollResponse{
		Verified:           result.Verified,
		RecalculatedNetPay: result.RecalculatedNetPay.StringFixed(2),
		Discrepancy:        result.Discrepancy.StringFixed(2),
		Message:            result.Message,
	}
}

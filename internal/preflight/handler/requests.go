package handler

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"taxguard/internal/capitalgains"
	"taxguard/internal/classification"
	"taxguard/internal/payroll"
	"taxguard/internal/preflight"
	"taxguard/internal/relatedparty"
	dErrors "taxguard/pkg/domain-errors"
)

const maxJurisdictionLength = 16

// AuditRequest is the HTTP request body for POST /v1/preflight/audit.
// Every field is optional; absent sections skip the matching check.
type AuditRequest struct {
	WorkerFacts *WorkerFactsRequest `json:"worker_facts,omitempty"`
	WorkerType  *string             `json:"worker_type,omitempty"`
	SalesData   *SalesDataRequest   `json:"sales_data,omitempty"`
	State       *string             `json:"state,omitempty"`
	TaxDecision *string             `json:"tax_decision,omitempty"`

	LossHead   *string          `json:"loss_head,omitempty"`
	LossAmount *decimal.Decimal `json:"loss_amount,omitempty"`
	OffsetHead *string          `json:"offset_head,omitempty"`

	AssetType   *string       `json:"asset_type,omitempty"`
	Dates       *DatesRequest `json:"dates,omitempty"`
	ClaimedRate *string       `json:"claimed_rate,omitempty"`

	LenderType   *string          `json:"lender_type,omitempty"`
	BorrowerRole *string          `json:"borrower_role,omitempty"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
	MarketRate   *decimal.Decimal `json:"market_rate,omitempty"`

	RemittanceAmountUSD *decimal.Decimal `json:"remittance_amount_usd,omitempty"`
	Purpose             *string          `json:"purpose,omitempty"`
	FYUsage             *decimal.Decimal `json:"fy_usage,omitempty"`
}

// WorkerFactsRequest uses the field names callers already send.
type WorkerFactsRequest struct {
	ProvidesTools          bool `json:"provides_tools"`
	ReimbursesExpenses     bool `json:"reimburses_expenses"`
	IndefiniteRelationship bool `json:"indefinite_relationship"`
}

// SalesDataRequest is year-to-date activity. Transactions defaults to 0.
type SalesDataRequest struct {
	Amount       *float64 `json:"amount"`
	Transactions *int64   `json:"transactions,omitempty"`
}

// DatesRequest holds YYYY-MM-DD purchase and sale dates.
type DatesRequest struct {
	Buy  string `json:"buy"`
	Sell string `json:"sell"`
}

func (d *DatesRequest) parse() (time.Time, time.Time, error) {
	buy, err := time.Parse(time.DateOnly, d.Buy)
	if err != nil {
		return time.Time{}, time.Time{}, dErrors.New(dErrors.CodeValidation, "dates.buy must be YYYY-MM-DD")
	}
	sell, err := time.Parse(time.DateOnly, d.Sell)
	if err != nil {
		return time.Time{}, time.Time{}, dErrors.New(dErrors.CodeValidation, "dates.sell must be YYYY-MM-DD")
	}
	if sell.Before(buy) {
		return time.Time{}, time.Time{}, dErrors.New(dErrors.CodeValidation, "dates.sell must not be before dates.buy")
	}
	return buy, sell, nil
}

// Validate checks presence and numeric sanity only; the rules decide the rest.
func (r *AuditRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.SalesData != nil {
		if r.SalesData.Amount == nil {
			return dErrors.New(dErrors.CodeValidation, "sales_data.amount is required")
		}
		if err := validateSales(*r.SalesData.Amount, r.SalesData.Transactions, "sales_data.amount", "sales_data.transactions"); err != nil {
			return err
		}
	}
	if r.State != nil && len(*r.State) > maxJurisdictionLength {
		return dErrors.New(dErrors.CodeValidation, "state must be at most 16 characters")
	}
	if r.Dates != nil {
		if _, _, err := r.Dates.parse(); err != nil {
			return err
		}
	}
	for field, v := range map[string]*decimal.Decimal{
		"loss_amount":           r.LossAmount,
		"interest_rate":         r.InterestRate,
		"market_rate":           r.MarketRate,
		"remittance_amount_usd": r.RemittanceAmountUSD,
		"fy_usage":              r.FYUsage,
	} {
		if v != nil && v.IsNegative() {
			return dErrors.New(dErrors.CodeValidation, field+" must be non-negative")
		}
	}
	return nil
}

// ToIntent converts the request into the domain Intent. Empty strings are
// treated as absent, matching the domain convention.
func (r *AuditRequest) ToIntent() preflight.Intent {
	var intent preflight.Intent
	if r.WorkerFacts != nil {
		intent.WorkerFacts = &classification.Facts{
			BehavioralControl:      r.WorkerFacts.ProvidesTools,
			FinancialControl:       r.WorkerFacts.ReimbursesExpenses,
			RelationshipPermanence: r.WorkerFacts.IndefiniteRelationship,
		}
	}
	if r.WorkerType != nil {
		intent.WorkerType = classification.WorkerType(*r.WorkerType)
	}
	if r.SalesData != nil {
		sales := &preflight.SalesData{Amount: *r.SalesData.Amount}
		if r.SalesData.Transactions != nil {
			sales.Transactions = *r.SalesData.Transactions
		}
		intent.SalesData = sales
	}
	if r.State != nil {
		intent.State = strings.TrimSpace(*r.State)
	}
	if r.TaxDecision != nil {
		intent.TaxDecision = preflight.TaxDecision(*r.TaxDecision)
	}
	if r.LossHead != nil {
		intent.LossHead = strings.TrimSpace(*r.LossHead)
	}
	if r.LossAmount != nil {
		intent.LossAmount = *r.LossAmount
	}
	if r.OffsetHead != nil {
		intent.OffsetHead = strings.TrimSpace(*r.OffsetHead)
	}
	if r.AssetType != nil && r.Dates != nil {
		buy, sell, _ := r.Dates.parse()
		holding := &capitalgains.Holding{
			AssetType: strings.TrimSpace(*r.AssetType),
			Purchased: buy,
			Sold:      sell,
		}
		if r.ClaimedRate != nil {
			holding.ClaimedRate = strings.TrimSpace(*r.ClaimedRate)
		}
		intent.Holding = holding
	}
	if r.LenderType != nil && r.BorrowerRole != nil {
		loan := &relatedparty.Loan{
			LenderType:   strings.TrimSpace(*r.LenderType),
			BorrowerRole: strings.TrimSpace(*r.BorrowerRole),
		}
		if r.InterestRate != nil {
			loan.InterestRate = *r.InterestRate
		}
		if r.MarketRate != nil {
			loan.MarketRate = *r.MarketRate
		}
		intent.Loan = loan
	}
	intent.RemittanceUSD = r.RemittanceAmountUSD
	if r.Purpose != nil {
		intent.Purpose = strings.TrimSpace(*r.Purpose)
	}
	if r.FYUsage != nil {
		intent.FYUsage = *r.FYUsage
	}
	return intent
}

// ClassifyRequest is the HTTP request body for POST /v1/classification/classify.
type ClassifyRequest struct {
	BehavioralControl      *bool `json:"behavioral_control"`
	FinancialControl       *bool `json:"financial_control"`
	RelationshipPermanence *bool `json:"relationship_permanence"`
}

// Validate requires all three signals.
func (r *ClassifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	switch {
	case r.BehavioralControl == nil:
		return dErrors.New(dErrors.CodeValidation, "behavioral_control is required")
	case r.FinancialControl == nil:
		return dErrors.New(dErrors.CodeValidation, "financial_control is required")
	case r.RelationshipPermanence == nil:
		return dErrors.New(dErrors.CodeValidation, "relationship_permanence is required")
	}
	return nil
}

// Facts returns the validated signals.
func (r *ClassifyRequest) Facts() classification.Facts {
	return classification.Facts{
		BehavioralControl:      *r.BehavioralControl,
		FinancialControl:       *r.FinancialControl,
		RelationshipPermanence: *r.RelationshipPermanence,
	}
}

// NexusCheckRequest is the HTTP request body for POST /v1/nexus/check.
type NexusCheckRequest struct {
	Jurisdiction string   `json:"jurisdiction"`
	YTDSales     *float64 `json:"ytd_sales"`
	Transactions *int64   `json:"transactions,omitempty"`
}

// Validate requires a jurisdiction and a sales figure.
func (r *NexusCheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Jurisdiction = strings.TrimSpace(r.Jurisdiction)
	if r.Jurisdiction == "" {
		return dErrors.New(dErrors.CodeValidation, "jurisdiction is required")
	}
	if len(r.Jurisdiction) > maxJurisdictionLength {
		return dErrors.New(dErrors.CodeValidation, "jurisdiction must be at most 16 characters")
	}
	if r.YTDSales == nil {
		return dErrors.New(dErrors.CodeValidation, "ytd_sales is required")
	}
	return validateSales(*r.YTDSales, r.Transactions, "ytd_sales", "transactions")
}

// TransactionCount returns the transaction count, defaulting to 0.
func (r *NexusCheckRequest) TransactionCount() int64 {
	if r.Transactions == nil {
		return 0
	}
	return *r.Transactions
}

func validateSales(amount float64, transactions *int64, amountField, txField string) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return dErrors.New(dErrors.CodeValidation, amountField+" must be a non-negative number")
	}
	if transactions != nil && *transactions < 0 {
		return dErrors.New(dErrors.CodeValidation, txField+" must be non-negative")
	}
	return nil
}

// PayrollRequest is the HTTP request body for POST /v1/payroll/verify.
// Amounts may be sent as JSON numbers or strings; strings avoid float rounding.
type PayrollRequest struct {
	EmployeeID    string             `json:"employee_id"`
	GrossPay      *decimal.Decimal   `json:"gross_pay"`
	Taxes         []TaxLineRequest   `json:"taxes"`
	Deductions    []DeductionRequest `json:"deductions"`
	NetPayClaimed *decimal.Decimal   `json:"net_pay_claimed"`
	Currency      string             `json:"currency,omitempty"`
}

// TaxLineRequest is one withheld tax.
type TaxLineRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// DeductionRequest is one deduction; type is PRE_TAX or POST_TAX.
type DeductionRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

// Validate requires the employee, gross and claimed net, and known enum values.
func (r *PayrollRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	if r.EmployeeID == "" {
		return dErrors.New(dErrors.CodeValidation, "employee_id is required")
	}
	if r.GrossPay == nil {
		return dErrors.New(dErrors.CodeValidation, "gross_pay is required")
	}
	if r.GrossPay.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "gross_pay must be non-negative")
	}
	if r.NetPayClaimed == nil {
		return dErrors.New(dErrors.CodeValidation, "net_pay_claimed is required")
	}
	if _, ok := payroll.ParseCurrency(r.Currency); !ok {
		return dErrors.New(dErrors.CodeValidation, "currency must be one of USD, EUR, GBP")
	}
	for _, t := range r.Taxes {
		if t.Amount.IsNegative() {
			return dErrors.New(dErrors.CodeValidation, "tax amounts must be non-negative")
		}
	}
	for _, d := range r.Deductions {
		if !payroll.DeductionType(d.Type).Valid() {
			return dErrors.New(dErrors.CodeValidation, "deduction type must be PRE_TAX or POST_TAX")
		}
		if d.Amount.IsNegative() {
			return dErrors.New(dErrors.CodeValidation, "deduction amounts must be non-negative")
		}
	}
	return nil
}

// ToEntry converts a validated request into a payroll entry.
func (r *PayrollRequest) ToEntry() payroll.Entry {
	currency, _ := payroll.ParseCurrency(r.Currency)
	entry := payroll.Entry{
		EmployeeID:    r.EmployeeID,
		GrossPay:      *r.GrossPay,
		NetPayClaimed: *r.NetPayClaimed,
		Currency:      currency,
	}
	for _, t := range r.Taxes {
		entry.Taxes = append(entry.Taxes, payroll.TaxLine{Name: t.Name, Amount: t.Amount})
	}
	for _, d := range r.Deductions {
		entry.Deductions = append(entry.Deductions, payroll.Deduction{
			Name:   d.Name,
			Amount: d.Amount,
			Type:   payroll.DeductionType(d.Type),
		})
	}
	return entry
}

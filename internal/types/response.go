// internal/types/response.go
package types

import (
	"github.com/shopspring/decimal"
)

// DateRange is an inclusive ISO-date range compared lexicographically.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AmountRange is an inclusive numeric range. A nil bound means
// unconstrained on that side (min defaults to 0, max to +inf).
type AmountRange struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// Params holds the typed parameters extracted from one user request.
// Absent parameters stay at their zero value, never placeholders.
type Params struct {
	DateRange   *DateRange   `json:"date_range,omitempty"`
	Vendor      string       `json:"vendor,omitempty"`
	Status      string       `json:"status,omitempty"`
	AmountRange *AmountRange `json:"amount_range,omitempty"`
	Notify      string       `json:"notify,omitempty"`
}

// ComplianceIssue flags one invoice that violates a compliance rule.
type ComplianceIssue struct {
	InvoiceID string          `json:"invoice_id"`
	Issue     string          `json:"issue"`
	Vendor    string          `json:"vendor"`
	Amount    decimal.Decimal `json:"amount"`
}

// Analysis summarizes why a set of invoices failed processing.
type Analysis struct {
	TotalInvoices    int               `json:"total_invoices"`
	FailureReasons   map[string]int    `json:"failure_reasons"`
	TotalAmount      decimal.Decimal   `json:"total_amount"`
	AffectedVendors  []string          `json:"affected_vendors"`
	ComplianceIssues []ComplianceIssue `json:"compliance_issues"`

	// ReasonOrder lists failure reasons in first-seen order so prose and
	// root-cause selection are deterministic. Not persisted.
	ReasonOrder []string `json:"-"`
}

// ActionTrace records one operation an action handler performed. The set of
// fields is closed per category: filter fills Parameters/ResultsCount,
// analyze fills InvoiceIDs, ticket creation fills Title/Priority/
// AffectedInvoices/TicketID, report generation fills FileGenerated.
type ActionTrace struct {
	Action           string   `json:"action"`
	Parameters       *Params  `json:"parameters,omitempty"`
	InvoiceIDs       []string `json:"invoice_ids,omitempty"`
	Title            string   `json:"title,omitempty"`
	Priority         string   `json:"priority,omitempty"`
	AffectedInvoices []string `json:"affected_invoices,omitempty"`
	ResultsCount     int      `json:"results_count,omitempty"`
	DataConsulted    []string `json:"data_consulted,omitempty"`
	TicketID         TicketID `json:"ticket_id,omitempty"`
	FileGenerated    string   `json:"file_generated,omitempty"`
}

// DataShown is the structured payload the presentation layer renders.
// Filter turns fill the invoice fields; explain turns fill Analysis.
type DataShown struct {
	InvoiceIDs     []string        `json:"invoice_ids,omitempty"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Invoices       []Invoice       `json:"invoices,omitempty"`
	FailureReasons map[string]int  `json:"failure_reasons,omitempty"`
	Analysis       *Analysis       `json:"analysis,omitempty"`
}

// Explanation is the structured reasoning payload attached to an
// explain-failures response.
type Explanation struct {
	RootCause             string `json:"root_cause"`
	AffectedFiles         int    `json:"affected_files"`
	ComplianceRequirement string `json:"compliance_requirement"`
	NextSteps             string `json:"next_steps"`
	SuggestedAction       string `json:"suggested_action,omitempty"`
}

// TicketRef points at a ticket the current turn created.
type TicketRef struct {
	ID         TicketID `json:"id"`
	Status     string   `json:"status"`
	AssignedTo string   `json:"assigned_to"`
}

// ContextUpdate is a patch applied to the per-user session context after a
// turn. Only explicitly set fields overwrite; SetFiltered distinguishes a
// filter that matched nothing from a turn that did not filter at all.
type ContextUpdate struct {
	SetFiltered          bool     `json:"-"`
	LastFilteredInvoices []string `json:"last_filtered_invoices,omitempty"`
	LastFilterParameters *Params  `json:"last_filter_parameters,omitempty"`

	LastAnalysis     *Analysis `json:"last_analysis,omitempty"`
	AnalyzedInvoices []string  `json:"analyzed_invoices,omitempty"`

	LastTicketCreated   TicketID `json:"last_ticket_created,omitempty"`
	LastReportGenerated ReportID `json:"last_report_generated,omitempty"`
}

// Response is what an action handler returns for one turn.
type Response struct {
	Content          string         `json:"content"`
	ActionsPerformed []ActionTrace  `json:"actions_performed"`
	DataShown        *DataShown     `json:"data_shown,omitempty"`
	Explanation      *Explanation   `json:"explanation,omitempty"`
	TicketCreated    *TicketRef     `json:"ticket_created,omitempty"`
	ReportSummary    *ReportSummary `json:"report_summary,omitempty"`
	ContextUpdate    *ContextUpdate `json:"context_update,omitempty"`
}

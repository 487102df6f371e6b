// internal/types/models.go
package types

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Collection files store amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Roles, from most to least privileged.
const (
	RoleAdmin        = "admin"
	RoleAnalyst      = "analyst"
	RoleReportViewer = "report_viewer"
)

// Invoice statuses.
const (
	StatusProcessed       = "processed"
	StatusFailed          = "failed"
	StatusPendingApproval = "pending_approval"
)

// Ticket statuses.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
)

// User is immutable after load. Role is the sole authorization key.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	WorkspaceID string `json:"workspace_id"`
}

// Invoice is read-only reference data; the core only filters and reads it.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	WorkspaceID   string          `json:"workspace_id"`
	Vendor        string          `json:"vendor"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	FailureReason string          `json:"failure_reason,omitempty"`
	PaymentTerms  string          `json:"payment_terms,omitempty"`
}

type Vendor struct {
	Name         string `json:"name"`
	GSTIN        string `json:"gstin,omitempty"`
	Category     string `json:"category,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// TicketUpdate is one entry in a ticket's append-only update log.
type TicketUpdate struct {
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Note      string `json:"note"`
	UpdatedBy string `json:"updated_by"`
}

type Ticket struct {
	ID               TicketID       `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Status           string         `json:"status"`
	Priority         string         `json:"priority"`
	CreatedBy        string         `json:"created_by"`
	AssignedTo       string         `json:"assigned_to"`
	CreatedDate      string         `json:"created_date"`
	ResolvedDate     string         `json:"resolved_date,omitempty"`
	WorkspaceID      string         `json:"workspace_id"`
	AffectedInvoices []string       `json:"affected_invoices"`
	Resolution       string         `json:"resolution,omitempty"`
	Updates          []TicketUpdate `json:"updates"`
	ConversationID   ConversationID `json:"conversation_id,omitempty"`
}

// Message is immutable once appended to a conversation.
type Message struct {
	ID               MessageID     `json:"id"`
	Timestamp        string        `json:"timestamp"`
	Role             string        `json:"role"`
	Content          string        `json:"content"`
	ActionsPerformed []ActionTrace `json:"actions_performed,omitempty"`
	DataShown        *DataShown    `json:"data_shown,omitempty"`
	Explanation      *Explanation  `json:"explanation,omitempty"`
}

// Conversation groups one user's messages for one calendar day.
// LastUpdated is monotonically non-decreasing as messages are appended.
type Conversation struct {
	ID          ConversationID `json:"id"`
	UserID      string         `json:"user_id"`
	WorkspaceID string         `json:"workspace_id"`
	StartedDate string         `json:"started_date"`
	LastUpdated string         `json:"last_updated"`
	Status      string         `json:"status"`
	Messages    []Message      `json:"messages"`
}

type Report struct {
	ID            ReportID      `json:"id"`
	Name          string        `json:"name"`
	Type          string        `json:"type"`
	GeneratedDate string        `json:"generated_date"`
	GeneratedBy   string        `json:"generated_by"`
	WorkspaceID   string        `json:"workspace_id"`
	Parameters    Params        `json:"parameters"`
	Summary       ReportSummary `json:"summary"`
	FilePath      string        `json:"file_path"`
	AccessLevel   string        `json:"access_level"`
	DataSources   []string      `json:"data_sources"`
}

type ReportSummary struct {
	TotalInvoices     int             `json:"total_invoices"`
	ProcessedInvoices int             `json:"processed_invoices"`
	FailedInvoices    int             `json:"failed_invoices"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	ProcessedAmount   decimal.Decimal `json:"processed_amount"`
	ComplianceRate    float64         `json:"compliance_rate"`
}

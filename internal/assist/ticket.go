// internal/assist/ticket.go
package assist

import (
	"context"
	"fmt"

	"github.com/user/finassist/internal/intent"
	"github.com/user/finassist/internal/session"
	"github.com/user/finassist/internal/types"
)

func (p *Processor) handleCreateTicket(ctx context.Context, userID, input string, sess session.Context) (*types.Response, error) {
	params := intent.Extract(input, intent.CreateTicket)

	title := "General Support Request"
	description := "Support request created via assistant"
	priority := "medium"

	// A stored analysis with GSTIN failures upgrades the ticket to a
	// vendor-specific high-priority compliance ticket.
	if a := sess.LastAnalysis; a != nil && a.FailureReasons["missing_gstin"] > 0 {
		title = "Missing GSTIN in vendor invoices"
		vendor := "vendor"
		if len(a.AffectedVendors) > 0 {
			vendor = a.AffectedVendors[0]
		}
		description = fmt.Sprintf(
			"%d invoices from %s failed processing due to missing GSTIN. Total amount affected: ₹%s. Requires vendor to provide GSTIN and resubmit invoices.",
			a.TotalInvoices, vendor, formatAmount(a.TotalAmount, 2))
		priority = "high"
	}

	// The last filtered set is attached even for a generic request.
	ticket, err := p.store.CreateSupportTicket(ctx, userID, title, description, priority, sess.LastFilteredInvoices)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return &types.Response{
			Content:          "I couldn't create a support ticket: your role doesn't have permission for that.",
			ActionsPerformed: []types.ActionTrace{},
		}, nil
	}

	content := fmt.Sprintf("Created support ticket #%s: '%s'. ", ticket.ID, title)
	if params.Notify != "" {
		content += "I'll notify you when the vendor provides updated invoices. "
	}
	content += "Ticket assigned to compliance team."

	return &types.Response{
		Content: content,
		ActionsPerformed: []types.ActionTrace{{
			Action:           "create_support_ticket",
			Title:            title,
			Priority:         priority,
			AffectedInvoices: ticket.AffectedInvoices,
			TicketID:         ticket.ID,
		}},
		TicketCreated: &types.TicketRef{
			ID:         ticket.ID,
			Status:     ticket.Status,
			AssignedTo: ticket.AssignedTo,
		},
		ContextUpdate: &types.ContextUpdate{
			LastTicketCreated: ticket.ID,
		},
	}, nil
}

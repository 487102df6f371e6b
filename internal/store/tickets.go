// internal/store/tickets.go
package store

import (
	"context"
	"fmt"

	"github.com/user/finassist/internal/types"
)

// CreateSupportTicket creates an open ticket assigned to the compliance
// team and persists it immediately. A caller without the
// create_support_ticket permission gets (nil, nil): no ticket, no error.
func (s *Store) CreateSupportTicket(_ context.Context, userID, title, description, priority string, affectedInvoices []string) (*types.Ticket, error) {
	if !s.CanPerform(userID, "create_support_ticket") {
		return nil, nil
	}
	user, _ := s.UserByID(userID)

	if affectedInvoices == nil {
		affectedInvoices = []string{}
	}

	stamp := s.stamp()
	ticket := types.Ticket{
		ID:               types.NewTicketID(s.now()),
		Title:            title,
		Description:      description,
		Status:           types.TicketOpen,
		Priority:         priority,
		CreatedBy:        userID,
		AssignedTo:       "compliance_team",
		CreatedDate:      stamp,
		WorkspaceID:      user.WorkspaceID,
		AffectedInvoices: affectedInvoices,
		Updates: []types.TicketUpdate{{
			Timestamp: stamp,
			Status:    types.TicketOpen,
			Note:      "Ticket created automatically by assistant",
			UpdatedBy: "system",
		}},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = append(s.tickets, ticket)
	if err := s.saveCollection("support_tickets.json", ticketsFile{SupportTickets: s.tickets}); err != nil {
		return nil, fmt.Errorf("persist ticket %s: %w", ticket.ID, err)
	}
	return &ticket, nil
}

// SupportTickets returns the caller's workspace tickets, optionally
// restricted to one status. Report viewers see only tickets they created;
// more privileged roles see all workspace tickets.
func (s *Store) SupportTickets(userID, status string) []types.Ticket {
	user, _ := s.UserByID(userID)
	role := s.Role(userID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []types.Ticket
	for _, t := range s.tickets {
		if t.WorkspaceID != user.WorkspaceID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		if role == types.RoleReportViewer && t.CreatedBy != userID {
			continue
		}
		matched = append(matched, t)
	}
	return matched
}

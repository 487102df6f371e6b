// internal/session/welcome.go
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/user/finassist/internal/store"
	"github.com/user/finassist/internal/types"
)

const recencyWindow = 7 * 24 * time.Hour

// Welcome is the first message of a session, optionally narrating updates
// that happened since the user's last visit.
type Welcome struct {
	Content         string           `json:"content"`
	ShowUpdates     bool             `json:"show_updates"`
	OpenTickets     []types.TicketID `json:"open_tickets,omitempty"`
	ResolvedTickets []types.TicketID `json:"resolved_tickets,omitempty"`
	NewInvoices     []string         `json:"new_invoices,omitempty"`
	PreviousContext string           `json:"previous_context,omitempty"`
}

// update is one item found by the generic continuity scan.
type update struct {
	kind     string // "ticket_resolved" or "new_processed_invoice"
	ticketID types.TicketID
	vendor   string
	count    int
}

// Generator produces welcome messages and context summaries. With simulate
// set (the shipped configuration) it narrates the pre-scripted ticket
// resolution scenario instead of scanning for real updates.
type Generator struct {
	store    *store.Store
	contexts *Manager
	simulate bool
	now      func() time.Time
}

func NewGenerator(st *store.Store, contexts *Manager, simulate bool) *Generator {
	return &Generator{store: st, contexts: contexts, simulate: simulate, now: time.Now}
}

// WelcomeMessage builds the session-opening message for a user.
func (g *Generator) WelcomeMessage(userID string) Welcome {
	firstName := "User"
	if u, ok := g.store.UserByID(userID); ok {
		if fields := strings.Fields(u.Name); len(fields) > 0 {
			firstName = fields[0]
		}
	}

	openTickets := g.store.SupportTickets(userID, types.TicketOpen)
	openIDs := make([]types.TicketID, 0, len(openTickets))
	for _, t := range openTickets {
		openIDs = append(openIDs, t.ID)
	}

	if g.simulate {
		if recent := g.mostRecentTicket(userID); recent != nil {
			parts := []string{fmt.Sprintf("Welcome back, %s! 🔔 Context update:", firstName)}
			parts = append(parts, fmt.Sprintf("Ticket #%s has been resolved.", recent.ID))
			parts = append(parts, "IndiSky provided their GSTIN (27AABCI9999B1ZS) and sent corrected invoices.")
			if len(openTickets) > 0 {
				parts = append(parts, fmt.Sprintf("You have %d other open tickets.", len(openTickets)))
			}
			return Welcome{
				Content:         strings.Join(parts, " "),
				ShowUpdates:     true,
				OpenTickets:     openIDs,
				ResolvedTickets: []types.TicketID{recent.ID},
				NewInvoices:     []string{"inv_009"},
				PreviousContext: fmt.Sprintf("IndiSky missing GSTIN issue - %s", recent.Title),
			}
		}
	}

	updates := g.recentUpdates(userID)
	if len(updates) > 0 || len(openTickets) > 0 {
		parts := []string{fmt.Sprintf("Welcome back, %s! 🔔 Context update:", firstName)}
		var resolved []types.TicketID
		for _, u := range updates {
			if u.kind != "ticket_resolved" {
				continue
			}
			resolved = append(resolved, u.ticketID)
			parts = append(parts, fmt.Sprintf("Ticket #%s has been resolved.", u.ticketID))
			for _, inv := range updates {
				if inv.kind != "new_processed_invoice" {
					continue
				}
				gstin := "Unknown"
				if v, ok := g.store.VendorByName(inv.vendor); ok && v.GSTIN != "" {
					gstin = v.GSTIN
				}
				parts = append(parts, fmt.Sprintf("%s provided their GSTIN (%s) and sent a corrected invoice.", inv.vendor, gstin))
			}
		}
		if len(openTickets) > 0 {
			parts = append(parts, fmt.Sprintf("Open tickets: %d", len(openTickets)))
		}
		return Welcome{
			Content:         strings.Join(parts, " "),
			ShowUpdates:     true,
			OpenTickets:     openIDs,
			ResolvedTickets: resolved,
		}
	}

	return Welcome{
		Content: fmt.Sprintf("Hello, %s! How can I help you today?", firstName),
	}
}

// recentUpdates scans for tickets resolved within the recency window and,
// for GSTIN tickets, newly processed invoices from the same vendor.
func (g *Generator) recentUpdates(userID string) []update {
	var updates []update

	tickets := g.store.SupportTickets(userID, "")
	var resolved []types.Ticket
	for _, t := range tickets {
		if t.Status == types.TicketResolved && g.isRecent(t.ResolvedDate) {
			resolved = append(resolved, t)
			updates = append(updates, update{kind: "ticket_resolved", ticketID: t.ID})
		}
	}

	for _, t := range resolved {
		if !strings.Contains(strings.ToLower(t.Title), "missing gstin") || len(t.AffectedInvoices) == 0 {
			continue
		}
		first, ok := g.store.InvoiceByID(t.AffectedInvoices[0])
		if !ok {
			continue
		}
		processed := g.store.FilterInvoices(userID, types.Params{
			Vendor:    first.Vendor,
			Status:    types.StatusProcessed,
			DateRange: g.recentDateRange(),
		})
		if len(processed) > 0 {
			updates = append(updates, update{
				kind:   "new_processed_invoice",
				vendor: first.Vendor,
				count:  len(processed),
			})
		}
	}

	return updates
}

// ContextSummary is a one-line description of the user's active context
// for the presentation layer.
func (g *Generator) ContextSummary(userID string) string {
	var parts []string

	open := g.store.SupportTickets(userID, types.TicketOpen)
	if len(open) > 0 {
		parts = append(parts, fmt.Sprintf("%d open ticket%s", len(open), plural(len(open))))
	}

	resolvedCount := 0
	for _, u := range g.recentUpdates(userID) {
		if u.kind == "ticket_resolved" {
			resolvedCount++
		}
	}
	if resolvedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d recently resolved ticket%s", resolvedCount, plural(resolvedCount)))
	}

	sess := g.contexts.Get(userID)
	if len(sess.LastFilteredInvoices) > 0 {
		n := len(sess.LastFilteredInvoices)
		parts = append(parts, fmt.Sprintf("%d invoice%s in recent filter", n, plural(n)))
	}

	if len(parts) == 0 {
		return "No active context"
	}
	return "Context: " + strings.Join(parts, ", ")
}

func (g *Generator) mostRecentTicket(userID string) *types.Ticket {
	tickets := g.store.SupportTickets(userID, "")
	var recent *types.Ticket
	for i := range tickets {
		if recent == nil || tickets[i].CreatedDate > recent.CreatedDate {
			recent = &tickets[i]
		}
	}
	return recent
}

func (g *Generator) isRecent(stamp string) bool {
	if stamp == "" {
		return false
	}
	ts, err := parseStamp(stamp)
	if err != nil {
		return false
	}
	return g.now().Sub(ts) <= recencyWindow
}

func (g *Generator) recentDateRange() *types.DateRange {
	end := g.now()
	start := end.Add(-recencyWindow)
	return &types.DateRange{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
	}
}

// parseStamp accepts the persisted timestamp shape; fractional seconds are
// tolerated by time.Parse without appearing in the layout.
func parseStamp(stamp string) (time.Time, error) {
	trimmed := strings.TrimSuffix(stamp, "Z")
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %s", stamp)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

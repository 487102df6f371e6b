//go:build integration

package test

import (
	"context"
	"strings"
	"testing"

	"github.com/user/finassist/internal/assist"
	"github.com/user/finassist/internal/session"
	"github.com/user/finassist/internal/store"
	"github.com/user/finassist/internal/store/storetest"
)

// TestDemoConversation walks the full demo flow against real stores: filter
// failed invoices, ask why they failed, accept the ticket offer, download
// the compliance report, then verify the transcript and ticket survived a
// store reload.
func TestDemoConversation(t *testing.T) {
	dir := storetest.SeedDir(t)
	st, err := store.Open(dir, store.WithClock(storetest.Clock()))
	if err != nil {
		t.Fatal(err)
	}
	contexts := session.NewManager()
	processor := assist.New(st, contexts)
	ctx := context.Background()

	welcome := session.NewGenerator(st, contexts, true)
	w := welcome.WelcomeMessage("usr_002")
	if !w.ShowUpdates {
		t.Errorf("welcome = %+v", w)
	}

	resp, err := processor.ProcessTurn(ctx, "usr_002", "filter invoices for vendor='IndiSky', status=failed, last month")
	if err != nil {
		t.Fatal(err)
	}
	if resp.DataShown == nil || len(resp.DataShown.InvoiceIDs) != 3 {
		t.Fatalf("filter: %q", resp.Content)
	}

	resp, err = processor.ProcessTurn(ctx, "usr_002", "why did these fail?")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Content, "Would you like me to create a ticket") {
		t.Fatalf("explain: %q", resp.Content)
	}

	resp, err = processor.ProcessTurn(ctx, "usr_002", "yes")
	if err != nil {
		t.Fatal(err)
	}
	if resp.TicketCreated == nil {
		t.Fatalf("ticket: %q", resp.Content)
	}
	ticketID := resp.TicketCreated.ID

	resp, err = processor.ProcessTurn(ctx, "usr_002", "download the compliance report")
	if err != nil {
		t.Fatal(err)
	}
	if resp.ReportSummary == nil {
		t.Fatalf("report: %q", resp.Content)
	}

	// Everything written during the conversation must be visible through a
	// fresh store opened on the same directory.
	reloaded, err := store.Open(dir, store.WithClock(storetest.Clock()))
	if err != nil {
		t.Fatal(err)
	}

	var found bool
	for _, tk := range reloaded.SupportTickets("usr_002", "open") {
		if tk.ID == ticketID {
			found = true
		}
	}
	if !found {
		t.Errorf("ticket %s not persisted", ticketID)
	}

	convs := reloaded.Conversations("usr_002")
	if len(convs) != 1 {
		t.Fatalf("conversations = %d, want 1", len(convs))
	}
	if got := len(convs[0].Messages); got != 8 {
		t.Errorf("transcript messages = %d, want 8", got)
	}
}

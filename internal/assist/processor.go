// internal/assist/processor.go

// Package assist turns one free-text user request into an executed action
// and a structured response: resolve intent, extract parameters, run the
// category's handler, merge the context patch, persist the transcript.
package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/user/finassist/internal/intent"
	"github.com/user/finassist/internal/session"
	"github.com/user/finassist/internal/store"
	"github.com/user/finassist/internal/types"
)

// Processor executes user turns. Turns are processed to completion one at
// a time per user; there is no background work.
type Processor struct {
	store    *store.Store
	contexts *session.Manager
	now      func() time.Time
}

func New(st *store.Store, contexts *session.Manager) *Processor {
	return &Processor{store: st, contexts: contexts, now: time.Now}
}

// ProcessTurn runs one full turn for a user and persists both sides of the
// exchange to the conversation transcript. A persistence failure is a hard
// error; everything else degrades to a conversational message.
func (p *Processor) ProcessTurn(ctx context.Context, userID, input string) (*types.Response, error) {
	input = strings.TrimSpace(input)
	category := intent.Detect(input)
	sess := p.contexts.Get(userID)

	var resp *types.Response
	var err error
	switch category {
	case intent.FilterInvoices:
		resp = p.handleFilterInvoices(userID, input)
	case intent.ExplainFailures:
		resp = p.handleExplainFailures(userID, sess)
	case intent.CreateTicket:
		resp, err = p.handleCreateTicket(ctx, userID, input, sess)
		if err != nil {
			return nil, err
		}
	case intent.DownloadReport:
		resp = p.handleDownloadReport(userID, input, sess)
	case intent.GeneralQuestion:
		resp = p.handleGeneralQuestion()
	default:
		resp = p.handleUnknown()
	}

	p.contexts.Apply(userID, resp.ContextUpdate)

	if _, err := p.store.SaveConversationMessage(ctx, userID, "user", input, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}
	if _, err := p.store.SaveConversationMessage(ctx, userID, "assistant", resp.Content, resp.ActionsPerformed, resp.DataShown, resp.Explanation); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	slog.Debug("turn processed", "user", userID, "category", string(category), "actions", len(resp.ActionsPerformed))
	return resp, nil
}

func (p *Processor) handleGeneralQuestion() *types.Response {
	content := "I can help you with:\n" +
		"• Filtering invoices: 'Filter invoices for last month, vendor=IndiSky, status=failed'\n" +
		"• Explaining issues: 'Why did these fail?'\n" +
		"• Creating tickets: 'Create a ticket and notify me when fixed'\n" +
		"• Downloading reports: 'Download the compliance report'\n" +
		"\nWhat would you like to do?"
	return &types.Response{
		Content:          content,
		ActionsPerformed: []types.ActionTrace{},
	}
}

func (p *Processor) handleUnknown() *types.Response {
	return &types.Response{
		Content:          "I'm not sure how to help with that. Try asking me to filter invoices, explain failures, create tickets, or download reports.",
		ActionsPerformed: []types.ActionTrace{},
	}
}

// internal/session/context.go

// Package session holds per-user cross-turn state. It lives for the
// process only and is never persisted.
package session

import (
	"sync"

	"github.com/user/finassist/internal/types"
)

// Context is one user's cross-turn state. Fields are overwritten whole by
// updates, never merged deeply.
type Context struct {
	LastFilteredInvoices []string
	LastFilterParameters *types.Params
	LastAnalysis         *types.Analysis
	AnalyzedInvoices     []string
	LastTicketCreated    types.TicketID
	LastReportGenerated  types.ReportID
}

// Manager owns the session context for every user.
type Manager struct {
	mu     sync.Mutex
	byUser map[string]*Context
}

func NewManager() *Manager {
	return &Manager{byUser: make(map[string]*Context)}
}

// Get returns a copy of the user's context.
func (m *Manager) Get(userID string) Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byUser[userID]; ok {
		return *c
	}
	return Context{}
}

// Apply overwrites the context fields the update explicitly sets.
func (m *Manager) Apply(userID string, u *types.ContextUpdate) {
	if u == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byUser[userID]
	if !ok {
		c = &Context{}
		m.byUser[userID] = c
	}
	if u.SetFiltered {
		c.LastFilteredInvoices = u.LastFilteredInvoices
		c.LastFilterParameters = u.LastFilterParameters
	}
	if u.LastAnalysis != nil {
		c.LastAnalysis = u.LastAnalysis
		c.AnalyzedInvoices = u.AnalyzedInvoices
	}
	if u.LastTicketCreated != "" {
		c.LastTicketCreated = u.LastTicketCreated
	}
	if u.LastReportGenerated != "" {
		c.LastReportGenerated = u.LastReportGenerated
	}
}

// Clear drops the user's context.
func (m *Manager) Clear(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byUser, userID)
}

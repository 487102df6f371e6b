// internal/store/store.go
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/user/finassist/internal/policy"
	"github.com/user/finassist/internal/types"
)

// stampLayout matches the persisted timestamp shape; a literal "Z" is
// appended without converting to UTC. See DESIGN.md.
const stampLayout = "2006-01-02T15:04:05.000000"

// Store owns all persisted collections. It loads every collection into
// memory at startup and is the only writer to the backing files; the
// mutating paths are ticket creation and message saving, both of which
// write through to disk synchronously.
type Store struct {
	dataDir string
	catalog *policy.Catalog
	now     func() time.Time

	mu            sync.RWMutex
	users         []types.User
	invoices      []types.Invoice
	vendors       []types.Vendor
	tickets       []types.Ticket
	conversations []types.Conversation
	reports       []types.Report
}

// Per-file root objects, each keyed by the collection name.
type usersFile struct {
	Users []types.User `json:"users"`
}
type invoicesFile struct {
	Invoices []types.Invoice `json:"invoices"`
}
type vendorsFile struct {
	Vendors []types.Vendor `json:"vendors"`
}
type ticketsFile struct {
	SupportTickets []types.Ticket `json:"support_tickets"`
}
type conversationsFile struct {
	Conversations []types.Conversation `json:"conversations"`
}
type reportsFile struct {
	Reports []types.Report `json:"reports"`
}
type allowedActionsFile struct {
	AllowedActions map[string][]policy.Action `json:"allowed_actions"`
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store's clock. Timestamps, conversation-day
// grouping, and ticket id years all derive from it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads every named collection from dataDir. A missing collection file
// is a hard error: there is no partial-start mode.
func Open(dataDir string, opts ...Option) (*Store, error) {
	s := &Store{
		dataDir: dataDir,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	var users usersFile
	if err := readCollection(dataDir, "users.json", &users); err != nil {
		return nil, err
	}
	var invoices invoicesFile
	if err := readCollection(dataDir, "invoices.json", &invoices); err != nil {
		return nil, err
	}
	var vendors vendorsFile
	if err := readCollection(dataDir, "vendors.json", &vendors); err != nil {
		return nil, err
	}
	var tickets ticketsFile
	if err := readCollection(dataDir, "support_tickets.json", &tickets); err != nil {
		return nil, err
	}
	var conversations conversationsFile
	if err := readCollection(dataDir, "conversations.json", &conversations); err != nil {
		return nil, err
	}
	var reports reportsFile
	if err := readCollection(dataDir, "reports.json", &reports); err != nil {
		return nil, err
	}
	var actions allowedActionsFile
	if err := readCollection(dataDir, "allowed_actions.json", &actions); err != nil {
		return nil, err
	}

	s.users = users.Users
	s.invoices = invoices.Invoices
	s.vendors = vendors.Vendors
	s.tickets = tickets.SupportTickets
	s.conversations = conversations.Conversations
	s.reports = reports.Reports
	s.catalog = policy.NewCatalog(actions.AllowedActions)

	return s, nil
}

func readCollection(dataDir, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(dataDir, name))
	if err != nil {
		return fmt.Errorf("load collection %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal collection %s: %w", name, err)
	}
	return nil
}

// saveCollection marshals with indentation and writes atomically via a
// temp file and rename.
func (s *Store) saveCollection(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", name, err)
	}
	path := filepath.Join(s.dataDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp collection %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp collection %s: %w", name, err)
	}
	return nil
}

// stamp formats the current time in the persisted timestamp shape.
func (s *Store) stamp() string {
	return s.now().Format(stampLayout) + "Z"
}

// Catalog returns the role-action catalog loaded from allowed_actions.json.
func (s *Store) Catalog() *policy.Catalog {
	return s.catalog
}

// UserByID looks a user up by id.
func (s *Store) UserByID(id string) (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return types.User{}, false
}

// Role returns the user's role, defaulting to the most restrictive one for
// unknown users.
func (s *Store) Role(userID string) string {
	if u, ok := s.UserByID(userID); ok {
		return u.Role
	}
	return types.RoleReportViewer
}

// CanPerform reports whether the user's role permits the named action.
// Unknown users can perform nothing.
func (s *Store) CanPerform(userID, action string) bool {
	u, ok := s.UserByID(userID)
	if !ok {
		return false
	}
	return s.catalog.Allowed(u.Role, action)
}

// AllowedActions returns the action catalog entries for the user's role.
func (s *Store) AllowedActions(userID string) []policy.Action {
	return s.catalog.ActionsFor(s.Role(userID))
}

// AllUsers returns every user, for the role-switching demo selector.
func (s *Store) AllUsers() []types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]types.User, len(s.users))
	copy(users, s.users)
	return users
}

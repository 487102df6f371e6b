// internal/policy/policy.go
package policy

// Action describes one operation a role is permitted to perform.
type Action struct {
	Action      string   `json:"action"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters,omitempty"`
	DataSources []string `json:"data_sources,omitempty"`
}

// Catalog maps roles to their permitted actions. It is loaded once at
// startup and treated as read-only static configuration.
type Catalog struct {
	byRole map[string][]Action
}

func NewCatalog(byRole map[string][]Action) *Catalog {
	if byRole == nil {
		byRole = make(map[string][]Action)
	}
	return &Catalog{byRole: byRole}
}

// Allowed reports whether the given role may perform the named action.
func (c *Catalog) Allowed(role, action string) bool {
	for _, a := range c.byRole[role] {
		if a.Action == action {
			return true
		}
	}
	return false
}

// ActionsFor returns the action list for a role. Unknown roles get nothing.
func (c *Catalog) ActionsFor(role string) []Action {
	return c.byRole[role]
}

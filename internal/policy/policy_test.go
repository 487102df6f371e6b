// internal/policy/policy_test.go
package policy

import (
	"testing"
)

func TestAllowed(t *testing.T) {
	catalog := NewCatalog(map[string][]Action{
		"analyst": {
			{Action: "filter_invoices"},
			{Action: "analyze_failures"},
			{Action: "create_support_ticket"},
		},
		"report_viewer": {
			{Action: "filter_invoices"},
		},
	})

	if !catalog.Allowed("analyst", "create_support_ticket") {
		t.Error("expected analyst to be allowed create_support_ticket")
	}
	if catalog.Allowed("report_viewer", "create_support_ticket") {
		t.Error("expected report_viewer to be denied create_support_ticket")
	}
	if catalog.Allowed("unknown_role", "filter_invoices") {
		t.Error("expected unknown role to be denied everything")
	}
}

func TestActionsFor(t *testing.T) {
	catalog := NewCatalog(map[string][]Action{
		"admin": {
			{Action: "filter_invoices", Description: "Filter invoices by criteria"},
			{Action: "generate_report"},
		},
	})

	actions := catalog.ActionsFor("admin")
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
	if actions[0].Action != "filter_invoices" {
		t.Errorf("expected filter_invoices first, got %s", actions[0].Action)
	}

	if got := catalog.ActionsFor("nobody"); len(got) != 0 {
		t.Errorf("expected no actions for unknown role, got %d", len(got))
	}
}

func TestNilCatalog(t *testing.T) {
	catalog := NewCatalog(nil)
	if catalog.Allowed("admin", "filter_invoices") {
		t.Error("empty catalog should deny everything")
	}
}

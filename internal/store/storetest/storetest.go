// internal/store/storetest/storetest.go

// Package storetest seeds temp-dir data fixtures for tests across packages.
package storetest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/user/finassist/internal/policy"
	"github.com/user/finassist/internal/types"
)

// RefTime is the fixed "now" tests pin the store clock to. It sits inside
// the demo dataset's reference month (September 2024), two days after the
// seeded ticket resolution.
var RefTime = time.Date(2024, 9, 5, 10, 0, 0, 0, time.UTC)

// Clock returns a clock function frozen at RefTime.
func Clock() func() time.Time {
	return func() time.Time { return RefTime }
}

func amt(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// SeedDir writes the standard demo fixture collections into a temp dir:
// three roles in ws_001, a fourth user in ws_002, nine ws_001 invoices
// (three failed IndiSky missing_gstin invoices summing 15,000), one
// out-of-workspace invoice, and a resolved GSTIN ticket.
func SeedDir(tb testing.TB) string {
	tb.Helper()
	dir := tb.TempDir()

	write(tb, dir, "users.json", map[string]any{"users": []types.User{
		{ID: "usr_001", Name: "Arjun Mehta", Role: types.RoleAdmin, WorkspaceID: "ws_001"},
		{ID: "usr_002", Name: "Priya Sharma", Role: types.RoleAnalyst, WorkspaceID: "ws_001"},
		{ID: "usr_003", Name: "Rahul Verma", Role: types.RoleReportViewer, WorkspaceID: "ws_001"},
		{ID: "usr_004", Name: "Meera Nair", Role: types.RoleAnalyst, WorkspaceID: "ws_002"},
	}})

	write(tb, dir, "invoices.json", map[string]any{"invoices": []types.Invoice{
		{ID: "inv_001", InvoiceNumber: "INV-IS-2024-101", WorkspaceID: "ws_001", Vendor: "IndiSky", Date: "2024-08-05", Amount: amt(5000), Status: "failed", FailureReason: "missing_gstin"},
		{ID: "inv_002", InvoiceNumber: "INV-IS-2024-102", WorkspaceID: "ws_001", Vendor: "IndiSky", Date: "2024-08-12", Amount: amt(4500), Status: "failed", FailureReason: "missing_gstin"},
		{ID: "inv_003", InvoiceNumber: "INV-IS-2024-103", WorkspaceID: "ws_001", Vendor: "IndiSky", Date: "2024-08-21", Amount: amt(5500), Status: "failed", FailureReason: "missing_gstin"},
		{ID: "inv_004", InvoiceNumber: "INV-SO-2024-214", WorkspaceID: "ws_001", Vendor: "SilverOak Supplies", Date: "2024-08-03", Amount: amt(12000), Status: "processed"},
		{ID: "inv_005", InvoiceNumber: "INV-SO-2024-215", WorkspaceID: "ws_001", Vendor: "SilverOak Supplies", Date: "2024-08-18", Amount: amt(8250.5), Status: "processed"},
		{ID: "inv_006", InvoiceNumber: "INV-BH-2024-077", WorkspaceID: "ws_001", Vendor: "BlueHill Logistics", Date: "2024-08-09", Amount: amt(3200), Status: "failed", FailureReason: "missing_documentation"},
		{ID: "inv_007", InvoiceNumber: "INV-BH-2024-078", WorkspaceID: "ws_001", Vendor: "BlueHill Logistics", Date: "2024-08-25", Amount: amt(7800), Status: "pending_approval"},
		{ID: "inv_008", InvoiceNumber: "INV-SO-2024-201", WorkspaceID: "ws_001", Vendor: "SilverOak Supplies", Date: "2024-07-28", Amount: amt(9100), Status: "processed"},
		{ID: "inv_009", InvoiceNumber: "INV-IS-2024-104", WorkspaceID: "ws_001", Vendor: "IndiSky", Date: "2024-09-02", Amount: amt(5000), Status: "processed"},
		{ID: "inv_101", InvoiceNumber: "INV-IS-2024-901", WorkspaceID: "ws_002", Vendor: "IndiSky", Date: "2024-08-14", Amount: amt(6000), Status: "failed", FailureReason: "missing_gstin"},
	}})

	write(tb, dir, "vendors.json", map[string]any{"vendors": []types.Vendor{
		{Name: "IndiSky", GSTIN: "27AABCI9999B1ZS", Category: "travel"},
		{Name: "SilverOak Supplies", GSTIN: "29AAACS4321K1Z7", Category: "office_supplies"},
		{Name: "BlueHill Logistics", Category: "freight"},
	}})

	write(tb, dir, "support_tickets.json", map[string]any{"support_tickets": []types.Ticket{
		{
			ID:               "TKT-2024-X7Q",
			Title:            "Missing GSTIN in vendor invoices",
			Description:      "3 invoices from IndiSky failed processing due to missing GSTIN.",
			Status:           types.TicketResolved,
			Priority:         "high",
			CreatedBy:        "usr_002",
			AssignedTo:       "compliance_team",
			CreatedDate:      "2024-09-01T10:15:22.000000Z",
			ResolvedDate:     "2024-09-03T16:42:08.000000Z",
			WorkspaceID:      "ws_001",
			AffectedInvoices: []string{"inv_001", "inv_002", "inv_003"},
			Resolution:       "IndiSky provided GSTIN and resubmitted corrected invoices.",
			Updates: []types.TicketUpdate{
				{Timestamp: "2024-09-01T10:15:22.000000Z", Status: "open", Note: "Ticket created automatically by assistant", UpdatedBy: "system"},
				{Timestamp: "2024-09-03T16:42:08.000000Z", Status: "resolved", Note: "GSTIN received, corrected invoices processed", UpdatedBy: "compliance_team"},
			},
		},
	}})

	write(tb, dir, "conversations.json", map[string]any{"conversations": []types.Conversation{}})
	write(tb, dir, "reports.json", map[string]any{"reports": []types.Report{}})

	viewerActions := []policy.Action{
		{Action: "filter_invoices"},
		{Action: "generate_report"},
	}
	analystActions := append([]policy.Action{
		{Action: "analyze_failures"},
		{Action: "create_support_ticket"},
	}, viewerActions...)
	write(tb, dir, "allowed_actions.json", map[string]any{"allowed_actions": map[string][]policy.Action{
		types.RoleAdmin:        analystActions,
		types.RoleAnalyst:      analystActions,
		types.RoleReportViewer: viewerActions,
	}})

	return dir
}

func write(tb testing.TB, dir, name string, v any) {
	tb.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		tb.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		tb.Fatal(err)
	}
}

// internal/store/invoices_test.go
package store

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/user/finassist/internal/types"
)

func TestFilterInvoicesWorkspaceScope(t *testing.T) {
	s := openSeeded(t)

	invoices := s.FilterInvoices("usr_002", types.Params{})
	if len(invoices) != 9 {
		t.Fatalf("expected 9 ws_001 invoices, got %d", len(invoices))
	}
	for _, inv := range invoices {
		if inv.WorkspaceID != "ws_001" {
			t.Errorf("invoice %s leaked from workspace %s", inv.ID, inv.WorkspaceID)
		}
	}
}

func TestFilterInvoicesPredicates(t *testing.T) {
	s := openSeeded(t)

	filters := types.Params{
		Vendor:    "indisky",
		Status:    "FAILED",
		DateRange: &types.DateRange{Start: "2024-08-01", End: "2024-08-31"},
	}
	invoices := s.FilterInvoices("usr_002", filters)
	if len(invoices) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(invoices))
	}
	total := decimal.Zero
	for _, inv := range invoices {
		if !strings.EqualFold(inv.Vendor, "IndiSky") {
			t.Errorf("invoice %s has vendor %s", inv.ID, inv.Vendor)
		}
		if inv.Status != "failed" {
			t.Errorf("invoice %s has status %s", inv.ID, inv.Status)
		}
		if inv.Date < "2024-08-01" || inv.Date > "2024-08-31" {
			t.Errorf("invoice %s date %s out of range", inv.ID, inv.Date)
		}
		total = total.Add(inv.Amount)
	}
	if !total.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("expected total 15000, got %s", total)
	}
}

func TestFilterInvoicesAmountRange(t *testing.T) {
	s := openSeeded(t)

	min := decimal.NewFromInt(5000)
	max := decimal.NewFromInt(9100)
	invoices := s.FilterInvoices("usr_002", types.Params{
		AmountRange: &types.AmountRange{Min: &min, Max: &max},
	})
	// Bounds are inclusive: 5000 and 9100 both match.
	want := []string{"inv_001", "inv_003", "inv_005", "inv_007", "inv_008", "inv_009"}
	var got []string
	for _, inv := range invoices {
		got = append(got, inv.ID)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("amount range mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterInvoicesIdempotent(t *testing.T) {
	s := openSeeded(t)

	filters := types.Params{Vendor: "IndiSky", Status: "failed"}
	first := s.FilterInvoices("usr_002", filters)
	second := s.FilterInvoices("usr_002", filters)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated filter differed (-first +second):\n%s", diff)
	}
}

func TestFilterInvoicesDenied(t *testing.T) {
	s := openSeeded(t)

	// usr_999 does not exist, so it holds no permissions: silent empty.
	if got := s.FilterInvoices("usr_999", types.Params{}); len(got) != 0 {
		t.Errorf("expected empty result for unknown user, got %d invoices", len(got))
	}
}

func TestAnalyzeInvoiceFailures(t *testing.T) {
	s := openSeeded(t)

	analysis := s.AnalyzeInvoiceFailures("usr_002", []string{"inv_001", "inv_002", "inv_003", "inv_006", "inv_999"})
	if analysis == nil {
		t.Fatal("expected analysis for analyst")
	}
	if analysis.TotalInvoices != 4 {
		t.Errorf("expected 4 resolved invoices (unknown skipped), got %d", analysis.TotalInvoices)
	}
	if analysis.FailureReasons["missing_gstin"] != 3 {
		t.Errorf("expected 3 missing_gstin, got %d", analysis.FailureReasons["missing_gstin"])
	}
	if analysis.FailureReasons["missing_documentation"] != 1 {
		t.Errorf("expected 1 missing_documentation, got %d", analysis.FailureReasons["missing_documentation"])
	}
	if !analysis.TotalAmount.Equal(decimal.NewFromInt(18200)) {
		t.Errorf("expected total 18200, got %s", analysis.TotalAmount)
	}
	wantVendors := []string{"IndiSky", "BlueHill Logistics"}
	if diff := cmp.Diff(wantVendors, analysis.AffectedVendors); diff != "" {
		t.Errorf("vendor mismatch (-want +got):\n%s", diff)
	}
	if len(analysis.ComplianceIssues) != 3 {
		t.Fatalf("expected 3 compliance issues, got %d", len(analysis.ComplianceIssues))
	}
	if analysis.ComplianceIssues[0].Issue != "GSTIN required for B2B transactions >₹500" {
		t.Errorf("unexpected issue text: %s", analysis.ComplianceIssues[0].Issue)
	}
	if diff := cmp.Diff([]string{"missing_gstin", "missing_documentation"}, analysis.ReasonOrder); diff != "" {
		t.Errorf("reason order mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeInvoiceFailuresDenied(t *testing.T) {
	s := openSeeded(t)

	if got := s.AnalyzeInvoiceFailures("usr_003", []string{"inv_001"}); got != nil {
		t.Errorf("expected nil analysis for report_viewer, got %+v", got)
	}
}

func TestVendorByName(t *testing.T) {
	s := openSeeded(t)

	v, ok := s.VendorByName("indisky")
	if !ok {
		t.Fatal("expected case-insensitive vendor lookup to succeed")
	}
	if v.GSTIN != "27AABCI9999B1ZS" {
		t.Errorf("unexpected GSTIN: %s", v.GSTIN)
	}
}

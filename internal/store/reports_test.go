// internal/store/reports_test.go
package store

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/user/finassist/internal/types"
)

func TestGenerateComplianceReport(t *testing.T) {
	s := openSeeded(t)

	report := s.GenerateReport("usr_002", "compliance_status", types.Params{
		Vendor:    "IndiSky",
		DateRange: &types.DateRange{Start: "2024-08-01", End: "2024-09-30"},
	})
	if report == nil {
		t.Fatal("expected report for analyst")
	}
	if report.Name != "IndiSky_Compliance_Report_Sep2024.pdf" {
		t.Errorf("unexpected report name: %s", report.Name)
	}

	// 3 failed + 1 processed IndiSky invoices in the window.
	summary := report.Summary
	if summary.TotalInvoices != 4 || summary.ProcessedInvoices != 1 || summary.FailedInvoices != 3 {
		t.Errorf("unexpected partition: %+v", summary)
	}
	if summary.ComplianceRate != 25 {
		t.Errorf("expected compliance rate 25, got %v", summary.ComplianceRate)
	}
	if !summary.TotalAmount.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("expected total 20000, got %s", summary.TotalAmount)
	}
	if !summary.ProcessedAmount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected processed 5000, got %s", summary.ProcessedAmount)
	}
}

func TestComplianceRateBounds(t *testing.T) {
	s := openSeeded(t)

	// No invoices in the window: rate must be exactly 0, not a division error.
	report := s.GenerateReport("usr_002", "compliance_status", types.Params{
		DateRange: &types.DateRange{Start: "2030-01-01", End: "2030-01-31"},
	})
	if report == nil {
		t.Fatal("expected report")
	}
	if report.Summary.ComplianceRate != 0 {
		t.Errorf("expected 0 rate for empty set, got %v", report.Summary.ComplianceRate)
	}

	report = s.GenerateReport("usr_002", "compliance_status", types.Params{})
	rate := report.Summary.ComplianceRate
	if rate < 0 || rate > 100 {
		t.Errorf("compliance rate out of [0,100]: %v", rate)
	}
}

func TestGenerateReportWithoutVendor(t *testing.T) {
	s := openSeeded(t)

	report := s.GenerateReport("usr_002", "compliance_status", types.Params{})
	if report == nil {
		t.Fatal("expected report")
	}
	if report.Name != "Compliance_Report_Sep2024.pdf" {
		t.Errorf("unexpected vendorless report name: %s", report.Name)
	}
}

func TestGenerateReportDeniedAndUnknownType(t *testing.T) {
	s := openSeeded(t)

	if got := s.GenerateReport("usr_999", "compliance_status", types.Params{}); got != nil {
		t.Errorf("expected nil report for unknown user, got %+v", got)
	}
	if got := s.GenerateReport("usr_002", "general", types.Params{}); got != nil {
		t.Errorf("expected nil report for unimplemented type, got %+v", got)
	}
}

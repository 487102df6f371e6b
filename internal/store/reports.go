// internal/store/reports.go
package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/user/finassist/internal/types"
)

// GenerateReport builds a report of the given type. Only compliance_status
// is implemented; other types, and callers without the generate_report
// permission, get nil.
func (s *Store) GenerateReport(userID, reportType string, params types.Params) *types.Report {
	if !s.CanPerform(userID, "generate_report") {
		return nil
	}
	if reportType != "compliance_status" {
		return nil
	}
	return s.complianceReport(userID, params)
}

// complianceReport re-runs the invoice filter with the report's vendor and
// date parameters, partitions results into processed vs failed, and
// computes the compliance rate. An empty invoice set yields a zero rate.
func (s *Store) complianceReport(userID string, params types.Params) *types.Report {
	user, _ := s.UserByID(userID)

	filters := types.Params{Vendor: params.Vendor, DateRange: params.DateRange}
	invoices := s.FilterInvoices(userID, filters)

	summary := types.ReportSummary{
		TotalInvoices:   len(invoices),
		TotalAmount:     decimal.Zero,
		ProcessedAmount: decimal.Zero,
	}
	for _, inv := range invoices {
		summary.TotalAmount = summary.TotalAmount.Add(inv.Amount)
		switch inv.Status {
		case types.StatusProcessed:
			summary.ProcessedInvoices++
			summary.ProcessedAmount = summary.ProcessedAmount.Add(inv.Amount)
		case types.StatusFailed:
			summary.FailedInvoices++
		}
	}
	if summary.TotalInvoices > 0 {
		summary.ComplianceRate = float64(summary.ProcessedInvoices) / float64(summary.TotalInvoices) * 100
	}

	name := fmt.Sprintf("Compliance_Report_%s.pdf", s.now().Format("Jan2006"))
	if params.Vendor != "" {
		name = fmt.Sprintf("%s_Compliance_Report_%s.pdf", params.Vendor, s.now().Format("Jan2006"))
	}

	id := types.NewReportID()
	return &types.Report{
		ID:            id,
		Name:          name,
		Type:          "compliance_status",
		GeneratedDate: s.stamp(),
		GeneratedBy:   userID,
		WorkspaceID:   user.WorkspaceID,
		Parameters:    params,
		Summary:       summary,
		FilePath:      fmt.Sprintf("/reports/%s.pdf", id),
		AccessLevel:   "workspace",
		DataSources:   []string{"invoices", "support_tickets", "vendors"},
	}
}

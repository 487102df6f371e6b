// internal/store/invoices.go
package store

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user/finassist/internal/types"
)

// FilterInvoices returns the caller's workspace invoices matching every
// supplied filter. Filters are ANDed; absent filters impose no constraint.
// A caller without the filter_invoices permission gets an empty result, not
// an error. Order is the store's insertion order.
func (s *Store) FilterInvoices(userID string, filters types.Params) []types.Invoice {
	if !s.CanPerform(userID, "filter_invoices") {
		return nil
	}
	user, _ := s.UserByID(userID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []types.Invoice
	for _, inv := range s.invoices {
		if inv.WorkspaceID != user.WorkspaceID {
			continue
		}
		if !matchesFilters(inv, filters) {
			continue
		}
		matched = append(matched, inv)
	}
	return matched
}

func matchesFilters(inv types.Invoice, filters types.Params) bool {
	if dr := filters.DateRange; dr != nil && dr.Start != "" && dr.End != "" {
		// Inclusive lexicographic ISO-date comparison.
		if inv.Date < dr.Start || inv.Date > dr.End {
			return false
		}
	}
	if filters.Vendor != "" && !strings.EqualFold(inv.Vendor, filters.Vendor) {
		return false
	}
	if filters.Status != "" && !strings.EqualFold(inv.Status, filters.Status) {
		return false
	}
	if ar := filters.AmountRange; ar != nil {
		min := decimal.Zero
		if ar.Min != nil {
			min = *ar.Min
		}
		if inv.Amount.LessThan(min) {
			return false
		}
		if ar.Max != nil && inv.Amount.GreaterThan(*ar.Max) {
			return false
		}
	}
	return true
}

// InvoiceByID looks an invoice up by id.
func (s *Store) InvoiceByID(id string) (types.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return types.Invoice{}, false
}

// VendorByName looks a vendor up by case-insensitive name.
func (s *Store) VendorByName(name string) (types.Vendor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.vendors {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return types.Vendor{}, false
}

// AnalyzeInvoiceFailures tallies failure reasons, total amount, distinct
// vendors, and compliance issues across the given invoice ids. Unknown ids
// are skipped silently. A caller without the analyze_failures permission
// gets nil.
func (s *Store) AnalyzeInvoiceFailures(userID string, invoiceIDs []string) *types.Analysis {
	if !s.CanPerform(userID, "analyze_failures") {
		return nil
	}

	analysis := &types.Analysis{
		FailureReasons: make(map[string]int),
		TotalAmount:    decimal.Zero,
	}
	seenVendors := make(map[string]bool)

	for _, id := range invoiceIDs {
		inv, ok := s.InvoiceByID(id)
		if !ok {
			continue
		}
		analysis.TotalInvoices++

		reason := inv.FailureReason
		if reason == "" {
			reason = "unknown"
		}
		if analysis.FailureReasons[reason] == 0 {
			analysis.ReasonOrder = append(analysis.ReasonOrder, reason)
		}
		analysis.FailureReasons[reason]++

		analysis.TotalAmount = analysis.TotalAmount.Add(inv.Amount)

		vendor := inv.Vendor
		if vendor == "" {
			vendor = "Unknown"
		}
		if !seenVendors[vendor] {
			seenVendors[vendor] = true
			analysis.AffectedVendors = append(analysis.AffectedVendors, vendor)
		}

		if reason == "missing_gstin" {
			analysis.ComplianceIssues = append(analysis.ComplianceIssues, types.ComplianceIssue{
				InvoiceID: inv.ID,
				Issue:     "GSTIN required for B2B transactions >₹500",
				Vendor:    inv.Vendor,
				Amount:    inv.Amount,
			})
		}
	}

	return analysis
}

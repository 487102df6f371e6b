// internal/assist/failures.go
package assist

import (
	"fmt"
	"strings"

	"github.com/user/finassist/internal/session"
	"github.com/user/finassist/internal/types"
)

// invoiceListCap bounds how many invoice numbers a single-reason
// explanation enumerates.
const invoiceListCap = 7

// failureCauses holds the cause-specific prose for the known failure
// reasons. The first element takes the invoice count, the second is the
// fixed follow-up sentence.
var failureCauses = map[string][2]string{
	"missing_gstin": {
		"failed because GSTIN (GST Identification Number) is missing from the invoice files.",
		"Indian tax law requires GSTIN for B2B transactions above ₹500.",
	},
	"invalid_amount": {
		"failed due to invalid amount calculations.",
		"The invoice amounts don't match the purchase order or have calculation errors.",
	},
	"duplicate_invoice": {
		"failed because they are duplicates.",
		"These invoices have already been submitted and processed previously.",
	},
	"expired_po": {
		"failed because the purchase order has expired.",
		"The invoices reference purchase orders that are no longer valid.",
	},
	"missing_documentation": {
		"failed due to missing supporting documentation.",
		"Required supporting documents like delivery receipts or contracts are not attached.",
	},
}

// failureLabels are the short per-reason labels used in multi-reason
// breakdowns.
var failureLabels = map[string]string{
	"missing_gstin":         "Missing GSTIN",
	"invalid_amount":        "Invalid amount calculation",
	"duplicate_invoice":     "Duplicate submission",
	"expired_po":            "Expired purchase order",
	"missing_documentation": "Missing documentation",
}

func (p *Processor) handleExplainFailures(userID string, sess session.Context) *types.Response {
	invoiceIDs := sess.LastFilteredInvoices
	if len(invoiceIDs) == 0 {
		return &types.Response{
			Content:          "I don't have any recent invoice data to analyze. Please filter some invoices first.",
			ActionsPerformed: []types.ActionTrace{},
		}
	}

	analysis := p.store.AnalyzeInvoiceFailures(userID, invoiceIDs)
	if analysis == nil {
		return &types.Response{
			Content:          "You don't have permission to analyze invoice failures. No actions available.",
			ActionsPerformed: []types.ActionTrace{},
		}
	}

	var parts []string
	if len(analysis.ReasonOrder) == 1 {
		reason := analysis.ReasonOrder[0]
		count := analysis.FailureReasons[reason]
		if cause, ok := failureCauses[reason]; ok {
			parts = append(parts, fmt.Sprintf("All %d invoice%s %s", count, plural(count), cause[0]))
			parts = append(parts, cause[1])
		} else {
			parts = append(parts, fmt.Sprintf("All %d invoice%s failed due to %s.", count, plural(count), strings.ReplaceAll(reason, "_", " ")))
		}

		var numbers []string
		for _, id := range invoiceIDs {
			if len(numbers) == invoiceListCap {
				break
			}
			inv, ok := p.store.InvoiceByID(id)
			if !ok || inv.FailureReason != reason {
				continue
			}
			number := inv.InvoiceNumber
			if number == "" {
				number = inv.ID
			}
			numbers = append(numbers, number)
		}
		if len(numbers) > 0 {
			parts = append(parts, fmt.Sprintf("The invoice%s: %s.", plural(len(numbers)), strings.Join(numbers, ", ")))
		}
	} else if len(analysis.ReasonOrder) > 1 {
		parts = append(parts, fmt.Sprintf("The %d invoices failed for different reasons:", analysis.TotalInvoices))
		for _, reason := range analysis.ReasonOrder {
			count := analysis.FailureReasons[reason]
			label, ok := failureLabels[reason]
			if !ok {
				label = strings.ReplaceAll(reason, "_", " ")
			}
			parts = append(parts, fmt.Sprintf("• %d invoice%s: %s", count, plural(count), label))
		}
	}

	hasGSTIN := analysis.FailureReasons["missing_gstin"] > 0
	if hasGSTIN || analysis.FailureReasons["missing_documentation"] > 0 {
		parts = append(parts, "\n\nWould you like me to create a ticket and notify you when this is fixed?")
	}

	explanation := &types.Explanation{
		RootCause:             "unknown",
		AffectedFiles:         analysis.TotalInvoices,
		ComplianceRequirement: "Various compliance requirements",
		NextSteps:             "Review specific failure reasons",
	}
	if len(analysis.ReasonOrder) > 0 {
		explanation.RootCause = analysis.ReasonOrder[0]
	}
	if hasGSTIN {
		explanation.ComplianceRequirement = "GSTIN mandatory for B2B transactions >₹500"
		explanation.NextSteps = "Contact vendor for updated invoices with GSTIN"
		explanation.SuggestedAction = "Create support ticket for GSTIN compliance issue"
	}

	return &types.Response{
		Content: strings.Join(parts, " "),
		ActionsPerformed: []types.ActionTrace{{
			Action:        "analyze_failures",
			InvoiceIDs:    invoiceIDs,
			DataConsulted: []string{"invoices", "compliance_rules", "vendors"},
		}},
		DataShown:   &types.DataShown{Analysis: analysis},
		Explanation: explanation,
		ContextUpdate: &types.ContextUpdate{
			LastAnalysis:     analysis,
			AnalyzedInvoices: invoiceIDs,
		},
	}
}

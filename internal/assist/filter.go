// internal/assist/filter.go
package assist

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user/finassist/internal/intent"
	"github.com/user/finassist/internal/types"
)

// displayCap bounds how many invoices are shown in the response; the
// context update still records every matched id.
const displayCap = 10

func (p *Processor) handleFilterInvoices(userID, input string) *types.Response {
	params := intent.Extract(input, intent.FilterInvoices)
	invoices := p.store.FilterInvoices(userID, params)

	total := decimal.Zero
	reasons := make(map[string]int)
	var reasonOrder []string
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
		total = total.Add(inv.Amount)
		if inv.FailureReason != "" {
			if reasons[inv.FailureReason] == 0 {
				reasonOrder = append(reasonOrder, inv.FailureReason)
			}
			reasons[inv.FailureReason]++
		}
	}

	var b strings.Builder
	if len(invoices) > 0 {
		fmt.Fprintf(&b, "I found %d invoice%s", len(invoices), plural(len(invoices)))
		if params.Vendor != "" {
			fmt.Fprintf(&b, " from %s", params.Vendor)
		}
		if params.DateRange != nil {
			fmt.Fprintf(&b, " for %s to %s", params.DateRange.Start, params.DateRange.End)
		}
		if params.Status != "" {
			fmt.Fprintf(&b, " with status '%s'", params.Status)
		}
		fmt.Fprintf(&b, ". Total amount: ₹%s.", formatAmount(total, 2))

		if strings.EqualFold(params.Status, types.StatusFailed) && len(reasons) > 0 {
			if len(reasonOrder) == 1 {
				fmt.Fprintf(&b, " All failures are due to %s.", strings.ReplaceAll(reasonOrder[0], "_", " "))
			} else {
				breakdown := make([]string, 0, len(reasonOrder))
				for _, reason := range reasonOrder {
					breakdown = append(breakdown, fmt.Sprintf("%s (%d)", strings.ReplaceAll(reason, "_", " "), reasons[reason]))
				}
				fmt.Fprintf(&b, " Failure reasons: %s.", strings.Join(breakdown, ", "))
			}
		}
	} else {
		b.WriteString("No invoices found matching your criteria.")
	}

	display := invoices
	if len(display) > displayCap {
		display = display[:displayCap]
	}
	dataShown := &types.DataShown{
		InvoiceIDs:  ids,
		TotalAmount: total,
		Invoices:    display,
	}
	if len(reasons) > 0 {
		dataShown.FailureReasons = reasons
	}

	return &types.Response{
		Content: b.String(),
		ActionsPerformed: []types.ActionTrace{{
			Action:        "filter_invoices",
			Parameters:    &params,
			ResultsCount:  len(invoices),
			DataConsulted: []string{"invoices", "vendors"},
		}},
		DataShown: dataShown,
		ContextUpdate: &types.ContextUpdate{
			SetFiltered:          true,
			LastFilteredInvoices: ids,
			LastFilterParameters: &params,
		},
	}
}

// internal/assist/report.go
package assist

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/user/finassist/internal/session"
	"github.com/user/finassist/internal/types"
)

var reportPhrasePattern = regexp.MustCompile(`(?i)download\s+(?:the\s+)?(.+?)\s+report`)

func (p *Processor) handleDownloadReport(userID, input string, sess session.Context) *types.Response {
	phrase := "compliance"
	if m := reportPhrasePattern.FindStringSubmatch(input); m != nil {
		phrase = m[1]
	}

	var reportType string
	var params types.Params
	lower := strings.ToLower(phrase)
	if strings.Contains(lower, "fixed") || strings.Contains(lower, "compliance") {
		reportType = "compliance_status"
		// The report window is hardcoded to the current calendar month.
		now := p.now()
		params.DateRange = &types.DateRange{
			Start: now.Format("2006-01") + "-01",
			End:   now.Format("2006-01-02"),
		}
		if sess.LastFilterParameters != nil {
			params.Vendor = sess.LastFilterParameters.Vendor
		}
	} else {
		reportType = "general"
	}

	report := p.store.GenerateReport(userID, reportType, params)
	if report == nil {
		return &types.Response{
			Content:          "Sorry, I couldn't generate the report. Please check your permissions.",
			ActionsPerformed: []types.ActionTrace{},
		}
	}

	summary := report.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "Generated and downloaded '%s'.", report.Name)
	fmt.Fprintf(&b, " Report shows %d invoice%s processed (₹%s)",
		summary.ProcessedInvoices, plural(summary.ProcessedInvoices), formatAmount(summary.ProcessedAmount, 0))
	if summary.FailedInvoices > 0 {
		fmt.Fprintf(&b, " with valid GSTIN. %d remaining invoice%s still need vendor correction.",
			summary.FailedInvoices, plural(summary.FailedInvoices))
	} else {
		b.WriteString(" with valid GSTIN.")
	}

	return &types.Response{
		Content: b.String(),
		ActionsPerformed: []types.ActionTrace{{
			Action:        "generate_report",
			Parameters:    &params,
			FileGenerated: report.Name,
			DataConsulted: report.DataSources,
		}},
		ReportSummary: &summary,
		ContextUpdate: &types.ContextUpdate{
			LastReportGenerated: report.ID,
		},
	}
}

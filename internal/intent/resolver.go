// internal/intent/resolver.go

// Package intent classifies free-text requests into a fixed set of action
// categories and extracts their typed parameters. Classification is ordered
// pattern matching, not NLU: category order is the tie-break rule, so text
// matching patterns from two categories resolves to whichever category is
// checked first.
package intent

import (
	"regexp"
	"strings"
)

// Category is one of the closed set of recognized action categories.
type Category string

const (
	FilterInvoices  Category = "filter_invoices"
	ExplainFailures Category = "explain_failures"
	CreateTicket    Category = "create_ticket"
	DownloadReport  Category = "download_report"
	GeneralQuestion Category = "general_question"
)

// Bare affirmatives force ticket creation so a suggested-action button's
// synthetic follow-up ("yes") triggers the offered ticket without
// re-deriving intent.
var affirmatives = map[string]bool{
	"yes": true, "y": true, "sure": true, "ok": true,
	"okay": true, "please": true, "create it": true, "do it": true,
}

// categoryPatterns is evaluated in order; the first pattern matching
// anywhere in the lower-cased input wins its category.
var categoryPatterns = []struct {
	category Category
	patterns []*regexp.Regexp
}{
	{FilterInvoices, compileAll(
		`filter\s+invoices?\s+for\s+(.+?)(?:,|$)`,
		`show\s+invoices?\s+(?:for\s+)?(.+?)(?:,|$)`,
		`find\s+invoices?\s+(?:for\s+)?(.+?)(?:,|$)`,
		`get\s+invoices?\s+(?:for\s+)?(.+?)(?:,|$)`,
	)},
	{ExplainFailures, compileAll(
		`why\s+did\s+(?:this|these|they)\s+fail\??`,
		`what\s+(?:caused|made)\s+(?:this|these|them)\s+(?:to\s+)?fail\??`,
		`explain\s+(?:the\s+)?failures?`,
		`what\s+went\s+wrong\??`,
	)},
	{CreateTicket, compileAll(
		`create\s+(?:a\s+)?ticket`,
		`open\s+(?:a\s+)?ticket`,
		`file\s+(?:a\s+)?ticket`,
		`report\s+(?:this\s+)?(?:issue|problem)`,
	)},
	{DownloadReport, compileAll(
		`download\s+(?:the\s+)?(.+?)\s+report`,
		`generate\s+(?:and\s+)?download\s+(.+?)\s+report`,
		`get\s+(?:the\s+)?(.+?)\s+report`,
		`export\s+(?:the\s+)?(.+?)\s+report`,
	)},
	{GeneralQuestion, compileAll(
		`what\s+is\s+(.+?)\??`,
		`how\s+(?:does|do)\s+(.+?)\s+work\??`,
		`tell\s+me\s+about\s+(.+?)\??`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(expr)
	}
	return patterns
}

// Detect classifies the input. Unrecognized input falls through to
// GeneralQuestion, never an error.
func Detect(input string) Category {
	lower := strings.ToLower(strings.TrimSpace(input))

	if affirmatives[lower] {
		return CreateTicket
	}

	for _, cp := range categoryPatterns {
		for _, re := range cp.patterns {
			if re.MatchString(lower) {
				return cp.category
			}
		}
	}
	return GeneralQuestion
}

// internal/intent/extractor.go
package intent

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user/finassist/internal/store"
	"github.com/user/finassist/internal/types"
)

// Parameter alternatives run against the original-case input with
// case-insensitive matching. The first alternative that matches sets the
// parameter; later alternatives for the same parameter are not tried.
var (
	lastMonthPattern = regexp.MustCompile(`(?i)last\s+month`)
	thisMonthPattern = regexp.MustCompile(`(?i)this\s+month`)
	datePairPattern  = regexp.MustCompile(`(?i)(\d{4}-\d{2}-\d{2})\s+to\s+(\d{4}-\d{2}-\d{2})`)

	vendorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)vendor\s*=\s*['"]([^'"]+)['"]`),
		regexp.MustCompile(`(?i)vendor\s*=\s*([A-Za-z][A-Za-z0-9\s]*[A-Za-z0-9])`),
		regexp.MustCompile(`(?i)vendor\s*[=:]\s*([A-Za-z][A-Za-z0-9\s]*[A-Za-z0-9])`),
		regexp.MustCompile(`(?i)from\s+([A-Za-z][A-Za-z\s]*[A-Za-z])`),
	}

	// The two-word phrase is tried before the bare token so
	// "status = pending approval" normalizes to pending_approval rather
	// than stopping at "pending".
	statusPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)status\s*[=:]\s*['"]([^'"]+)['"]`),
		regexp.MustCompile(`(?i)status\s*[=:]\s*(pending\s+approval)`),
		regexp.MustCompile(`(?i)status\s*[=:]\s*([^,\s.]+)`),
		regexp.MustCompile(`(?i)pending\s+approval`),
		regexp.MustCompile(`(?i)\b(failed|processed|pending|completed)\b`),
	}

	amountGreaterPattern = regexp.MustCompile(`(?i)amount\s*>\s*(\d+(?:\.\d+)?)`)
	amountLessPattern    = regexp.MustCompile(`(?i)amount\s*<\s*(\d+(?:\.\d+)?)`)
	amountEqualPattern   = regexp.MustCompile(`(?i)amount\s*=\s*(\d+(?:\.\d+)?)`)

	notifyPattern = regexp.MustCompile(`(?i)notify\s+me\s+when\s+(fixed|resolved|done)`)
)

// Extract pulls the typed parameters relevant to the detected category out
// of the original-case input. Unmatched parameters stay absent.
func Extract(input string, category Category) types.Params {
	var p types.Params
	switch category {
	case FilterInvoices:
		p.DateRange = extractDateRange(input)
		p.Vendor = extractFirst(input, vendorPatterns)
		p.Status = extractStatus(input)
		p.AmountRange = extractAmountRange(input)
	case CreateTicket:
		if m := notifyPattern.FindStringSubmatch(input); m != nil {
			p.Notify = strings.ToLower(m[1])
		}
	}
	return p
}

func extractDateRange(input string) *types.DateRange {
	if lastMonthPattern.MatchString(input) {
		return store.ParseNaturalLanguageDate("last month")
	}
	if thisMonthPattern.MatchString(input) {
		return store.ParseNaturalLanguageDate("this month")
	}
	if m := datePairPattern.FindStringSubmatch(input); m != nil {
		return &types.DateRange{Start: m[1], End: m[2]}
	}
	return nil
}

func extractFirst(input string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(input); m != nil {
			return cleanValue(m[1])
		}
	}
	return ""
}

func extractStatus(input string) string {
	for _, re := range statusPatterns {
		m := re.FindStringSubmatch(input)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 {
			value = m[1]
		}
		value = cleanValue(value)
		if normalizeSpace(strings.ToLower(value)) == "pending approval" {
			return "pending_approval"
		}
		return value
	}
	return ""
}

// extractAmountRange maps amount comparisons onto the inclusive range the
// invoice filter understands: > sets the lower bound, < the upper, = both.
func extractAmountRange(input string) *types.AmountRange {
	if m := amountGreaterPattern.FindStringSubmatch(input); m != nil {
		n, err := decimal.NewFromString(m[1])
		if err == nil {
			return &types.AmountRange{Min: &n}
		}
	}
	if m := amountLessPattern.FindStringSubmatch(input); m != nil {
		n, err := decimal.NewFromString(m[1])
		if err == nil {
			return &types.AmountRange{Max: &n}
		}
	}
	if m := amountEqualPattern.FindStringSubmatch(input); m != nil {
		n, err := decimal.NewFromString(m[1])
		if err == nil {
			return &types.AmountRange{Min: &n, Max: &n}
		}
	}
	return nil
}

// cleanValue strips trailing punctuation, then one layer of surrounding
// quotes. A quote on only one side is still stripped: deliberate leniency
// for malformed quoting.
func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimRight(value, ".,!?")
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return value[1 : len(value)-1]
		}
	}
	if len(value) > 0 && (value[0] == '\'' || value[0] == '"') {
		value = value[1:]
	}
	if len(value) > 0 && (value[len(value)-1] == '\'' || value[len(value)-1] == '"') {
		value = value[:len(value)-1]
	}
	return value
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

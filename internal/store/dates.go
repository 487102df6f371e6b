// internal/store/dates.go
package store

import (
	"strings"

	"github.com/user/finassist/internal/types"
)

// ParseNaturalLanguageDate resolves the two supported relative phrases to
// the demo dataset's reference calendar. It is intentionally not a general
// date parser: anything else yields nil.
func ParseNaturalLanguageDate(text string) *types.DateRange {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "last month"):
		return &types.DateRange{Start: "2024-08-01", End: "2024-08-31"}
	case strings.Contains(lower, "this month"):
		return &types.DateRange{Start: "2024-09-01", End: "2024-09-30"}
	}
	return nil
}

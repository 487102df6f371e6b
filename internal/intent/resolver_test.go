// internal/intent/resolver_test.go
package intent

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		input string
		want  Category
	}{
		{"show invoices for last month", FilterInvoices},
		{"Filter invoices for vendor='IndiSky'", FilterInvoices},
		{"find invoices for SilverOak Supplies", FilterInvoices},
		{"why did these fail?", ExplainFailures},
		{"what went wrong", ExplainFailures},
		{"explain the failures", ExplainFailures},
		{"create a ticket for this", CreateTicket},
		{"open a ticket and notify me when fixed", CreateTicket},
		{"report this issue", CreateTicket},
		{"download the compliance report", DownloadReport},
		{"export the monthly report", DownloadReport},
		{"what is GSTIN?", GeneralQuestion},
		{"hello there", GeneralQuestion},
		{"", GeneralQuestion},
	}
	for _, tc := range cases {
		if got := Detect(tc.input); got != tc.want {
			t.Errorf("Detect(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestDetectAffirmativeShortcut(t *testing.T) {
	for _, input := range []string{"yes", "Yes", "  YES  ", "y", "sure", "ok", "okay", "please", "create it", "do it"} {
		if got := Detect(input); got != CreateTicket {
			t.Errorf("Detect(%q) = %s, want create_ticket", input, got)
		}
	}
	// An affirmative embedded in a longer sentence is not a shortcut.
	if got := Detect("yes that is what I meant"); got != GeneralQuestion {
		t.Errorf("embedded affirmative classified as %s, want general_question", got)
	}
}

func TestDetectCategoryOrder(t *testing.T) {
	// Matches both a filter pattern and a report pattern; filter_invoices is
	// checked first and wins.
	if got := Detect("get invoices for the compliance report"); got != FilterInvoices {
		t.Errorf("Detect = %s, want filter_invoices", got)
	}
}

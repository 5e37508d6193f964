package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Renderer writes an AssessmentView in one output format.
type Renderer interface {
	ContentType() string
	Render(w io.Writer, v AssessmentView) error
}

type JSONRenderer struct{}

func (JSONRenderer) ContentType() string { return "application/json" }

func (JSONRenderer) Render(w io.Writer, v AssessmentView) error {
	return json.NewEncoder(w).Encode(v)
}

// TextRenderer produces a plain-text summary for terminals and logs.
type TextRenderer struct{}

func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (TextRenderer) Render(w io.Writer, v AssessmentView) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s approval probability)\n", v.StatusLabel, v.Gauge.Display)
	fmt.Fprintf(&b, "%s\n\n", v.Headline)
	fmt.Fprintf(&b, "Total Income:     %s\n", v.Details.TotalIncome)
	fmt.Fprintf(&b, "Loan Amount:      %s\n", v.Details.LoanAmount)
	fmt.Fprintf(&b, "Monthly Payment:  %s\n", v.Details.MonthlyPayment)
	fmt.Fprintf(&b, "Loan-to-Income:   %s\n", v.Details.LoanToIncome)
	fmt.Fprintf(&b, "Credit History:   %s\n", v.Details.CreditHistory)
	fmt.Fprintf(&b, "Confidence Level: %s\n\n", v.Details.Confidence)
	fmt.Fprintf(&b, "%s\n", v.InsightsTitle)
	for _, insight := range v.Insights {
		fmt.Fprintf(&b, "  - %s\n", insight)
	}
	if len(v.Terms) > 0 {
		fmt.Fprintf(&b, "\nPayment options:\n")
		for _, t := range v.Terms {
			fmt.Fprintf(&b, "  %-10s %10s/month  %12s interest%s\n", t.Label, t.MonthlyPayment, t.TotalInterest, termMarker(t))
		}
	}
	if v.ReportID != "" {
		fmt.Fprintf(&b, "\nReport: %s\n", v.ReportID)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func termMarker(t Term) string {
	switch {
	case t.Recommended && t.Requested:
		return "  (requested, recommended)"
	case t.Recommended:
		return "  (recommended)"
	case t.Requested:
		return "  (requested)"
	}
	return ""
}

// ForAccept picks the renderer for an Accept header. JSON is the default.
func ForAccept(accept string) Renderer {
	if strings.Contains(accept, "text/plain") && !strings.Contains(accept, "application/json") {
		return TextRenderer{}
	}
	return JSONRenderer{}
}

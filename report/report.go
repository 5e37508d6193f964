// Package report renders the downloadable assessment summary.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"loan-insight/view"
)

const (
	Title      = "Loan Prediction Assessment Report"
	Disclaimer = "This report was generated by the AI-powered Loan Prediction System.\n" +
		"For official loan applications, please consult with your financial institution."
	dateLayout = "January 2, 2006"
)

// Filename is the download name for a report generated at now.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("loan-prediction-report-%d.%s", now.UnixMilli(), ext)
}

// Text renders the plain-text report.
func Text(v view.AssessmentView, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Title)
	fmt.Fprintf(&b, "Generated on: %s\n", now.Format(dateLayout))
	fmt.Fprintf(&b, "================================\n\n")
	fmt.Fprintf(&b, "Result: %s\n", v.StatusLabel)
	fmt.Fprintf(&b, "Approval Probability: %s\n", v.Gauge.Display)
	fmt.Fprintf(&b, "Confidence Level: %s\n\n", v.Details.Confidence)

	fmt.Fprintf(&b, "%s\n", v.InsightsTitle)
	for _, insight := range v.Insights {
		fmt.Fprintf(&b, "- %s\n", insight)
	}

	fmt.Fprintf(&b, "\n%s\n", Disclaimer)
	return b.String()
}

// PDF renders the same report as a one-page A4 document.
func PDF(v view.AssessmentView, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 12, Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(contentWidth, 8, "Generated on: "+now.Format(dateLayout), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	r, g, b := statusColor(v)
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(contentWidth, 10, "Result: "+v.StatusLabel, "", 1, "L", false, 0, "")

	pdf.SetFillColor(245, 247, 250)
	pdf.SetTextColor(50, 50, 50)
	rows := [][2]string{
		{"Approval Probability", v.Gauge.Display},
		{"Confidence Level", v.Details.Confidence},
		{"Total Income", v.Details.TotalIncome},
		{"Loan Amount", v.Details.LoanAmount},
		{"Monthly Payment", v.Details.MonthlyPayment},
		{"Loan-to-Income", v.Details.LoanToIncome},
		{"Credit History", v.Details.CreditHistory},
	}
	for i, row := range rows {
		fill := i%2 == 0
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(contentWidth*0.45, 8, row[0], "1", 0, "L", fill, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(contentWidth*0.55, 8, row[1], "1", 1, "L", fill, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(contentWidth, 8, v.InsightsTitle, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, insight := range v.Insights {
		pdf.CellFormat(contentWidth, 7, "- "+insight, "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(contentWidth, 5, Disclaimer, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf report: %w", err)
	}
	return buf.Bytes(), nil
}

func statusColor(v view.AssessmentView) (int, int, int) {
	if v.Approved {
		return 16, 185, 129
	}
	return 239, 68, 68
}

// Package view turns an assessment into the render model the page shows.
// It holds no rendering technology of its own; Renderer implementations
// decide the output format.
package view

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"loan-insight/domain"
)

const (
	GaugeRadius = 54

	ColorSuccess = "success"
	ColorWarning = "warning"
	ColorDanger  = "danger"
)

type AssessmentView struct {
	ReportID      string   `json:"report_id,omitempty"`
	Status        string   `json:"status"`
	StatusLabel   string   `json:"status_label"`
	Approved      bool     `json:"approved"`
	Headline      string   `json:"headline"`
	Gauge         Gauge    `json:"gauge"`
	Details       Details  `json:"details"`
	InsightsTitle string   `json:"insights_title"`
	Insights      []string `json:"insights"`
	Terms         []Term   `json:"terms,omitempty"`
}

// Term is one row of the payment options table.
type Term struct {
	Label          string `json:"label"`
	MonthlyPayment string `json:"monthly_payment"`
	TotalInterest  string `json:"total_interest"`
	Affordable     bool   `json:"affordable"`
	Recommended    bool   `json:"recommended"`
	Requested      bool   `json:"requested"`
}

// Gauge describes the circular probability indicator.
type Gauge struct {
	Percent       float64 `json:"percent"`
	Display       string  `json:"display"`
	Color         string  `json:"color"`
	Circumference float64 `json:"circumference"`
	DashOffset    float64 `json:"dash_offset"`
}

type Details struct {
	TotalIncome    string `json:"total_income"`
	LoanAmount     string `json:"loan_amount"`
	MonthlyPayment string `json:"monthly_payment"`
	LoanToIncome   string `json:"loan_to_income"`
	CreditHistory  string `json:"credit_history"`
	Confidence     string `json:"confidence"`
}

// Build assembles the view for a. The report id is only exposed when the
// report was staged.
func Build(a domain.Assessment) AssessmentView {
	p := a.Prediction
	v := AssessmentView{
		Approved: p.Approved(),
		Gauge:    NewGauge(p.Probability),
		Details:  NewDetails(p, a.Metrics),
		Insights: a.Insights,
		Terms:    NewTerms(a.Terms, a.Metrics.TermMonths),
	}
	if a.ReportStored {
		v.ReportID = a.ID
	}

	if v.Approved {
		v.Status = "approved"
		v.Headline = "Congratulations! Your loan application is likely to be APPROVED"
		v.InsightsTitle = "Why this application looks good:"
	} else {
		v.Status = "rejected"
		v.Headline = "Unfortunately, your loan application may be REJECTED"
		v.InsightsTitle = "Areas of concern:"
	}
	v.StatusLabel = strings.ToUpper(v.Status)

	return v
}

func NewGauge(probability float64) Gauge {
	p := math.Max(0, math.Min(100, probability))
	circumference := 2 * math.Pi * GaugeRadius

	color := ColorDanger
	switch {
	case p >= 70:
		color = ColorSuccess
	case p >= 40:
		color = ColorWarning
	}

	return Gauge{
		Percent:       p,
		Display:       newPrinter().Sprintf("%d%%", int(math.Round(p))),
		Color:         color,
		Circumference: circumference,
		DashOffset:    circumference - p/100*circumference,
	}
}

func NewDetails(p domain.PredictionResult, m domain.FinancialMetrics) Details {
	ratio := "n/a"
	if m.RatioDefined {
		ratio = m.LoanToIncome.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
	}

	credit := "Poor"
	if p.Applicant.HasGoodCredit() {
		credit = "Good"
	}

	return Details{
		TotalIncome:    Money(m.TotalIncome) + "/year",
		LoanAmount:     Money(m.LoanAmount),
		MonthlyPayment: Money(m.MonthlyPayment),
		LoanToIncome:   ratio,
		CreditHistory:  credit,
		Confidence:     capitalize(string(p.Confidence)),
	}
}

func NewTerms(options []domain.TermOption, requested int) []Term {
	terms := make([]Term, 0, len(options))
	for _, o := range options {
		terms = append(terms, Term{
			Label:          termLabel(o.TermMonths),
			MonthlyPayment: Money(o.MonthlyPayment),
			TotalInterest:  Money(o.TotalInterest),
			Affordable:     o.Affordable,
			Recommended:    o.Recommended,
			Requested:      o.TermMonths == requested,
		})
	}
	return terms
}

func termLabel(months int) string {
	switch {
	case months == 12:
		return "1 year"
	case months%12 == 0:
		return newPrinter().Sprintf("%d years", months/12)
	case months == 1:
		return "1 month"
	default:
		return newPrinter().Sprintf("%d months", months)
	}
}

// Money formats an amount with thousands separators, e.g. $150,000 or
// $1,250.50.
func Money(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return "$" + newPrinter().Sprintf("%d", d.IntPart())
	}
	return "$" + newPrinter().Sprintf("%.2f", d.InexactFloat64())
}

// Printers are not shared between goroutines.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

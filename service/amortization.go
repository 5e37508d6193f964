package service

import (
	"math"

	"github.com/shopspring/decimal"

	"loan-insight/domain"
)

var monthsPerYear = decimal.NewFromInt(12)

// MonthlyPayment returns the fixed monthly payment for a loan of principal
// over termMonths at annualRate (0.08 means 8%), rounded to the nearest
// whole currency unit. A positive payment that would round to zero is
// reported as one unit.
func MonthlyPayment(principal decimal.Decimal, termMonths int, annualRate float64) (decimal.Decimal, error) {
	if termMonths < MinTermMonths {
		return decimal.Zero, domain.ErrInvalidTerm
	}
	if !principal.IsPositive() {
		return decimal.Zero, domain.ErrInvalidPrincipal
	}
	if annualRate < 0 || math.IsNaN(annualRate) || math.IsInf(annualRate, 0) {
		return decimal.Zero, domain.ErrInvalidRate
	}

	var payment decimal.Decimal
	if annualRate == 0 {
		payment = principal.Div(decimal.NewFromInt(int64(termMonths)))
	} else {
		monthlyRate := annualRate / 12
		growth := math.Pow(1+monthlyRate, float64(termMonths))

		// (1+r)^n / ((1+r)^n - 1) tends to 1 for very long terms
		factor := monthlyRate
		if !math.IsInf(growth, 1) {
			factor = monthlyRate * growth / (growth - 1)
		}
		payment = principal.Mul(decimal.NewFromFloat(factor))
	}

	rounded := payment.Round(0)
	if !rounded.IsPositive() {
		return decimal.NewFromInt(1), nil
	}
	return rounded, nil
}

// Quote expands MonthlyPayment into totals over the whole term.
func Quote(principal decimal.Decimal, termMonths int, annualRate float64) (domain.LoanQuote, error) {
	monthly, err := MonthlyPayment(principal, termMonths, annualRate)
	if err != nil {
		return domain.LoanQuote{}, err
	}

	total := monthly.Mul(decimal.NewFromInt(int64(termMonths)))
	interest := total.Sub(principal)
	if interest.IsNegative() {
		interest = decimal.Zero
	}

	return domain.LoanQuote{
		MonthlyPayment: monthly,
		TotalPayment:   total,
		TotalInterest:  interest.Round(2),
	}, nil
}

// ComputeMetrics derives the figures shown next to a prediction.
func ComputeMetrics(applicant domain.ApplicantRecord, annualRate float64) (domain.FinancialMetrics, error) {
	payment, err := MonthlyPayment(applicant.LoanAmount, applicant.LoanTermMonths, annualRate)
	if err != nil {
		return domain.FinancialMetrics{}, err
	}

	metrics := domain.FinancialMetrics{
		TotalIncome:    applicant.TotalIncome(),
		LoanAmount:     applicant.LoanAmount,
		TermMonths:     applicant.LoanTermMonths,
		MonthlyPayment: payment,
	}

	// Sin ingresos el ratio no está definido; no se divide por cero.
	if metrics.TotalIncome.IsPositive() {
		metrics.LoanToIncome = payment.Mul(monthsPerYear).Div(metrics.TotalIncome)
		metrics.RatioDefined = true
	}

	return metrics, nil
}

package service

import (
	"sort"

	"loan-insight/domain"
)

// StandardTerms are the terms offered next to the requested one.
var StandardTerms = []int{60, 120, 180, 240, 300, 360, 480}

// TermOptions prices the applicant's loan over the standard terms plus the
// requested one. A term is affordable when its loan-to-income ratio stays
// below the healthy threshold; the shortest affordable term costs the least
// interest and is marked recommended.
func TermOptions(applicant domain.ApplicantRecord, annualRate float64) ([]domain.TermOption, error) {
	terms := append([]int{applicant.LoanTermMonths}, StandardTerms...)
	sort.Ints(terms)

	options := make([]domain.TermOption, 0, len(terms))
	seen := make(map[int]bool, len(terms))
	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true

		quote, err := Quote(applicant.LoanAmount, term, annualRate)
		if err != nil {
			return nil, err
		}

		opt := domain.TermOption{
			TermMonths:     term,
			MonthlyPayment: quote.MonthlyPayment,
			TotalInterest:  quote.TotalInterest,
		}

		income := applicant.TotalIncome()
		if income.IsPositive() {
			opt.LoanToIncome = quote.MonthlyPayment.Mul(monthsPerYear).Div(income)
			opt.Affordable = opt.LoanToIncome.LessThan(healthyRatio)
		}
		options = append(options, opt)
	}

	for i := range options {
		if options[i].Affordable {
			options[i].Recommended = true
			break
		}
	}

	return options, nil
}

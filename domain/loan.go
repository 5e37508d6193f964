package domain

import "github.com/shopspring/decimal"

type LoanQuote struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

// FinancialMetrics are the figures derived from an applicant record.
// LoanToIncome is the annualized payment over total income; it is only
// meaningful when RatioDefined is true (total income above zero).
type FinancialMetrics struct {
	TotalIncome    decimal.Decimal `json:"total_income"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	TermMonths     int             `json:"term_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	LoanToIncome   decimal.Decimal `json:"loan_to_income"`
	RatioDefined   bool            `json:"ratio_defined"`
}

// TermOption is the cost of the same loan over a different term.
type TermOption struct {
	TermMonths     int             `json:"term_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	LoanToIncome   decimal.Decimal `json:"loan_to_income"`
	Affordable     bool            `json:"affordable"`
	Recommended    bool            `json:"recommended"`
}

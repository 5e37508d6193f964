package domain

import "github.com/shopspring/decimal"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type Education string

const (
	EducationGraduate    Education = "Graduate"
	EducationNotGraduate Education = "Not Graduate"
)

type PropertyArea string

const (
	PropertyAreaUrban     PropertyArea = "Urban"
	PropertyAreaSemiurban PropertyArea = "Semiurban"
	PropertyAreaRural     PropertyArea = "Rural"
)

// Dependents is kept as the form value because "3+" is not a number.
type Dependents string

const (
	DependentsNone      Dependents = "0"
	DependentsOne       Dependents = "1"
	DependentsTwo       Dependents = "2"
	DependentsThreePlus Dependents = "3+"
)

type CreditHistory int

const (
	CreditHistoryPoor CreditHistory = 0
	CreditHistoryGood CreditHistory = 1
)

// ApplicantRecord is one submitted application. Incomes are yearly and the
// loan amount is in full currency units.
type ApplicantRecord struct {
	Gender            Gender          `json:"gender"`
	Married           bool            `json:"married"`
	Dependents        Dependents      `json:"dependents"`
	Education         Education       `json:"education"`
	SelfEmployed      bool            `json:"self_employed"`
	ApplicantIncome   decimal.Decimal `json:"applicant_income"`
	CoapplicantIncome decimal.Decimal `json:"coapplicant_income"`
	LoanAmount        decimal.Decimal `json:"loan_amount"`
	LoanTermMonths    int             `json:"loan_term_months"`
	CreditHistory     CreditHistory   `json:"credit_history"`
	PropertyArea      PropertyArea    `json:"property_area"`
}

func (a ApplicantRecord) TotalIncome() decimal.Decimal {
	return a.ApplicantIncome.Add(a.CoapplicantIncome)
}

func (a ApplicantRecord) HasGoodCredit() bool {
	return a.CreditHistory == CreditHistoryGood
}

func (a ApplicantRecord) IsGraduate() bool {
	return a.Education == EducationGraduate
}

package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"loan-insight/domain"
)

var (
	maxLoanAmount = decimal.NewFromInt(MaxLoanAmount)
	maxIncome     = decimal.NewFromInt(MaxIncome)
)

// FormValue accepts a JSON string, number, boolean or null, so the same
// form can be posted by a browser (strings) or by an API client (numbers).
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*v = ""
		return nil
	case raw == "true" || raw == "false":
		*v = FormValue(raw)
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", raw)
	}
	*v = FormValue(n.String())
	return nil
}

// ApplicationForm is the raw loan form. Field order is the order in which
// missing fields are reported.
type ApplicationForm struct {
	Gender            FormValue `json:"gender" validate:"required,oneof=Male Female"`
	Married           FormValue `json:"married" validate:"required,oneof=Yes No true false"`
	Dependents        FormValue `json:"dependents" validate:"required,oneof=0 1 2 3+"`
	Education         FormValue `json:"education" validate:"required,oneof=Graduate 'Not Graduate'"`
	SelfEmployed      FormValue `json:"self_employed" validate:"required,oneof=Yes No true false"`
	ApplicantIncome   FormValue `json:"applicant_income" validate:"required,numeric"`
	CoapplicantIncome FormValue `json:"coapplicant_income" validate:"omitempty,numeric"`
	LoanAmount        FormValue `json:"loan_amount" validate:"required,numeric"`
	LoanAmountTerm    FormValue `json:"loan_amount_term" validate:"required,numeric"`
	CreditHistory     FormValue `json:"credit_history" validate:"required,oneof=1 0 1.0 0.0"`
	PropertyArea      FormValue `json:"property_area" validate:"required,oneof=Urban Semiurban Rural"`
}

// ApplicationFormFromValues reads the form from url-encoded values.
func ApplicationFormFromValues(values url.Values) ApplicationForm {
	get := func(key string) FormValue {
		return FormValue(strings.TrimSpace(values.Get(key)))
	}
	return ApplicationForm{
		Gender:            get("gender"),
		Married:           get("married"),
		Dependents:        get("dependents"),
		Education:         get("education"),
		SelfEmployed:      get("self_employed"),
		ApplicantIncome:   get("applicant_income"),
		CoapplicantIncome: get("coapplicant_income"),
		LoanAmount:        get("loan_amount"),
		LoanAmountTerm:    get("loan_amount_term"),
		CreditHistory:     get("credit_history"),
		PropertyArea:      get("property_area"),
	}
}

// FormValidator turns an ApplicationForm into an ApplicantRecord or a
// *domain.ValidationError.
type FormValidator struct {
	validate *validator.Validate
}

func NewFormValidator() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &FormValidator{validate: v}
}

func (fv *FormValidator) Validate(form ApplicationForm) (domain.ApplicantRecord, error) {
	if err := fv.validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return domain.ApplicantRecord{}, fieldError(fieldErrs[0])
		}
		return domain.ApplicantRecord{}, err
	}

	applicantIncome, _ := decimal.NewFromString(string(form.ApplicantIncome))
	if !applicantIncome.IsPositive() {
		return domain.ApplicantRecord{}, &domain.ValidationError{
			Field:   "applicant_income",
			Message: "Applicant income must be greater than 0",
		}
	}

	if applicantIncome.GreaterThan(maxIncome) {
		return domain.ApplicantRecord{}, &domain.ValidationError{
			Field:   "applicant_income",
			Message: fmt.Sprintf("Applicant income cannot exceed %s", maxIncome),
		}
	}

	coapplicantIncome := decimal.Zero
	if form.CoapplicantIncome != "" {
		coapplicantIncome, _ = decimal.NewFromString(string(form.CoapplicantIncome))
	}
	if coapplicantIncome.IsNegative() {
		return domain.ApplicantRecord{}, &domain.ValidationError{
			Field:   "coapplicant_income",
			Message: "Co-applicant income cannot be negative",
		}
	}

	if coapplicantIncome.GreaterThan(maxIncome) {
		return domain.ApplicantRecord{}, &domain.ValidationError{
			Field:   "coapplicant_income",
			Message: fmt.Sprintf("Co-applicant income cannot exceed %s", maxIncome),
		}
	}

	loanAmount, _ := decimal.NewFromString(string(form.LoanAmount))
	if !loanAmount.IsPositive() {
		return domain.ApplicantRecord{}, &domain.ValidationError{
			Field:   "loan_amount",
			Message: "Loan amount must be greater than 0",
		}
	}

	if loanAmount.GreaterThan(maxLoanAmount) {
		return domain.ApplicantRecord{}, &domain.ValidationError{
			Field:   "loan_amount",
			Message: fmt.Sprintf("Loan amount cannot exceed %s", maxLoanAmount),
		}
	}

	term, err := parseTerm(form.LoanAmountTerm)
	if err != nil {
		return domain.ApplicantRecord{}, &domain.ValidationError{
			Field:   "loan_amount_term",
			Message: fmt.Sprintf("Loan term must be a whole number of months between %d and %d", MinTermMonths, MaxTermMonths),
			Err:     err,
		}
	}

	credit := domain.CreditHistoryPoor
	if f, _ := strconv.ParseFloat(string(form.CreditHistory), 64); f == 1 {
		credit = domain.CreditHistoryGood
	}

	return domain.ApplicantRecord{
		Gender:            domain.Gender(form.Gender),
		Married:           parseYesNo(form.Married),
		Dependents:        domain.Dependents(form.Dependents),
		Education:         domain.Education(form.Education),
		SelfEmployed:      parseYesNo(form.SelfEmployed),
		ApplicantIncome:   applicantIncome,
		CoapplicantIncome: coapplicantIncome,
		LoanAmount:        loanAmount,
		LoanTermMonths:    term,
		CreditHistory:     credit,
		PropertyArea:      domain.PropertyArea(form.PropertyArea),
	}, nil
}

func parseTerm(v FormValue) (int, error) {
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil || f != math.Trunc(f) || f < MinTermMonths {
		return 0, domain.ErrInvalidTerm
	}
	if f > MaxTermMonths {
		return 0, fmt.Errorf("%w: exceeds %d months", domain.ErrInvalidTerm, MaxTermMonths)
	}
	return int(f), nil
}

func parseYesNo(v FormValue) bool {
	return v == "Yes" || v == "true"
}

func fieldError(fe validator.FieldError) *domain.ValidationError {
	label := strings.ReplaceAll(fe.Field(), "_", " ")

	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("Please fill in the %s field", label)
	case "numeric":
		msg = fmt.Sprintf("The %s field must be a number", label)
	default:
		msg = fmt.Sprintf("Invalid value for the %s field", label)
	}

	return &domain.ValidationError{Field: fe.Field(), Message: msg}
}

package service

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-insight/domain"
)

func validForm() ApplicationForm {
	return ApplicationForm{
		Gender:            "Male",
		Married:           "Yes",
		Dependents:        "3+",
		Education:         "Graduate",
		SelfEmployed:      "No",
		ApplicantIncome:   "60000",
		CoapplicantIncome: "",
		LoanAmount:        "100000",
		LoanAmountTerm:    "360",
		CreditHistory:     "1.0",
		PropertyArea:      "Semiurban",
	}
}

func validationErr(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve
}

func TestFormValidator_Valid(t *testing.T) {
	a, err := NewFormValidator().Validate(validForm())
	require.NoError(t, err)

	assert.Equal(t, domain.GenderMale, a.Gender)
	assert.True(t, a.Married)
	assert.Equal(t, domain.DependentsThreePlus, a.Dependents)
	assert.True(t, a.IsGraduate())
	assert.False(t, a.SelfEmployed)
	assert.Equal(t, "60000", a.ApplicantIncome.String())
	assert.True(t, a.CoapplicantIncome.IsZero(), "co-applicant income defaults to 0")
	assert.Equal(t, "100000", a.LoanAmount.String())
	assert.Equal(t, 360, a.LoanTermMonths)
	assert.True(t, a.HasGoodCredit())
	assert.Equal(t, domain.PropertyAreaSemiurban, a.PropertyArea)
}

func TestFormValidator_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ApplicationForm)
		field   string
		message string
	}{
		{"zero applicant income", func(f *ApplicationForm) { f.ApplicantIncome = "0" },
			"applicant_income", "Applicant income must be greater than 0"},
		{"negative applicant income", func(f *ApplicationForm) { f.ApplicantIncome = "-10" },
			"applicant_income", "Applicant income must be greater than 0"},
		{"zero loan amount", func(f *ApplicationForm) { f.LoanAmount = "0" },
			"loan_amount", "Loan amount must be greater than 0"},
		{"missing applicant income", func(f *ApplicationForm) { f.ApplicantIncome = "" },
			"applicant_income", "Please fill in the applicant income field"},
		{"missing gender", func(f *ApplicationForm) { f.Gender = "" },
			"gender", "Please fill in the gender field"},
		{"missing property area", func(f *ApplicationForm) { f.PropertyArea = "" },
			"property_area", "Please fill in the property area field"},
		{"non numeric loan", func(f *ApplicationForm) { f.LoanAmount = "lots" },
			"loan_amount", "The loan amount field must be a number"},
		{"unknown education", func(f *ApplicationForm) { f.Education = "PhD" },
			"education", "Invalid value for the education field"},
		{"unknown dependents", func(f *ApplicationForm) { f.Dependents = "7" },
			"dependents", "Invalid value for the dependents field"},
		{"negative co-applicant income", func(f *ApplicationForm) { f.CoapplicantIncome = "-1" },
			"coapplicant_income", "Co-applicant income cannot be negative"},
	}

	v := NewFormValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := v.Validate(form)
			ve := validationErr(t, err)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestFormValidator_FirstMissingFieldWins(t *testing.T) {
	form := validForm()
	form.Married = ""
	form.LoanAmount = ""

	_, err := NewFormValidator().Validate(form)
	assert.Equal(t, "married", validationErr(t, err).Field)
}

func TestFormValidator_ZeroTermIsInvalidTerm(t *testing.T) {
	form := validForm()
	form.LoanAmountTerm = "0"

	_, err := NewFormValidator().Validate(form)
	ve := validationErr(t, err)
	assert.Equal(t, "loan_amount_term", ve.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)
}

func TestFormValidator_FractionalTerm(t *testing.T) {
	form := validForm()
	form.LoanAmountTerm = "12.5"

	_, err := NewFormValidator().Validate(form)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)
}

func TestFormValidator_TermAboveMaximum(t *testing.T) {
	form := validForm()
	form.LoanAmountTerm = "601"

	_, err := NewFormValidator().Validate(form)
	assert.Equal(t, "loan_amount_term", validationErr(t, err).Field)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)

	form.LoanAmountTerm = "600"
	_, err = NewFormValidator().Validate(form)
	assert.NoError(t, err)
}

func TestFormValidator_AmountsAboveLimits(t *testing.T) {
	huge := FormValue("1" + strings.Repeat("0", 400))

	tests := []struct {
		name    string
		mutate  func(*ApplicationForm)
		field   string
		message string
	}{
		{"applicant income", func(f *ApplicationForm) { f.ApplicantIncome = huge }, "applicant_income", "Applicant income cannot exceed 1000000000"},
		{"co-applicant income", func(f *ApplicationForm) { f.CoapplicantIncome = "1000000000.01" }, "coapplicant_income", "Co-applicant income cannot exceed 1000000000"},
		{"loan amount", func(f *ApplicationForm) { f.LoanAmount = huge }, "loan_amount", "Loan amount cannot exceed 1000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := NewFormValidator().Validate(form)
			ve := validationErr(t, err)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Message)
		})
	}

	form := validForm()
	form.ApplicantIncome = "1000000000"
	form.LoanAmount = "1000000000"
	_, err := NewFormValidator().Validate(form)
	assert.NoError(t, err, "limits are inclusive")
}

func TestApplicationForm_JSONNumbersAndNulls(t *testing.T) {
	body := `{
		"gender": "Female", "married": false, "dependents": "0",
		"education": "Not Graduate", "self_employed": "Yes",
		"applicant_income": 45000.5, "coapplicant_income": null,
		"loan_amount": 120000, "loan_amount_term": 360.0,
		"credit_history": 0, "property_area": "Rural"
	}`

	var form ApplicationForm
	require.NoError(t, json.Unmarshal([]byte(body), &form))

	a, err := NewFormValidator().Validate(form)
	require.NoError(t, err)
	assert.False(t, a.Married)
	assert.True(t, a.SelfEmployed)
	assert.Equal(t, "45000.5", a.ApplicantIncome.String())
	assert.True(t, a.CoapplicantIncome.IsZero())
	assert.Equal(t, 360, a.LoanTermMonths)
	assert.False(t, a.HasGoodCredit())
}

func TestApplicationForm_RejectsObjects(t *testing.T) {
	var form ApplicationForm
	err := json.Unmarshal([]byte(`{"gender": {"value": "Male"}}`), &form)
	assert.Error(t, err)
}

func TestApplicationFormFromValues(t *testing.T) {
	values := url.Values{
		"gender":           {"Male"},
		"married":          {"No"},
		"dependents":       {"1"},
		"education":        {"Graduate"},
		"self_employed":    {"No"},
		"applicant_income": {" 52000 "},
		"loan_amount":      {"90000"},
		"loan_amount_term": {"180"},
		"credit_history":   {"1"},
		"property_area":    {"Urban"},
	}

	form := ApplicationFormFromValues(values)
	assert.Equal(t, FormValue("52000"), form.ApplicantIncome)
	assert.Equal(t, FormValue(""), form.CoapplicantIncome)

	a, err := NewFormValidator().Validate(form)
	require.NoError(t, err)
	assert.Equal(t, 180, a.LoanTermMonths)
}

package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-insight/domain"
)

func applicant(income, coIncome, loan int64, term int) domain.ApplicantRecord {
	return domain.ApplicantRecord{
		Gender:            domain.GenderFemale,
		Dependents:        domain.DependentsNone,
		Education:         domain.EducationNotGraduate,
		ApplicantIncome:   decimal.NewFromInt(income),
		CoapplicantIncome: decimal.NewFromInt(coIncome),
		LoanAmount:        decimal.NewFromInt(loan),
		LoanTermMonths:    term,
		CreditHistory:     domain.CreditHistoryPoor,
		PropertyArea:      domain.PropertyAreaUrban,
	}
}

func outcome(label domain.Label, a domain.ApplicantRecord) domain.PredictionResult {
	return domain.PredictionResult{Label: label, Probability: 50, Confidence: domain.ConfidenceMedium, Applicant: a}
}

func TestInsightEngine_ApproveScenario(t *testing.T) {
	a := applicant(60000, 0, 100000, 360)
	a.CreditHistory = domain.CreditHistoryGood
	a.Education = domain.EducationGraduate

	insights, err := NewInsightEngine(DefaultAnnualRate).Generate(a, outcome(domain.LabelApprove, a))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Good credit history",
		"Graduate education level",
		"Healthy loan-to-income ratio",
		"Strong income level",
	}, insights)
}

func TestInsightEngine_ApproveWithCoapplicant(t *testing.T) {
	a := applicant(30000, 25000, 100000, 360)
	a.CreditHistory = domain.CreditHistoryGood

	insights, err := NewInsightEngine(DefaultAnnualRate).Generate(a, outcome(domain.LabelApprove, a))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Good credit history",
		"Healthy loan-to-income ratio",
		"Strong income level",
		"Additional co-applicant income",
	}, insights)
}

func TestInsightEngine_RejectScenario(t *testing.T) {
	a := applicant(20000, 0, 100000, 360)
	a.SelfEmployed = true

	insights, err := NewInsightEngine(DefaultAnnualRate).Generate(a, outcome(domain.LabelReject, a))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Poor credit history",
		"Low income level",
		"Self-employment income uncertainty",
	}, insights)
}

func TestInsightEngine_RejectHighRatio(t *testing.T) {
	a := applicant(20000, 0, 150000, 360)
	a.CreditHistory = domain.CreditHistoryGood

	insights, err := NewInsightEngine(DefaultAnnualRate).Generate(a, outcome(domain.LabelReject, a))
	require.NoError(t, err)

	assert.Equal(t, []string{"High loan-to-income ratio", "Low income level"}, insights)
}

func TestInsightEngine_Fallback(t *testing.T) {
	t.Run("approve with no rule firing", func(t *testing.T) {
		a := applicant(20000, 0, 150000, 360)

		insights, err := NewInsightEngine(DefaultAnnualRate).Generate(a, outcome(domain.LabelApprove, a))
		require.NoError(t, err)
		assert.Equal(t, []string{FallbackInsight}, insights)
	})

	t.Run("reject with no rule firing", func(t *testing.T) {
		a := applicant(80000, 0, 100000, 360)
		a.CreditHistory = domain.CreditHistoryGood

		insights, err := NewInsightEngine(DefaultAnnualRate).Generate(a, outcome(domain.LabelReject, a))
		require.NoError(t, err)
		assert.Equal(t, []string{FallbackInsight}, insights)
	})
}

func TestInsightEngine_ZeroTotalIncome(t *testing.T) {
	a := applicant(0, 0, 100000, 360)
	a.CreditHistory = domain.CreditHistoryGood

	engine := NewInsightEngine(DefaultAnnualRate)

	approve, err := engine.Generate(a, outcome(domain.LabelApprove, a))
	require.NoError(t, err)
	assert.Equal(t, []string{"Good credit history"}, approve)

	reject, err := engine.Generate(a, outcome(domain.LabelReject, a))
	require.NoError(t, err)
	assert.Equal(t, []string{"High loan-to-income ratio", "Low income level"}, reject)
}

func TestInsightEngine_InvalidTerm(t *testing.T) {
	a := applicant(60000, 0, 100000, 0)

	_, err := NewInsightEngine(DefaultAnnualRate).Generate(a, outcome(domain.LabelApprove, a))
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)
}

func TestInsightEngine_NeverEmpty(t *testing.T) {
	engine := NewInsightEngine(DefaultAnnualRate)
	incomes := []int64{0, 10000, 29999, 30000, 50000, 50001, 200000}
	coIncomes := []int64{0, 5000}
	loans := []int64{1000, 100000, 500000}

	for _, income := range incomes {
		for _, co := range coIncomes {
			for _, loan := range loans {
				for _, credit := range []domain.CreditHistory{domain.CreditHistoryPoor, domain.CreditHistoryGood} {
					for _, label := range []domain.Label{domain.LabelApprove, domain.LabelReject} {
						a := applicant(income, co, loan, 360)
						a.CreditHistory = credit
						insights, err := engine.Generate(a, outcome(label, a))
						require.NoError(t, err)
						if len(insights) == 0 {
							t.Fatalf("empty insights for %+v / %s", a, label)
						}
					}
				}
			}
		}
	}
}

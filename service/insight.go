package service

import (
	"github.com/shopspring/decimal"

	"loan-insight/domain"
)

const FallbackInsight = "Multiple factors considered in this assessment"

var (
	healthyRatio = decimal.NewFromFloat(HealthyLoanToIncome)
	highRatio    = decimal.NewFromFloat(HighLoanToIncome)
	strongIncome = decimal.NewFromInt(StrongIncomeLevel)
	lowIncome    = decimal.NewFromInt(LowIncomeLevel)
)

type insightRule struct {
	message string
	applies func(domain.ApplicantRecord, domain.FinancialMetrics) bool
}

// Order matters: it is the display order.
var approveRules = []insightRule{
	{"Good credit history", func(a domain.ApplicantRecord, _ domain.FinancialMetrics) bool {
		return a.HasGoodCredit()
	}},
	{"Graduate education level", func(a domain.ApplicantRecord, _ domain.FinancialMetrics) bool {
		return a.IsGraduate()
	}},
	{"Healthy loan-to-income ratio", func(_ domain.ApplicantRecord, m domain.FinancialMetrics) bool {
		return m.RatioDefined && m.LoanToIncome.LessThan(healthyRatio)
	}},
	{"Strong income level", func(_ domain.ApplicantRecord, m domain.FinancialMetrics) bool {
		return m.TotalIncome.GreaterThan(strongIncome)
	}},
	{"Additional co-applicant income", func(a domain.ApplicantRecord, _ domain.FinancialMetrics) bool {
		return a.CoapplicantIncome.IsPositive()
	}},
}

var rejectRules = []insightRule{
	{"Poor credit history", func(a domain.ApplicantRecord, _ domain.FinancialMetrics) bool {
		return !a.HasGoodCredit()
	}},
	{"High loan-to-income ratio", func(_ domain.ApplicantRecord, m domain.FinancialMetrics) bool {
		return !m.RatioDefined || m.LoanToIncome.GreaterThan(highRatio)
	}},
	{"Low income level", func(_ domain.ApplicantRecord, m domain.FinancialMetrics) bool {
		return m.TotalIncome.LessThan(lowIncome)
	}},
	{"Self-employment income uncertainty", func(a domain.ApplicantRecord, _ domain.FinancialMetrics) bool {
		return a.SelfEmployed
	}},
}

// InsightEngine explains a prediction with a fixed, ordered rule table.
type InsightEngine struct {
	annualRate float64
}

func NewInsightEngine(annualRate float64) *InsightEngine {
	return &InsightEngine{annualRate: annualRate}
}

// Generate returns the insights for applicant under prediction. The result
// is never empty. An invalid loan term is returned as domain.ErrInvalidTerm.
func (e *InsightEngine) Generate(
	applicant domain.ApplicantRecord,
	prediction domain.PredictionResult,
) ([]string, error) {
	metrics, err := ComputeMetrics(applicant, e.annualRate)
	if err != nil {
		return nil, err
	}
	return e.FromMetrics(applicant, prediction, metrics), nil
}

// FromMetrics applies the rules to metrics that were already computed.
func (e *InsightEngine) FromMetrics(
	applicant domain.ApplicantRecord,
	prediction domain.PredictionResult,
	metrics domain.FinancialMetrics,
) []string {
	rules := rejectRules
	if prediction.Approved() {
		rules = approveRules
	}

	insights := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule.applies(applicant, metrics) {
			insights = append(insights, rule.message)
		}
	}

	if len(insights) == 0 {
		return []string{FallbackInsight}
	}
	return insights
}

package domain

import "time"

// Assessment is the outcome of one form submission.
type Assessment struct {
	ID         string           `json:"id"`
	Prediction PredictionResult `json:"prediction"`
	Metrics    FinancialMetrics `json:"metrics"`
	Insights   []string         `json:"insights"`
	Terms      []TermOption     `json:"terms"`
	CreatedAt  time.Time        `json:"created_at"`
	// ReportStored is false when the report could not be staged for download.
	ReportStored bool `json:"-"`
}

// AssessmentCompleted is published once an assessment is rendered. It
// carries no applicant fields.
type AssessmentCompleted struct {
	EventID      string     `json:"event_id"`
	AssessmentID string     `json:"assessment_id"`
	Label        Label      `json:"label"`
	Probability  float64    `json:"probability"`
	Confidence   Confidence `json:"confidence"`
	InsightCount int        `json:"insight_count"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

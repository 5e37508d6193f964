package domain

import "strings"

type Label string

const (
	LabelApprove Label = "approve"
	LabelReject  Label = "reject"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ParseConfidence normalizes the label sent by the prediction service.
// "moderate" is the service's name for medium; unknown labels are kept
// lowercased so they can still be shown.
func ParseConfidence(s string) Confidence {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "moderate", "medium":
		return ConfidenceMedium
	case "low":
		return ConfidenceLow
	case "high":
		return ConfidenceHigh
	default:
		return Confidence(v)
	}
}

// PredictionResult is what the prediction service returned for one
// applicant. Applicant holds the record as echoed back by the service.
type PredictionResult struct {
	Label       Label           `json:"label"`
	Probability float64         `json:"probability"`
	Confidence  Confidence      `json:"confidence"`
	Applicant   ApplicantRecord `json:"applicant"`
}

func (p PredictionResult) Approved() bool {
	return p.Label == LabelApprove
}

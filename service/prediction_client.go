package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-insight/domain"
)

// PredictRequest is the body POSTed to the prediction endpoint.
type PredictRequest struct {
	Gender            string  `json:"gender"`
	Married           string  `json:"married"`
	Dependents        string  `json:"dependents"`
	Education         string  `json:"education"`
	SelfEmployed      string  `json:"self_employed"`
	ApplicantIncome   float64 `json:"applicant_income"`
	CoapplicantIncome float64 `json:"coapplicant_income"`
	LoanAmount        float64 `json:"loan_amount"`
	LoanAmountTerm    float64 `json:"loan_amount_term"`
	CreditHistory     string  `json:"credit_history"`
	PropertyArea      string  `json:"property_area"`
}

type PredictResponse struct {
	Status        string           `json:"status"`
	Prediction    string           `json:"prediction"`
	Probability   float64          `json:"probability"`
	Confidence    string           `json:"confidence"`
	ApplicantData *EchoedApplicant `json:"applicant_data"`
	Error         string           `json:"error,omitempty"`
}

// EchoedApplicant is the applicant as the service saw it. Amounts are in
// full currency units and incomes are yearly.
type EchoedApplicant struct {
	Gender            string   `json:"Gender,omitempty"`
	Married           string   `json:"Married,omitempty"`
	Dependents        string   `json:"Dependents,omitempty"`
	Education         string   `json:"Education,omitempty"`
	SelfEmployed      string   `json:"Self_Employed,omitempty"`
	ApplicantIncome   *float64 `json:"ApplicantIncome,omitempty"`
	CoapplicantIncome *float64 `json:"CoapplicantIncome,omitempty"`
	LoanAmount        *float64 `json:"LoanAmount,omitempty"`
	LoanAmountTerm    *float64 `json:"Loan_Amount_Term,omitempty"`
	CreditHistory     *float64 `json:"Credit_History,omitempty"`
	PropertyArea      string   `json:"Property_Area,omitempty"`
}

func NewPredictRequest(a domain.ApplicantRecord) PredictRequest {
	credit := "0.0"
	if a.HasGoodCredit() {
		credit = "1.0"
	}
	return PredictRequest{
		Gender:            string(a.Gender),
		Married:           yesNo(a.Married),
		Dependents:        string(a.Dependents),
		Education:         string(a.Education),
		SelfEmployed:      yesNo(a.SelfEmployed),
		ApplicantIncome:   a.ApplicantIncome.InexactFloat64(),
		CoapplicantIncome: a.CoapplicantIncome.InexactFloat64(),
		LoanAmount:        a.LoanAmount.InexactFloat64(),
		LoanAmountTerm:    float64(a.LoanTermMonths),
		CreditHistory:     credit,
		PropertyArea:      string(a.PropertyArea),
	}
}

// PredictionClient calls the external prediction endpoint. It makes exactly
// one attempt per call.
type PredictionClient struct {
	apiURL     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPredictionClient creates a client for apiURL. A zero timeout leaves the
// call bounded only by the caller's context.
func NewPredictionClient(apiURL string, timeout time.Duration, logger *slog.Logger) *PredictionClient {
	return &PredictionClient{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *PredictionClient) Predict(ctx context.Context, applicant domain.ApplicantRecord) (domain.PredictionResult, error) {
	jsonData, err := json.Marshal(NewPredictRequest(applicant))
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("encode prediction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return domain.PredictionResult{}, &domain.TransportError{Detail: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PredictionResult{}, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPredictionBodyBytes))
	if err != nil {
		return domain.PredictionResult{}, &domain.TransportError{StatusCode: resp.StatusCode, Detail: "read response", Err: err}
	}

	c.logger.DebugContext(ctx, "prediction service responded",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.PredictionResult{}, &domain.TransportError{
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(body, resp.StatusCode),
		}
	}

	var predictResp PredictResponse
	if err := json.Unmarshal(body, &predictResp); err != nil {
		return domain.PredictionResult{}, &domain.TransportError{
			StatusCode: resp.StatusCode,
			Detail:     "decode prediction response",
			Err:        err,
		}
	}

	return predictResp.toResult(applicant)
}

func (r PredictResponse) toResult(submitted domain.ApplicantRecord) (domain.PredictionResult, error) {
	if math.IsNaN(r.Probability) || r.Probability < 0 || r.Probability > 100 {
		return domain.PredictionResult{}, &domain.TransportError{
			StatusCode: http.StatusOK,
			Detail:     fmt.Sprintf("probability %v outside 0-100", r.Probability),
		}
	}

	label := domain.LabelReject
	if r.Prediction == "Y" {
		label = domain.LabelApprove
	}

	return domain.PredictionResult{
		Label:       label,
		Probability: r.Probability,
		Confidence:  domain.ParseConfidence(r.Confidence),
		Applicant:   r.ApplicantData.merge(submitted),
	}, nil
}

// merge overlays the echoed fields on the submitted record. Missing or
// unusable echoed values keep the submitted ones.
func (e *EchoedApplicant) merge(base domain.ApplicantRecord) domain.ApplicantRecord {
	if e == nil {
		return base
	}
	out := base

	if e.Gender != "" {
		out.Gender = domain.Gender(e.Gender)
	}
	if e.Married != "" {
		out.Married = e.Married == "Yes"
	}
	if e.Dependents != "" {
		out.Dependents = domain.Dependents(e.Dependents)
	}
	if e.Education != "" {
		out.Education = domain.Education(e.Education)
	}
	if e.SelfEmployed != "" {
		out.SelfEmployed = e.SelfEmployed == "Yes"
	}
	if e.PropertyArea != "" {
		out.PropertyArea = domain.PropertyArea(e.PropertyArea)
	}
	if e.ApplicantIncome != nil && *e.ApplicantIncome > 0 {
		out.ApplicantIncome = decimal.NewFromFloat(*e.ApplicantIncome)
	}
	if e.CoapplicantIncome != nil && *e.CoapplicantIncome >= 0 {
		out.CoapplicantIncome = decimal.NewFromFloat(*e.CoapplicantIncome)
	}
	if e.LoanAmount != nil && *e.LoanAmount > 0 {
		out.LoanAmount = decimal.NewFromFloat(*e.LoanAmount)
	}
	if e.LoanAmountTerm != nil && *e.LoanAmountTerm >= MinTermMonths {
		out.LoanTermMonths = int(math.Round(*e.LoanAmountTerm))
	}
	if e.CreditHistory != nil {
		out.CreditHistory = domain.CreditHistoryPoor
		if *e.CreditHistory == 1 {
			out.CreditHistory = domain.CreditHistoryGood
		}
	}
	return out
}

func errorDetail(body []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(status)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

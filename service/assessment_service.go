package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"loan-insight/domain"
	"loan-insight/observability"
	"loan-insight/repository"
)

type Predictor interface {
	Predict(ctx context.Context, applicant domain.ApplicantRecord) (domain.PredictionResult, error)
}

type EventPublisher interface {
	PublishAssessmentCompleted(ctx context.Context, evt domain.AssessmentCompleted) error
}

// AssessmentService runs one form submission end to end: validation, the
// prediction call, derived metrics and insights.
type AssessmentService struct {
	validator  *FormValidator
	guard      *RequestGuard
	predictor  Predictor
	insights   *InsightEngine
	reports    repository.AssessmentRepository
	publisher  EventPublisher
	metrics    *observability.Metrics
	annualRate float64
	logger     *slog.Logger
	now        func() time.Time
}

func NewAssessmentService(
	predictor Predictor,
	reports repository.AssessmentRepository,
	publisher EventPublisher,
	metrics *observability.Metrics,
	annualRate float64,
	logger *slog.Logger,
) *AssessmentService {
	return &AssessmentService{
		validator:  NewFormValidator(),
		guard:      NewRequestGuard(),
		predictor:  predictor,
		insights:   NewInsightEngine(annualRate),
		reports:    reports,
		publisher:  publisher,
		metrics:    metrics,
		annualRate: annualRate,
		logger:     logger,
		now:        time.Now,
	}
}

// Assess validates form and, if valid, asks the prediction service about it.
// clientKey identifies the submitter; only one submission per key may be in
// flight.
func (s *AssessmentService) Assess(ctx context.Context, clientKey string, form ApplicationForm) (domain.Assessment, error) {
	applicant, err := s.validator.Validate(form)
	if err != nil {
		s.metrics.ObserveAssessment("invalid")
		return domain.Assessment{}, err
	}

	release, err := s.guard.TryEnter(clientKey)
	if err != nil {
		s.metrics.ObserveAssessment("in_flight")
		return domain.Assessment{}, err
	}
	defer release()

	start := time.Now()
	prediction, err := s.predictor.Predict(ctx, applicant)
	s.metrics.ObservePrediction(err == nil, time.Since(start))
	if err != nil {
		s.metrics.ObserveAssessment("transport_error")
		s.logger.WarnContext(ctx, "prediction failed", "client", clientKey, "error", err)

		var transportErr *domain.TransportError
		if errors.As(err, &transportErr) {
			return domain.Assessment{}, err
		}
		return domain.Assessment{}, &domain.TransportError{Err: err}
	}

	// Se usa el registro devuelto por el servicio, como en la pantalla.
	metrics, err := ComputeMetrics(prediction.Applicant, s.annualRate)
	if err != nil {
		s.metrics.ObserveAssessment("transport_error")
		return domain.Assessment{}, &domain.TransportError{
			Detail: fmt.Sprintf("echoed applicant unusable: %v", err),
			Err:    err,
		}
	}

	terms, err := TermOptions(prediction.Applicant, s.annualRate)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("price term options: %w", err)
	}

	assessment := domain.Assessment{
		ID:         uuid.NewString(),
		Prediction: prediction,
		Metrics:    metrics,
		Insights:   s.insights.FromMetrics(prediction.Applicant, prediction, metrics),
		Terms:      terms,
		CreatedAt:  s.now().UTC(),
	}

	// Guardar el reporte (no crítico si falla)
	if err := s.reports.Save(ctx, assessment); err != nil {
		s.logger.WarnContext(ctx, "failed to stage report", "assessment_id", assessment.ID, "error", err)
	} else {
		assessment.ReportStored = true
	}

	s.publish(ctx, assessment)
	s.metrics.ObserveAssessment(string(prediction.Label))

	return assessment, nil
}

// Report returns a staged assessment for download.
func (s *AssessmentService) Report(ctx context.Context, id string) (domain.Assessment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Assessment{}, domain.ErrReportNotFound
	}
	return s.reports.Get(ctx, id)
}

func (s *AssessmentService) publish(ctx context.Context, a domain.Assessment) {
	evt := domain.AssessmentCompleted{
		EventID:      uuid.NewString(),
		AssessmentID: a.ID,
		Label:        a.Prediction.Label,
		Probability:  a.Prediction.Probability,
		Confidence:   a.Prediction.Confidence,
		InsightCount: len(a.Insights),
		OccurredAt:   a.CreatedAt,
	}
	if err := s.publisher.PublishAssessmentCompleted(ctx, evt); err != nil {
		s.metrics.EventPublishFailed()
		s.logger.WarnContext(ctx, "failed to publish assessment event", "assessment_id", a.ID, "error", err)
	}
}

package messaging

import (
	"context"
	"log/slog"

	"loan-insight/domain"
)

// LogPublisher records events in the log when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishAssessmentCompleted(ctx context.Context, evt domain.AssessmentCompleted) error {
	p.logger.InfoContext(ctx, "assessment completed",
		"event_id", evt.EventID,
		"assessment_id", evt.AssessmentID,
		"label", evt.Label,
		"probability", evt.Probability,
		"confidence", evt.Confidence,
		"insight_count", evt.InsightCount,
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

package repository

import (
	"context"

	"loan-insight/domain"
)

// AssessmentRepository stages assessments for report download. Entries
// expire; nothing here is a record of the application.
type AssessmentRepository interface {
	Save(ctx context.Context, a domain.Assessment) error
	Get(ctx context.Context, id string) (domain.Assessment, error)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-insight/domain"
)

func TestMemoryAssessmentRepository_SaveAndGet(t *testing.T) {
	repo := NewMemoryAssessmentRepository(time.Hour)
	ctx := context.Background()

	a := domain.Assessment{ID: "a-1", Insights: []string{"Good credit history"}}
	require.NoError(t, repo.Save(ctx, a))

	got, err := repo.Get(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, a.Insights, got.Insights)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestMemoryAssessmentRepository_Expiry(t *testing.T) {
	repo := NewMemoryAssessmentRepository(10 * time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.Assessment{ID: "old"}))

	now = now.Add(9 * time.Minute)
	_, err := repo.Get(ctx, "old")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
	assert.Equal(t, 0, repo.Len())
}

func TestMemoryAssessmentRepository_SaveEvictsExpired(t *testing.T) {
	repo := NewMemoryAssessmentRepository(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.Assessment{ID: "a"}))
	require.NoError(t, repo.Save(ctx, domain.Assessment{ID: "b"}))

	now = now.Add(2 * time.Minute)
	require.NoError(t, repo.Save(ctx, domain.Assessment{ID: "c"}))
	assert.Equal(t, 1, repo.Len())
}

package repository

import (
	"context"
	"sync"
	"time"

	"loan-insight/domain"
)

type memoryEntry struct {
	assessment domain.Assessment
	expiresAt  time.Time
}

// MemoryAssessmentRepository keeps assessments in process memory.
type MemoryAssessmentRepository struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryAssessmentRepository(ttl time.Duration) *MemoryAssessmentRepository {
	return &MemoryAssessmentRepository{
		ttl:  ttl,
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryAssessmentRepository) Save(_ context.Context, a domain.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictExpired(now)
	m.data[a.ID] = memoryEntry{assessment: a, expiresAt: now.Add(m.ttl)}
	return nil
}

func (m *MemoryAssessmentRepository) Get(_ context.Context, id string) (domain.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[id]
	if !ok || !m.now().Before(entry.expiresAt) {
		delete(m.data, id)
		return domain.Assessment{}, domain.ErrReportNotFound
	}
	return entry.assessment, nil
}

func (m *MemoryAssessmentRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *MemoryAssessmentRepository) evictExpired(now time.Time) {
	for id, entry := range m.data {
		if !now.Before(entry.expiresAt) {
			delete(m.data, id)
		}
	}
}

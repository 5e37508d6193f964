package service

import (
	"sync"

	"golang.org/x/sync/semaphore"

	"loan-insight/domain"
)

// RequestGuard allows one in-flight submission per client. A second
// submission from the same client fails immediately; nothing is queued.
type RequestGuard struct {
	mu    sync.Mutex
	slots map[string]*semaphore.Weighted
}

func NewRequestGuard() *RequestGuard {
	return &RequestGuard{
		slots: make(map[string]*semaphore.Weighted),
	}
}

// TryEnter claims the slot for key. The returned release frees it and is
// safe to call more than once.
func (g *RequestGuard) TryEnter(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	slot, ok := g.slots[key]
	if !ok {
		slot = semaphore.NewWeighted(1)
		g.slots[key] = slot
	}
	if !slot.TryAcquire(1) {
		return nil, domain.ErrSubmissionInFlight
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()

			slot.Release(1)
			if g.slots[key] == slot {
				delete(g.slots, key)
			}
		})
	}, nil
}

// InFlight reports how many clients currently hold a slot.
func (g *RequestGuard) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.slots)
}

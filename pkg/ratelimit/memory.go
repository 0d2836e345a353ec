package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type window struct {
	count   int64
	resetAt time.Time
}

// Memory is a fixed-window limiter held in process memory, for tests and
// single-instance deployments.
type Memory struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// Make sure we conform to the interface.
var _ Limiter = (*Memory)(nil)

// NewMemory creates an empty in-memory limiter.
func NewMemory() *Memory {
	return &Memory{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Check counts one action for the actor, opening a fresh window if the
// previous one has expired.
func (m *Memory) Check(ctx context.Context, actor, action string, policy Policy) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s:%s", action, actor)
	now := m.now()

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(policy.Window)}
		m.windows[key] = w
	}

	if w.count >= policy.Max {
		return &Result{Allowed: false, RetryAfter: w.resetAt.Sub(now)}, nil
	}

	w.count++
	return &Result{Allowed: true, Remaining: policy.Max - w.count}, nil
}

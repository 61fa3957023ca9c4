package limiter

import (
	"context"
	"sync"
	"time"
)

type attempt struct {
	fails        int
	updatedAt    time.Time
	blockedUntil time.Time
}

// Memory is an in-process limiter for dev mode and tests.
type Memory struct {
	mu    sync.Mutex
	cfg   Config
	items map[string]attempt
	now   func() time.Time
}

var _ Limiter = (*Memory)(nil)

func NewMemory(cfg Config) *Memory {
	return &Memory{cfg: cfg.withDefaults(), items: map[string]attempt{}, now: time.Now}
}

func (m *Memory) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.items[key]
	if !ok {
		return true, 0, nil
	}
	now := m.now()
	if a.blockedUntil.After(now) {
		return false, a.blockedUntil.Sub(now), nil
	}
	return true, 0, nil
}

func (m *Memory) Success(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) Failure(ctx context.Context, key string) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	a := m.items[key]
	if a.updatedAt.IsZero() || now.Sub(a.updatedAt) > m.cfg.Window {
		a.fails = 1
	} else {
		a.fails++
	}
	a.updatedAt = now

	blocked := false
	if a.fails >= m.cfg.MaxFails {
		a.blockedUntil = now.Add(m.cfg.BlockFor)
		blocked = true
	}
	m.items[key] = a

	if blocked {
		return true, m.cfg.BlockFor, nil
	}
	return false, 0, nil
}

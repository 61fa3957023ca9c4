// Package limiter throttles PIN attempts against a share grant.
package limiter

import (
	"context"
	"time"
)

// Limiter controls PIN attempts and temporary lockouts per key (a grant id).
type Limiter interface {
	// Allow reports whether an attempt is currently allowed and optional retry-after.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	// Success resets counters after a correct PIN.
	Success(ctx context.Context, key string) error
	// Failure records a wrong PIN; may place a temporary block.
	Failure(ctx context.Context, key string) (bool, time.Duration, error)
}

// Config holds the sliding window and lockout parameters shared by all implementations.
type Config struct {
	Window   time.Duration
	MaxFails int
	BlockFor time.Duration
}

const (
	DefaultWindow   = 15 * time.Minute
	DefaultMaxFails = 5
	DefaultBlockFor = 15 * time.Minute
)

func (c Config) withDefaults() Config {
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.MaxFails <= 0 {
		c.MaxFails = DefaultMaxFails
	}
	if c.BlockFor <= 0 {
		c.BlockFor = DefaultBlockFor
	}
	return c
}

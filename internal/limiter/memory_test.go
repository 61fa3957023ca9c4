package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestMemory(cfg Config) (*Memory, *time.Time) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	m := NewMemory(cfg)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestMemory_BlocksAtThreshold(t *testing.T) {
	m, _ := newTestMemory(Config{Window: time.Minute, MaxFails: 3, BlockFor: 10 * time.Minute})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		blocked, _, err := m.Failure(ctx, "g1")
		require.NoError(t, err)
		require.False(t, blocked)
	}
	blocked, dur, err := m.Failure(ctx, "g1")
	require.NoError(t, err)
	require.True(t, blocked)
	require.Equal(t, 10*time.Minute, dur)

	ok, retry, err := m.Allow(ctx, "g1")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 10*time.Minute, retry)

	// Otra clave no se ve afectada.
	ok, _, err = m.Allow(ctx, "g2")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemory_BlockExpires(t *testing.T) {
	m, now := newTestMemory(Config{Window: time.Minute, MaxFails: 1, BlockFor: 5 * time.Minute})
	ctx := context.Background()

	blocked, _, err := m.Failure(ctx, "g1")
	require.NoError(t, err)
	require.True(t, blocked)

	*now = now.Add(5*time.Minute + time.Second)
	ok, _, err := m.Allow(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemory_WindowResetsCount(t *testing.T) {
	m, now := newTestMemory(Config{Window: time.Minute, MaxFails: 2, BlockFor: time.Hour})
	ctx := context.Background()

	blocked, _, _ := m.Failure(ctx, "g1")
	require.False(t, blocked)

	*now = now.Add(2 * time.Minute)
	blocked, _, _ = m.Failure(ctx, "g1")
	require.False(t, blocked, "failure outside window must restart the count")
}

func TestMemory_SuccessResets(t *testing.T) {
	m, _ := newTestMemory(Config{Window: time.Minute, MaxFails: 2, BlockFor: time.Hour})
	ctx := context.Background()

	_, _, _ = m.Failure(ctx, "g1")
	require.NoError(t, m.Success(ctx, "g1"))

	blocked, _, _ := m.Failure(ctx, "g1")
	require.False(t, blocked)
}

func TestConfig_Defaults(t *testing.T) {
	c := Config{}.withDefaults()
	require.Equal(t, DefaultWindow, c.Window)
	require.Equal(t, DefaultMaxFails, c.MaxFails)
	require.Equal(t, DefaultBlockFor, c.BlockFor)
}

package limiter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PG is a PostgreSQL-backed limiter implementation with sliding window and lockout.
type PG struct {
	pool pgxQuerier
	cfg  Config
	now  func() time.Time
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Limiter = (*PG)(nil)

// NewPG constructs a PostgreSQL-backed limiter over a pool or any querier.
func NewPG(q pgxQuerier, cfg Config) *PG {
	return &PG{pool: q, cfg: cfg.withDefaults(), now: time.Now}
}

// Allow reports whether an attempt is currently allowed and a retry-after duration.
func (l *PG) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	const q = `SELECT blocked_until FROM pin_attempts WHERE key=$1`
	var blockedUntil time.Time
	err := l.pool.QueryRow(ctx, q, key).Scan(&blockedUntil)
	switch {
	case err == nil:
		now := l.now()
		if blockedUntil.After(now) {
			return false, blockedUntil.Sub(now), nil
		}
		return true, 0, nil
	case errors.Is(err, pgx.ErrNoRows):
		return true, 0, nil
	default:
		return false, 0, err
	}
}

// Success resets counters for key.
func (l *PG) Success(ctx context.Context, key string) error {
	const q = `
INSERT INTO pin_attempts (key, fail_count, blocked_until, updated_at)
VALUES ($1,0,'epoch',now())
ON CONFLICT (key)
DO UPDATE SET fail_count=0, blocked_until='epoch', updated_at=now()`
	_, err := l.pool.Exec(ctx, q, key)
	return err
}

// Failure records a wrong PIN; may set a block until a future time.
func (l *PG) Failure(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.now()

	const q = `
INSERT INTO pin_attempts (key, fail_count, blocked_until, updated_at)
VALUES ($1,1,'epoch',now())
ON CONFLICT (key) DO UPDATE
SET
  fail_count = CASE WHEN EXCLUDED.updated_at - pin_attempts.updated_at > $2::interval THEN 1 ELSE pin_attempts.fail_count + 1 END,
  updated_at = now()
RETURNING fail_count`
	var fails int
	if err := l.pool.QueryRow(ctx, q, key, l.cfg.Window).Scan(&fails); err != nil {
		return false, 0, err
	}
	if fails >= l.cfg.MaxFails {
		const upd = `UPDATE pin_attempts SET blocked_until=$2 WHERE key=$1`
		if _, err := l.pool.Exec(ctx, upd, key, now.Add(l.cfg.BlockFor)); err != nil {
			return false, 0, err
		}
		return true, l.cfg.BlockFor, nil
	}
	return false, 0, nil
}

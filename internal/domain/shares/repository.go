package shares

import (
	"context"
	"time"
)

type Repository interface {
	// Create falla con errs.ErrAlreadyExists si el token (o id) ya existe;
	// nunca sobreescribe.
	Create(ctx context.Context, g Grant) error
	GetByToken(ctx context.Context, token string) (Grant, error)

	// ListActiveByOwner devuelve grants con status active y expires_at > now.
	ListActiveByOwner(ctx context.Context, ownerID string, now time.Time) ([]Grant, error)
	// ListByOwner devuelve todos los grants, más nuevos primero.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]Grant, error)

	// MarkAccessed setea accessed_at/by solo si aún son null (first-write-wins).
	// won=false no es error.
	MarkAccessed(ctx context.Context, grantID, accessorID string, at time.Time) (won bool, err error)
	// MarkExpired pasa active -> expired. Idempotente.
	MarkExpired(ctx context.Context, grantID string) error
	// SetStatus actualiza solo si el grant es de ownerID y sigue active.
	SetStatus(ctx context.Context, grantID, ownerID string, status Status, at time.Time) (updated bool, err error)
}

package records

import "context"

type Repository interface {
	Create(ctx context.Context, rec Record) error
	// GetByIDs omite en silencio los ids que no existen.
	GetByIDs(ctx context.Context, ids []string) ([]Record, error)
	ListByOwner(ctx context.Context, ownerID string, filter ListFilter) ([]Record, error)
}

type ListFilter struct {
	Categories []Category
	Limit      int
}

package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"health-vault/internal/domain/records"
	"health-vault/internal/errs"
)

type recordRepo struct {
	mu   sync.RWMutex
	byID map[string]records.Record
}

func NewRecordRepo() records.Repository {
	return &recordRepo{
		byID: make(map[string]records.Record),
	}
}

func (r *recordRepo) Create(ctx context.Context, rec records.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errs.ErrAlreadyExists
	}

	r.byID[rec.ID] = rec
	return nil
}

func (r *recordRepo) GetByIDs(ctx context.Context, ids []string) ([]records.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Record, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if rec, ok := r.byID[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *recordRepo) ListByOwner(ctx context.Context, ownerID string, filter records.ListFilter) ([]records.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var allowed map[records.Category]struct{}
	if len(filter.Categories) > 0 {
		allowed = make(map[records.Category]struct{}, len(filter.Categories))
		for _, c := range filter.Categories {
			allowed[c] = struct{}{}
		}
	}

	out := make([]records.Record, 0)
	for _, rec := range r.byID {
		if rec.OwnerID != ownerID {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[rec.Category]; !ok {
				continue
			}
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].RecordedAt.Equal(out[j].RecordedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

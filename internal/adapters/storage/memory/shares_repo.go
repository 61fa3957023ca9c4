package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"health-vault/internal/domain/shares"
	"health-vault/internal/errs"
)

type shareRepo struct {
	mu      sync.RWMutex
	byID    map[string]shares.Grant
	byToken map[string]string // token -> id
}

func NewShareRepo() shares.Repository {
	return &shareRepo{
		byID:    make(map[string]shares.Grant),
		byToken: make(map[string]string),
	}
}

func (r *shareRepo) Create(ctx context.Context, g shares.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" || g.Token == "" {
		return errors.New("share id and token required")
	}
	if len(g.RecordIDs) == 0 {
		return shares.ErrInvalidInput
	}
	if _, exists := r.byID[g.ID]; exists {
		return errs.ErrAlreadyExists
	}
	if _, exists := r.byToken[g.Token]; exists {
		return errs.ErrAlreadyExists
	}

	r.byID[g.ID] = cloneGrant(g)
	r.byToken[g.Token] = g.ID
	return nil
}

func (r *shareRepo) GetByToken(ctx context.Context, token string) (shares.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byToken[token]
	if !ok {
		return shares.Grant{}, errs.ErrNotFound
	}
	return cloneGrant(r.byID[id]), nil
}

func (r *shareRepo) ListActiveByOwner(ctx context.Context, ownerID string, now time.Time) ([]shares.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shares.Grant, 0)
	for _, g := range r.byID {
		if g.OwnerID == ownerID && g.Status == shares.StatusActive && g.ExpiresAt.After(now) {
			out = append(out, cloneGrant(g))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *shareRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]shares.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shares.Grant, 0)
	for _, g := range r.byID {
		if g.OwnerID == ownerID {
			out = append(out, cloneGrant(g))
		}
	}
	sortNewestFirst(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MarkAccessed es atómico bajo el lock: el primero gana.
func (r *shareRepo) MarkAccessed(ctx context.Context, grantID, accessorID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[grantID]
	if !ok || g.AccessedAt != nil {
		return false, nil
	}
	by := accessorID
	g.AccessedAt = &at
	g.AccessedBy = &by
	r.byID[grantID] = g
	return true, nil
}

func (r *shareRepo) MarkExpired(ctx context.Context, grantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[grantID]
	if !ok || g.Status != shares.StatusActive {
		return nil
	}
	g.Status = shares.StatusExpired
	r.byID[grantID] = g
	return nil
}

func (r *shareRepo) SetStatus(ctx context.Context, grantID, ownerID string, status shares.Status, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[grantID]
	if !ok || g.OwnerID != ownerID || g.Status != shares.StatusActive {
		return false, nil
	}
	g.Status = status
	if status == shares.StatusRevoked {
		g.RevokedAt = &at
	}
	r.byID[grantID] = g
	return true, nil
}

func sortNewestFirst(items []shares.Grant) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// cloneGrant evita compartir el slice y los punteros con quien llama.
func cloneGrant(g shares.Grant) shares.Grant {
	g.RecordIDs = append([]string(nil), g.RecordIDs...)
	if g.AccessedAt != nil {
		t := *g.AccessedAt
		g.AccessedAt = &t
	}
	if g.AccessedBy != nil {
		s := *g.AccessedBy
		g.AccessedBy = &s
	}
	if g.RevokedAt != nil {
		t := *g.RevokedAt
		g.RevokedAt = &t
	}
	return g
}

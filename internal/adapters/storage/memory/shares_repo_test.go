package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"health-vault/internal/domain/shares"
	"health-vault/internal/errs"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func grant(id, owner, token string, created time.Time) shares.Grant {
	return shares.Grant{
		ID:        id,
		OwnerID:   owner,
		Method:    shares.MethodLink,
		Token:     token,
		PIN:       "12345",
		RecordIDs: []string{"r1", "r2"},
		ExpiresAt: created.Add(time.Hour),
		Status:    shares.StatusActive,
		CreatedAt: created,
	}
}

func TestShareRepo_CreateAndGet(t *testing.T) {
	repo := NewShareRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, grant("g1", "p1", "tok-1", t0)))

	got, err := repo.GetByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, "g1", got.ID)
	require.Equal(t, []string{"r1", "r2"}, got.RecordIDs)

	// Mutar la copia devuelta no toca lo guardado.
	got.RecordIDs[0] = "zz"
	again, _ := repo.GetByToken(ctx, "tok-1")
	require.Equal(t, "r1", again.RecordIDs[0])

	_, err = repo.GetByToken(ctx, "nope")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestShareRepo_Create_Rejects(t *testing.T) {
	repo := NewShareRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, grant("g1", "p1", "tok-1", t0)))

	err := repo.Create(ctx, grant("g2", "p1", "tok-1", t0))
	require.ErrorIs(t, err, errs.ErrAlreadyExists, "token collision must not overwrite")

	err = repo.Create(ctx, grant("g1", "p1", "tok-2", t0))
	require.ErrorIs(t, err, errs.ErrAlreadyExists)

	empty := grant("g3", "p1", "tok-3", t0)
	empty.RecordIDs = nil
	require.ErrorIs(t, repo.Create(ctx, empty), shares.ErrInvalidInput)

	got, err := repo.GetByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, "g1", got.ID)
}

func TestShareRepo_Lists(t *testing.T) {
	repo := NewShareRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, grant("g1", "p1", "tok-1", t0)))
	require.NoError(t, repo.Create(ctx, grant("g2", "p1", "tok-2", t0.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, grant("g3", "p1", "tok-3", t0.Add(2*time.Minute))))
	require.NoError(t, repo.Create(ctx, grant("g4", "p2", "tok-4", t0)))

	updated, err := repo.SetStatus(ctx, "g2", "p1", shares.StatusRevoked, t0.Add(3*time.Minute))
	require.NoError(t, err)
	require.True(t, updated)

	active, err := repo.ListActiveByOwner(ctx, "p1", t0.Add(61*time.Minute))
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "g3", active[0].ID)

	hist, err := repo.ListByOwner(ctx, "p1", 10)
	require.NoError(t, err)
	require.Equal(t, []string{"g3", "g2", "g1"}, ids(hist))

	hist, err = repo.ListByOwner(ctx, "p1", 2)
	require.NoError(t, err)
	require.Equal(t, []string{"g3", "g2"}, ids(hist))
}

func TestShareRepo_SetStatus_Scoped(t *testing.T) {
	repo := NewShareRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, grant("g1", "p1", "tok-1", t0)))

	updated, err := repo.SetStatus(ctx, "g1", "p2", shares.StatusRevoked, t0)
	require.NoError(t, err)
	require.False(t, updated)

	updated, err = repo.SetStatus(ctx, "missing", "p1", shares.StatusRevoked, t0)
	require.NoError(t, err)
	require.False(t, updated)

	require.NoError(t, repo.MarkExpired(ctx, "g1"))
	require.NoError(t, repo.MarkExpired(ctx, "g1"))

	updated, err = repo.SetStatus(ctx, "g1", "p1", shares.StatusRevoked, t0)
	require.NoError(t, err)
	require.False(t, updated, "expired is terminal")

	got, _ := repo.GetByToken(ctx, "tok-1")
	require.Equal(t, shares.StatusExpired, got.Status)
	require.Nil(t, got.RevokedAt)
}

func TestShareRepo_MarkAccessed_FirstWins(t *testing.T) {
	repo := NewShareRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, grant("g1", "p1", "tok-1", t0)))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			won, err := repo.MarkAccessed(ctx, "g1", fmt.Sprintf("doc-%d", i), t0.Add(time.Duration(i)*time.Second))
			if err == nil && won {
				atomic.AddInt32(&wins, 1)
			}
		}(i)
	}
	wg.Wait()
	require.EqualValues(t, 1, wins)

	got, _ := repo.GetByToken(ctx, "tok-1")
	require.NotNil(t, got.AccessedBy)
	require.NotNil(t, got.AccessedAt)
}

func ids(gs []shares.Grant) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.ID)
	}
	return out
}

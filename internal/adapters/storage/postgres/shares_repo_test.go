package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"health-vault/internal/domain/shares"
	"health-vault/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

var (
	t0 = time.Date(2026, 8, 3, 14, 0, 0, 0, time.UTC)

	grantCols = []string{
		"id", "owner_id", "method",
		"token", "pin", "record_ids",
		"expires_at", "status",
		"accessed_at", "accessed_by",
		"created_at", "revoked_at",
	}
)

func sampleGrant() shares.Grant {
	return shares.Grant{
		ID:        "g1",
		OwnerID:   "p1",
		Method:    shares.MethodCode,
		Token:     "tok-1",
		PIN:       "04821",
		RecordIDs: []string{"r1", "r2"},
		ExpiresAt: t0.Add(time.Hour),
		Status:    shares.StatusActive,
		CreatedAt: t0,
	}
}

func grantRow(rows *pgxmock.Rows, g shares.Grant) *pgxmock.Rows {
	return rows.AddRow(
		g.ID, g.OwnerID, string(g.Method),
		g.Token, g.PIN, g.RecordIDs,
		g.ExpiresAt, string(g.Status),
		g.AccessedAt, g.AccessedBy,
		g.CreatedAt, g.RevokedAt,
	)
}

func TestSharesRepo_Create_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)
	g := sampleGrant()

	mock.ExpectExec(`INSERT INTO share_grants`).
		WithArgs(g.ID, g.OwnerID, "code", g.Token, g.PIN, g.RecordIDs, g.ExpiresAt, "active",
			(*time.Time)(nil), (*string)(nil), g.CreatedAt, (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, r.Create(context.Background(), g))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSharesRepo_Create_DuplicateToken(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)

	mock.ExpectExec(`INSERT INTO share_grants`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := r.Create(context.Background(), sampleGrant())
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestSharesRepo_Create_EmptyRecords(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)

	g := sampleGrant()
	g.RecordIDs = nil
	require.ErrorIs(t, r.Create(context.Background(), g), shares.ErrInvalidInput)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSharesRepo_GetByToken(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)

	want := sampleGrant()
	at := t0.Add(10 * time.Minute)
	by := "doc-1"
	want.AccessedAt = &at
	want.AccessedBy = &by

	mock.ExpectQuery(`FROM share_grants`).
		WithArgs("tok-1").
		WillReturnRows(grantRow(pgxmock.NewRows(grantCols), want))

	got, err := r.GetByToken(context.Background(), " tok-1 ")
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSharesRepo_GetByToken_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)

	mock.ExpectQuery(`FROM share_grants`).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	_, err := r.GetByToken(context.Background(), "nope")
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = r.GetByToken(context.Background(), "  ")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSharesRepo_GetByToken_DBError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)

	mock.ExpectQuery(`FROM share_grants`).
		WithArgs("tok-1").
		WillReturnError(errors.New("conn reset"))

	_, err := r.GetByToken(context.Background(), "tok-1")
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrNotFound)
}

func TestSharesRepo_ListActiveByOwner(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)

	g := sampleGrant()
	mock.ExpectQuery(`status = 'active' AND expires_at > \$2`).
		WithArgs("p1", t0).
		WillReturnRows(grantRow(pgxmock.NewRows(grantCols), g))

	items, err := r.ListActiveByOwner(context.Background(), "p1", t0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, shares.MethodCode, items[0].Method)
}

func TestSharesRepo_ListByOwner_DefaultLimit(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)

	first := sampleGrant()
	second := sampleGrant()
	second.ID, second.Token, second.CreatedAt = "g2", "tok-2", t0.Add(time.Minute)

	rows := pgxmock.NewRows(grantCols)
	grantRow(rows, second)
	grantRow(rows, first)

	mock.ExpectQuery(`LIMIT \$2`).
		WithArgs("p1", 20).
		WillReturnRows(rows)

	items, err := r.ListByOwner(context.Background(), "p1", 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "g2", items[0].ID)
}

func TestSharesRepo_MarkAccessed(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)

	mock.ExpectExec(`accessed_at IS NULL`).
		WithArgs("g1", "doc-1", t0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`accessed_at IS NULL`).
		WithArgs("g1", "doc-2", t0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	won, err := r.MarkAccessed(context.Background(), "g1", "doc-1", t0)
	require.NoError(t, err)
	require.True(t, won)

	won, err = r.MarkAccessed(context.Background(), "g1", "doc-2", t0)
	require.NoError(t, err)
	require.False(t, won)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSharesRepo_MarkExpired(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)

	mock.ExpectExec(`SET status = 'expired'`).
		WithArgs("g1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, r.MarkExpired(context.Background(), "g1"))
}

func TestSharesRepo_SetStatus(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSharesRepo(db)

	mock.ExpectExec(`WHERE id = \$1 AND owner_id = \$2 AND status = 'active'`).
		WithArgs("g1", "p1", "revoked", &t0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("g1", "p2", "revoked", &t0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	updated, err := r.SetStatus(context.Background(), "g1", "p1", shares.StatusRevoked, t0)
	require.NoError(t, err)
	require.True(t, updated)

	updated, err = r.SetStatus(context.Background(), "g1", "p2", shares.StatusRevoked, t0)
	require.NoError(t, err)
	require.False(t, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

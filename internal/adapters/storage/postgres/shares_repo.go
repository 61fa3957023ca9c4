package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"health-vault/internal/domain/shares"
	"health-vault/internal/errs"

	"github.com/jackc/pgx/v5"
)

type SharesRepo struct {
	db *DB
}

func NewSharesRepo(db *DB) *SharesRepo {
	return &SharesRepo{db: db}
}

const shareColumns = `
	id, owner_id, method,
	token, pin, record_ids,
	expires_at, status,
	accessed_at, accessed_by,
	created_at, revoked_at`

func (r *SharesRepo) Create(ctx context.Context, g shares.Grant) error {
	if len(g.RecordIDs) == 0 {
		return shares.ErrInvalidInput
	}

	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO share_grants (`+shareColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		g.ID,
		g.OwnerID,
		string(g.Method),
		g.Token,
		g.PIN,
		g.RecordIDs,
		g.ExpiresAt,
		string(g.Status),
		g.AccessedAt,
		g.AccessedBy,
		g.CreatedAt,
		g.RevokedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *SharesRepo) GetByToken(ctx context.Context, token string) (shares.Grant, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return shares.Grant{}, errs.ErrNotFound
	}

	row := r.db.Pool.QueryRow(ctx, `
		SELECT`+shareColumns+`
		FROM share_grants
		WHERE token = $1
	`, token)

	g, err := scanGrant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shares.Grant{}, errs.ErrNotFound
		}
		return shares.Grant{}, err
	}
	return g, nil
}

func (r *SharesRepo) ListActiveByOwner(ctx context.Context, ownerID string, now time.Time) ([]shares.Grant, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT`+shareColumns+`
		FROM share_grants
		WHERE owner_id = $1 AND status = 'active' AND expires_at > $2
		ORDER BY created_at DESC, id DESC
	`, ownerID, now)
	if err != nil {
		return nil, err
	}
	return collectGrants(rows)
}

func (r *SharesRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]shares.Grant, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT`+shareColumns+`
		FROM share_grants
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	return collectGrants(rows)
}

// MarkAccessed es un update condicional: solo el primero pasa el
// "accessed_at IS NULL".
func (r *SharesRepo) MarkAccessed(ctx context.Context, grantID, accessorID string, at time.Time) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE share_grants
		SET accessed_at = $3, accessed_by = $2
		WHERE id = $1 AND accessed_at IS NULL
	`, grantID, accessorID, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SharesRepo) MarkExpired(ctx context.Context, grantID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE share_grants
		SET status = 'expired'
		WHERE id = $1 AND status = 'active'
	`, grantID)
	return err
}

func (r *SharesRepo) SetStatus(ctx context.Context, grantID, ownerID string, status shares.Status, at time.Time) (bool, error) {
	var revokedAt *time.Time
	if status == shares.StatusRevoked {
		revokedAt = &at
	}

	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE share_grants
		SET status = $3, revoked_at = COALESCE($4, revoked_at)
		WHERE id = $1 AND owner_id = $2 AND status = 'active'
	`, grantID, ownerID, string(status), revokedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanGrant(row pgx.Row) (shares.Grant, error) {
	var g shares.Grant
	var method, status string
	if err := row.Scan(
		&g.ID,
		&g.OwnerID,
		&method,
		&g.Token,
		&g.PIN,
		&g.RecordIDs,
		&g.ExpiresAt,
		&status,
		&g.AccessedAt,
		&g.AccessedBy,
		&g.CreatedAt,
		&g.RevokedAt,
	); err != nil {
		return shares.Grant{}, err
	}
	g.Method = shares.Method(method)
	g.Status = shares.Status(status)
	return g, nil
}

func collectGrants(rows pgx.Rows) ([]shares.Grant, error) {
	defer rows.Close()

	out := make([]shares.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

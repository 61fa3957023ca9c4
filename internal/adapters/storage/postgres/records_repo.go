package postgres

import (
	"context"
	"fmt"
	"strings"

	"health-vault/internal/domain/records"
	"health-vault/internal/errs"

	"github.com/jackc/pgx/v5"
)

type RecordsRepo struct {
	db *DB
}

func NewRecordsRepo(db *DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

const recordColumns = `
	id, owner_id,
	category, title, notes,
	recorded_at, created_at,
	status`

func (r *RecordsRepo) Create(ctx context.Context, rec records.Record) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO records (`+recordColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		rec.ID,
		rec.OwnerID,
		string(rec.Category),
		rec.Title,
		rec.Notes,
		rec.RecordedAt,
		rec.CreatedAt,
		string(rec.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByIDs respeta el orden de ids y omite los que no existen.
func (r *RecordsRepo) GetByIDs(ctx context.Context, ids []string) ([]records.Record, error) {
	if len(ids) == 0 {
		return []records.Record{}, nil
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT`+recordColumns+`
		FROM records
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}

	found, err := collectRecords(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]records.Record, len(found))
	for _, rec := range found {
		byID[rec.ID] = rec
	}
	out := make([]records.Record, 0, len(found))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			out = append(out, rec)
			delete(byID, id)
		}
	}
	return out, nil
}

func (r *RecordsRepo) ListByOwner(ctx context.Context, ownerID string, filter records.ListFilter) ([]records.Record, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT` + recordColumns + `
		FROM records
		WHERE owner_id = $1
	`)

	args := []any{ownerID}
	argN := 2

	if len(filter.Categories) > 0 {
		cats := make([]string, 0, len(filter.Categories))
		for _, c := range filter.Categories {
			cats = append(cats, string(c))
		}
		sb.WriteString(fmt.Sprintf(" AND category = ANY($%d)", argN))
		args = append(args, cats)
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	sb.WriteString(" ORDER BY recorded_at DESC, created_at DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]records.Record, error) {
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		var rec records.Record
		var category, status string
		if err := rows.Scan(
			&rec.ID,
			&rec.OwnerID,
			&category,
			&rec.Title,
			&rec.Notes,
			&rec.RecordedAt,
			&rec.CreatedAt,
			&status,
		); err != nil {
			return nil, err
		}
		rec.Category = records.Category(category)
		rec.Status = records.Status(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}

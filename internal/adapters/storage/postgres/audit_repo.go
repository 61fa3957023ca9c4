package postgres

import (
	"context"
	"strings"

	"health-vault/internal/ports/audit"
)

// AuditRepo persiste entradas de auditoría en audit_log.
type AuditRepo struct {
	db *DB
}

func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

var _ audit.Sink = (*AuditRepo)(nil)

func (r *AuditRepo) Log(ctx context.Context, e audit.Entry) error {
	var recordID *string
	if id := strings.TrimSpace(e.RecordID); id != "" {
		recordID = &id
	}
	meta := e.Metadata
	if meta == nil {
		meta = map[string]any{}
	}

	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO audit_log (user_id, action, record_id, metadata, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, e.UserID, string(e.Action), recordID, meta, e.At)
	return err
}

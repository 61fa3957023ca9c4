package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"health-vault/internal/ports/audit"

	_ "modernc.org/sqlite"
)

// SQLiteSink guarda la auditoría en un archivo local. Útil en dev o
// como respaldo cuando no hay Postgres.
type SQLiteSink struct {
	db *sql.DB
}

func OpenSQLiteSink(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// un solo writer
	db.SetMaxOpenConns(1)

	s := &SQLiteSink{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// created_ns en nanos Unix: ordena igual que el tiempo.
func (s *SQLiteSink) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS audit_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	action TEXT NOT NULL,
	record_id TEXT,
	metadata TEXT NOT NULL DEFAULT '{}',
	created_ns INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_events_user_idx ON audit_events (user_id, created_ns);
`)
	return err
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func (s *SQLiteSink) Log(ctx context.Context, e audit.Entry) error {
	meta := e.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	var recordID any
	if e.RecordID != "" {
		recordID = e.RecordID
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO audit_events (user_id, action, record_id, metadata, created_ns)
VALUES (?, ?, ?, ?, ?)`,
		e.UserID, string(e.Action), recordID, string(raw), e.At.UTC().UnixNano(),
	)
	return err
}

// Recent devuelve las últimas entradas de un usuario, más nuevas primero.
func (s *SQLiteSink) Recent(ctx context.Context, userID string, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT user_id, action, COALESCE(record_id, ''), metadata, created_ns
FROM audit_events
WHERE user_id = ?
ORDER BY created_ns DESC, id DESC
LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]audit.Entry, 0)
	for rows.Next() {
		var e audit.Entry
		var action, meta string
		var ns int64
		if err := rows.Scan(&e.UserID, &action, &e.RecordID, &meta, &ns); err != nil {
			return nil, err
		}
		e.Action = audit.Action(action)
		if err := json.Unmarshal([]byte(meta), &e.Metadata); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, ns).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

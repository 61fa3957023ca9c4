// Package audit define el puerto hacia el registro de accesos (fire-and-forget).
package audit

import (
	"context"
	"errors"
	"time"
)

type Action string

const (
	ActionShare        Action = "share"
	ActionAccessShared Action = "access_shared"
	ActionRevokeShare  Action = "revoke_share"
)

type Entry struct {
	UserID   string
	Action   Action
	RecordID string // opcional
	Metadata map[string]any
	At       time.Time
}

// Sink recibe entradas de auditoría. Los llamadores ignoran el error
// (solo lo loguean); un Sink nunca debe bloquear la operación principal.
type Sink interface {
	Log(ctx context.Context, e Entry) error
}

// Multi reparte cada entrada a todos los sinks y junta los errores.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multi []Sink

func (m multi) Log(ctx context.Context, e Entry) error {
	var errs []error
	for _, s := range m {
		if err := s.Log(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop descarta todo.
type Nop struct{}

func (Nop) Log(context.Context, Entry) error { return nil }

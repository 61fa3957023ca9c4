// Package audit contiene los sinks concretos del puerto ports/audit.
package audit

import (
	"context"

	"health-vault/internal/ports/audit"

	"go.uber.org/zap"
)

// ZapSink escribe cada entrada como un log estructurado.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(l *zap.Logger) *ZapSink {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapSink{log: l.Named("audit")}
}

func (s *ZapSink) Log(_ context.Context, e audit.Entry) error {
	fields := []zap.Field{
		zap.String("user_id", e.UserID),
		zap.String("action", string(e.Action)),
		zap.Time("at", e.At),
	}
	if e.RecordID != "" {
		fields = append(fields, zap.String("record_id", e.RecordID))
	}
	if len(e.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", e.Metadata))
	}
	s.log.Info("audit", fields...)
	return nil
}

package shares

import (
	"context"
	"crypto/subtle"
	"strings"

	"health-vault/internal/domain/records"
	"health-vault/internal/ports/audit"

	"go.uber.org/zap"
)

type AccessInput struct {
	Token      string // token o link completo
	AccessorID string
	PIN        string
}

type AccessResult struct {
	Grant   Grant
	Records []records.Record
}

// Resolve valida que el token apunte a un grant usable, sin pedir PIN ni
// devolver registros.
func (s *Service) Resolve(ctx context.Context, tokenOrLink string) (Grant, error) {
	token := ExtractToken(tokenOrLink)
	if token == "" {
		return Grant{}, ErrInvalidOrExpired
	}

	g, err := s.findByToken(ctx, token)
	if err != nil {
		return Grant{}, err
	}
	if !IsUsable(g, s.now()) {
		return Grant{}, ErrInvalidOrExpired
	}
	return g, nil
}

// Access canjea token + PIN. La vigencia se vuelve a chequear acá aunque el
// llamador haya hecho Resolve antes.
func (s *Service) Access(ctx context.Context, in AccessInput) (AccessResult, error) {
	accessorID := strings.TrimSpace(in.AccessorID)
	if accessorID == "" {
		return AccessResult{}, ErrInvalidInput
	}

	g, err := s.Resolve(ctx, in.Token)
	if err != nil {
		return AccessResult{}, err
	}

	if s.limiter != nil {
		allowed, _, err := s.limiter.Allow(ctx, g.ID)
		if err != nil {
			return AccessResult{}, s.persistenceErr("pin limiter allow", err, zap.String("grant_id", g.ID))
		}
		if !allowed {
			return AccessResult{}, ErrTooManyAttempts
		}
	}

	if !pinMatches(in.PIN, g.PIN) {
		if s.limiter != nil {
			blocked, _, err := s.limiter.Failure(ctx, g.ID)
			if err != nil {
				s.log.Warn("pin limiter failure not recorded", zap.String("grant_id", g.ID), zap.Error(err))
			}
			if blocked {
				return AccessResult{}, ErrTooManyAttempts
			}
		}
		return AccessResult{}, ErrInvalidPIN
	}

	if s.limiter != nil {
		if err := s.limiter.Success(ctx, g.ID); err != nil {
			s.log.Warn("pin limiter reset failed", zap.String("grant_id", g.ID), zap.Error(err))
		}
	}

	// Best-effort: la marca es informativa, no bloquea la lectura.
	at := s.now()
	won, err := s.repo.MarkAccessed(ctx, g.ID, accessorID, at)
	switch {
	case err != nil:
		s.log.Warn("mark share accessed failed", zap.String("grant_id", g.ID), zap.Error(err))
	case won:
		g.AccessedAt = &at
		g.AccessedBy = &accessorID
	}

	recs, err := s.records.GetByIDs(ctx, g.RecordIDs)
	if err != nil {
		return AccessResult{}, s.persistenceErr("fetch shared records", err, zap.String("grant_id", g.ID))
	}

	s.record(ctx, audit.Entry{
		UserID: accessorID,
		Action: audit.ActionAccessShared,
		Metadata: map[string]any{
			"grant_id":     g.ID,
			"owner_id":     g.OwnerID,
			"record_count": len(recs),
		},
	})

	return AccessResult{Grant: g, Records: recs}, nil
}

// pinMatches exige igualdad exacta; normalizar el input es cosa del handler.
func pinMatches(supplied, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(expected)) == 1
}

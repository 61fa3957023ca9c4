package shares

import (
	"context"
	"math"
	"strings"
	"time"

	"health-vault/internal/ports/audit"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type IssueInput struct {
	OwnerID   string
	RecordIDs []string
	// DurationHours admite fracciones (0.25 = 15 min). 0 => default.
	DurationHours float64
	Method        Method
}

// Issue crea un grant nuevo para records del dueño. Es el único momento en
// que el PIN sale en claro hacia el dueño junto con el token.
func (s *Service) Issue(ctx context.Context, in IssueInput) (Grant, error) {
	ownerID := strings.TrimSpace(in.OwnerID)
	if ownerID == "" {
		return Grant{}, ErrInvalidInput
	}

	ids := normalizeRecordIDs(in.RecordIDs)
	if len(ids) == 0 {
		return Grant{}, ErrInvalidInput
	}

	hours := in.DurationHours
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 || hours > s.maxHours {
		return Grant{}, ErrInvalidInput
	}
	if hours == 0 {
		hours = s.defaultHours
	}

	method := in.Method
	if method == "" {
		method = MethodLink
	}
	if !method.Valid() {
		return Grant{}, ErrInvalidInput
	}

	// Todos los ids tienen que ser del dueño.
	owned, err := s.records.OwnsAll(ctx, ownerID, ids)
	if err != nil {
		return Grant{}, s.persistenceErr("verify record ownership", err, zap.String("owner_id", ownerID))
	}
	if !owned {
		return Grant{}, ErrInvalidInput
	}

	token, err := s.tokens.NewToken()
	if err != nil {
		return Grant{}, s.persistenceErr("generate share token", err)
	}
	pin, err := s.tokens.NewPIN()
	if err != nil {
		return Grant{}, s.persistenceErr("generate share pin", err)
	}

	now := s.now()
	g := Grant{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Method:    method,
		Token:     token,
		PIN:       pin,
		RecordIDs: ids,
		ExpiresAt: now.Add(hoursToDuration(hours)),
		Status:    StatusActive,
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return Grant{}, s.persistenceErr("create share", err,
			zap.String("owner_id", ownerID),
			zap.Int("record_count", len(ids)),
		)
	}

	s.record(ctx, audit.Entry{
		UserID: ownerID,
		Action: audit.ActionShare,
		Metadata: map[string]any{
			"grant_id":       g.ID,
			"record_count":   len(ids),
			"duration_hours": hours,
			"method":         string(method),
		},
		At: now,
	})

	return g, nil
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// normalizeRecordIDs descarta vacíos y duplicados conservando el orden.
func normalizeRecordIDs(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package shares

import (
	"context"
	"strings"

	"health-vault/internal/ports/audit"

	"go.uber.org/zap"
)

// Revoke marca el grant como revocado. Si no existe o no es del dueño no
// hace nada y no devuelve error: el llamador no distingue ambos casos.
func (s *Service) Revoke(ctx context.Context, grantID, ownerID string) error {
	grantID = strings.TrimSpace(grantID)
	ownerID = strings.TrimSpace(ownerID)
	if grantID == "" || ownerID == "" {
		return ErrInvalidInput
	}

	updated, err := s.repo.SetStatus(ctx, grantID, ownerID, StatusRevoked, s.now())
	if err != nil {
		return s.persistenceErr("revoke share", err,
			zap.String("grant_id", grantID),
			zap.String("owner_id", ownerID),
		)
	}

	if updated {
		s.record(ctx, audit.Entry{
			UserID:   ownerID,
			Action:   audit.ActionRevokeShare,
			Metadata: map[string]any{"grant_id": grantID},
		})
	}
	return nil
}

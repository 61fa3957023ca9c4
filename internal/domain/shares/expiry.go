package shares

import (
	"time"

	"github.com/dustin/go-humanize"
)

// IsUsable es la única regla de vigencia: status active y now < expires_at.
// El PIN se valida aparte.
func IsUsable(g Grant, now time.Time) bool {
	return g.Status == StatusActive && now.Before(g.ExpiresAt)
}

// EffectiveStatus es el status que ve un lector: un active vencido se
// muestra como expired aunque todavía no se haya persistido.
func EffectiveStatus(g Grant, now time.Time) Status {
	if g.Status == StatusActive && !IsUsable(g, now) {
		return StatusExpired
	}
	return g.Status
}

// RemainingLabel es el texto de cuenta regresiva ("45 minutes left").
func RemainingLabel(g Grant, now time.Time) string {
	switch EffectiveStatus(g, now) {
	case StatusRevoked:
		return "revoked"
	case StatusExpired:
		return "expired"
	}
	return humanize.RelTime(now, g.ExpiresAt, "left", "ago")
}

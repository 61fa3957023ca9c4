package shares

import "time"

// Method indica cómo se transmite el token (solo UX; no cambia la validación).
type Method string

const (
	MethodLink Method = "link"
	MethodCode Method = "code"
)

func (m Method) Valid() bool {
	return m == MethodLink || m == MethodCode
}

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// Grant es una autorización temporal, protegida por token + PIN,
// para leer un conjunto fijo de registros.
type Grant struct {
	ID string

	OwnerID string // paciente que comparte
	Method  Method

	Token string
	PIN   string

	RecordIDs []string

	ExpiresAt time.Time
	Status    Status

	// Primer acceso exitoso; se setea una sola vez.
	AccessedAt *time.Time
	AccessedBy *string

	CreatedAt time.Time
	RevokedAt *time.Time
}

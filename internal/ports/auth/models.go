package auth

// Role del usuario autenticado.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// ParseRole normaliza el rol; vacío o desconocido => "" (sin rol).
func ParseRole(s string) Role {
	switch Role(s) {
	case RolePatient, RoleDoctor:
		return Role(s)
	default:
		return ""
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}

func (c Claims) HasRole(r Role) bool {
	return c.UserID != "" && c.Role == r
}

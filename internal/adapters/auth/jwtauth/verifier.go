package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"health-vault/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrSecretMissing = errors.New("jwt secret not configured")
	ErrMissingUserID = errors.New("token missing subject")
	ErrUnknownRole   = errors.New("token has unknown role")
)

// Claims que emite el proveedor de identidad: sub = user id.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier con tokens HS256.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: strings.TrimSpace(issuer), leeway: 30 * time.Second}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrSecretMissing
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var c Claims
	if _, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) { return v.secret, nil }, opts...); err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	userID := strings.TrimSpace(c.Subject)
	if userID == "" {
		return auth.Claims{}, ErrMissingUserID
	}
	role := auth.ParseRole(strings.ToLower(strings.TrimSpace(c.Role)))
	if role == "" {
		return auth.Claims{}, ErrUnknownRole
	}

	return auth.Claims{UserID: userID, Email: strings.TrimSpace(c.Email), Role: role}, nil
}

// Sign emite un token; lo usan los tests y el tooling de dev.
func Sign(secret string, c auth.Claims, issuer string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrSecretMissing
	}
	claims := Claims{
		Role:  string(c.Role),
		Email: c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of JWT claims the client inspects for display.
// The signature is never verified locally — the service is the only authority
// on token validity, and a failed profile fetch is what invalidates a session.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// ParseClaims decodes the claims of a bearer token without verification.
func ParseClaims(token string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session: parse token: %w", err)
	}

	out := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// TokenExpiry returns the current token's expiry time. ok is false when no
// token is present or the token carries no usable expiry claim.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims, err := ParseClaims(token)
	if err != nil || claims.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return claims.ExpiresAt, true
}

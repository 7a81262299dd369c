package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default session token lifetime when no TTL is
// configured.
const DefaultTokenTTL = 1 * time.Hour

// Claims are the session token claims. The subject carries the user's CPF
// (the login key) and Roles carries the user's full role set at issue time.
type Claims struct {
	jwt.RegisteredClaims

	// Roles the subject held when the token was minted, e.g.
	// ["PASSENGER","DRIVER"]. Authorization middleware reads these.
	Roles []string `json:"roles,omitempty"`
}

// NewClaims builds minimally-correct claims for a session token.
func NewClaims(subject string, roles []string, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Roles: roles,
	}
}

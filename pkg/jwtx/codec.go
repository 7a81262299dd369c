package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrUnsupported = errors.New("jwtx: unsupported token")
)

// Reason classifies why a token failed verification. It exists for
// observability only; callers must not branch behaviour on it beyond logging.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonBadSignature Reason = "bad-signature"
	ReasonMalformed    Reason = "malformed"
	ReasonExpired      Reason = "expired"
	ReasonUnsupported  Reason = "unsupported"
	ReasonUnknown      Reason = "unknown"
)

// Verification is the outcome of Codec.Verify. Verification never carries an
// error: any failure collapses to Valid=false plus a log-only Reason.
type Verification struct {
	Valid  bool
	Reason Reason
}

// Codec mints and verifies HS256-signed session tokens. Issuer and verifier
// are the same process, so a symmetric MAC over a shared secret is enough;
// there is no key distribution problem to solve here.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewCodec builds a Codec from the configured signing secret, issuer tag and
// token time-to-live. A zero ttl falls back to DefaultTokenTTL.
func NewCodec(secret, issuer string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Mint signs a session token for the given subject (CPF) and role set.
func (c *Codec) Mint(subject string, roles []string) (string, error) {
	claims := NewClaims(subject, roles, c.issuer, c.ttl, time.Now().UTC())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return token, nil
}

// Verify checks the token's signature and expiry. It never returns an error:
// bad tokens yield Valid=false and a classified Reason for logging.
func (c *Codec) Verify(token string) Verification {
	if _, err := c.parse(token); err != nil {
		return Verification{Valid: false, Reason: classify(err)}
	}
	return Verification{Valid: true}
}

// Subject decodes the subject (CPF) claim WITHOUT verifying the signature or
// expiry. Callers must call Verify first whenever the value is trusted.
func (c *Codec) Subject(token string) (string, error) {
	claims, err := decodeUnverified(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Roles decodes the roles claim WITHOUT verifying the signature or expiry.
// Callers must call Verify first whenever the value is trusted.
func (c *Codec) Roles(token string) ([]string, error) {
	claims, err := decodeUnverified(token)
	if err != nil {
		return nil, err
	}
	return claims.Roles, nil
}

func (c *Codec) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: alg %q", ErrUnsupported, t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func decodeUnverified(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return claims, nil
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ReasonBadSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ReasonMalformed
	case errors.Is(err, ErrUnsupported), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ReasonUnsupported
	default:
		return ReasonUnknown
	}
}

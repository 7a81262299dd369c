package jwtx

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-which-is-long-enough"
	testIssuer = "corrida-identity"
)

func testCodec() *Codec {
	return NewCodec(testSecret, testIssuer, 15*time.Minute)
}

func TestMintAndVerify(t *testing.T) {
	t.Parallel()

	c := testCodec()

	token, err := c.Mint("111.111.111-11", []string{"PASSENGER"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	v := c.Verify(token)
	require.True(t, v.Valid)
	require.Equal(t, ReasonNone, v.Reason)

	sub, err := c.Subject(token)
	require.NoError(t, err)
	require.Equal(t, "111.111.111-11", sub)

	roles, err := c.Roles(token)
	require.NoError(t, err)
	require.Equal(t, []string{"PASSENGER"}, roles)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	c := testCodec()

	// Hand-craft a token that expired an hour ago using the same secret.
	claims := NewClaims("222.222.222-22", []string{"DRIVER"}, testIssuer, time.Hour, time.Now().UTC().Add(-2*time.Hour))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	v := c.Verify(token)
	require.False(t, v.Valid)
	require.Equal(t, ReasonExpired, v.Reason)

	// Decoding without verification still yields the subject.
	sub, err := c.Subject(token)
	require.NoError(t, err)
	require.Equal(t, "222.222.222-22", sub)
}

func TestVerifyTamperedPayload(t *testing.T) {
	t.Parallel()

	c := testCodec()

	token, err := c.Mint("111.111.111-11", []string{"PASSENGER"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	altered := strings.Replace(string(payload), "PASSENGER", "ADMIN", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(altered))

	v := c.Verify(strings.Join(parts, "."))
	require.False(t, v.Valid)
	require.Equal(t, ReasonBadSignature, v.Reason)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	other := NewCodec("a-completely-different-secret", testIssuer, 15*time.Minute)
	token, err := other.Mint("111.111.111-11", []string{"PASSENGER"})
	require.NoError(t, err)

	v := testCodec().Verify(token)
	require.False(t, v.Valid)
	require.Equal(t, ReasonBadSignature, v.Reason)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	c := testCodec()

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		v := c.Verify(token)
		require.False(t, v.Valid)
		require.Equal(t, ReasonMalformed, v.Reason)
	}
}

func TestVerifyUnsupportedAlgorithm(t *testing.T) {
	t.Parallel()

	c := testCodec()

	claims := NewClaims("111.111.111-11", nil, testIssuer, time.Hour, time.Now().UTC())
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	v := c.Verify(token)
	require.False(t, v.Valid)
	require.Equal(t, ReasonUnsupported, v.Reason)
}

func TestDecodeUnverifiedRejectsGarbage(t *testing.T) {
	t.Parallel()

	c := testCodec()

	_, err := c.Subject("not-a-token")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = c.Roles("not-a-token")
	require.ErrorIs(t, err, ErrMalformed)
}

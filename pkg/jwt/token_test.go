package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "conomy")

	token, err := svc.Issue("user-1", "a@example.com", "admin")
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "conomy", claims.Issuer)
}

func TestParseExpired(t *testing.T) {
	svc := NewTokenService("secret", time.Minute, "conomy")
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := svc.Issue("user-1", "a@example.com", "user")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParseRejectsForeignTokens(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "conomy")

	other := NewTokenService("other-secret", time.Hour, "conomy")
	token, err := other.Issue("user-1", "a@example.com", "user")
	require.NoError(t, err)
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalid)

	wrongIssuer := NewTokenService("secret", time.Hour, "someone-else")
	token, err = wrongIssuer.Issue("user-1", "a@example.com", "user")
	require.NoError(t, err)
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalid)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-1", "iss": "conomy"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalid)
}

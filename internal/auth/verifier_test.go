package auth_test

import (
	"testing"
	"time"

	"chatapp/backend/internal/auth"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifier_RoundTrip(t *testing.T) {
	v := auth.NewJWTVerifier("test-secret")

	token, err := v.Issue("alice", time.Hour)
	require.NoError(t, err)

	uid, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", uid)
}

func TestJWTVerifier_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewJWTVerifier("secret-a")
	verifier := auth.NewJWTVerifier("secret-b")

	token, err := issuer.Issue("alice", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTVerifier_RejectsExpiredToken(t *testing.T) {
	v := auth.NewJWTVerifier("test-secret")

	token, err := v.Issue("alice", -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTVerifier_RejectsMissingSubject(t *testing.T) {
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.NewJWTVerifier("test-secret").Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTVerifier_RejectsGarbage(t *testing.T) {
	_, err := auth.NewJWTVerifier("test-secret").Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

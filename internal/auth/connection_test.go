package auth_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"chatapp/backend/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVerifier is a testify mock of the auth.TokenVerifier interface.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func TestExtractToken_PrefersAuthorizationHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws?token=from-query", nil)
	r.Header.Set("Authorization", "Bearer from-header")
	r.Header.Set("X-Auth-Token", "from-secondary")

	assert.Equal(t, "from-header", auth.ExtractToken(r))
}

func TestExtractToken_FallsBackToQueryThenSecondaryHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws?token=from-query", nil)
	r.Header.Set("X-Auth-Token", "from-secondary")
	assert.Equal(t, "from-query", auth.ExtractToken(r))

	r = httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("X-Auth-Token", "from-secondary")
	assert.Equal(t, "from-secondary", auth.ExtractToken(r))

	r = httptest.NewRequest("GET", "/ws", nil)
	assert.Equal(t, "", auth.ExtractToken(r))
}

func TestExtractToken_IgnoresNonBearerAuthorization(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.Header.Set("X-Auth-Token", "from-secondary")

	assert.Equal(t, "from-secondary", auth.ExtractToken(r))
}

func TestAuthenticate_ValidCredential(t *testing.T) {
	verifier := new(MockVerifier)
	verifier.On("Verify", "good").Return("alice", nil)
	a := auth.NewConnectionAuthenticator(verifier)

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Bearer good")

	id, err := a.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.UserID)
	assert.True(t, id.Authenticated)
	assert.False(t, id.IsAnonymous())
}

func TestAuthenticate_InvalidCredentialIsRefused(t *testing.T) {
	verifier := new(MockVerifier)
	verifier.On("Verify", "bad").Return("", auth.ErrInvalidToken)
	a := auth.NewConnectionAuthenticator(verifier)

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Bearer bad")

	_, err := a.Authenticate(r)
	assert.ErrorIs(t, err, auth.ErrCredentialInvalid,
		"an invalid credential refuses the connection, it is never downgraded to anonymous")
}

func TestAuthenticate_AbsentCredentialAdmitsAnonymously(t *testing.T) {
	verifier := new(MockVerifier)
	a := auth.NewConnectionAuthenticator(verifier)

	r := httptest.NewRequest("GET", "/ws", nil)

	id, err := a.Authenticate(r)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id.UserID, auth.AnonymousPrefix))
	assert.False(t, id.Authenticated)
	verifier.AssertNotCalled(t, "Verify", mock.Anything)
}

func TestAuthenticate_AnonymousIdentitiesAreDistinct(t *testing.T) {
	a := auth.NewConnectionAuthenticator(new(MockVerifier))

	id1, err := a.Authenticate(httptest.NewRequest("GET", "/ws", nil))
	require.NoError(t, err)
	id2, err := a.Authenticate(httptest.NewRequest("GET", "/ws", nil))
	require.NoError(t, err)

	assert.NotEqual(t, id1.UserID, id2.UserID,
		"two credential-less connections must get distinct synthesized identities")
}

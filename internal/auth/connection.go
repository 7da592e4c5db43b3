package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Connection-time outcomes. An invalid credential refuses the
// connection; an absent credential admits it anonymously. These are
// distinct paths, not the same error.
var (
	ErrCredentialInvalid = errors.New("credential rejected by verifier")
)

// AnonymousPrefix starts every synthesized identity.
const AnonymousPrefix = "anonymous-"

// Identity is the result of authenticating one connection attempt.
type Identity struct {
	UserID        string
	Authenticated bool
}

// IsAnonymous reports whether id was synthesized rather than verified.
func (id Identity) IsAnonymous() bool { return !id.Authenticated }

// NewAnonymousID synthesizes a fresh anonymous identity. Distinct per
// call, so two credential-less connections never share an identity.
func NewAnonymousID() string {
	return AnonymousPrefix + uuid.New().String()
}

// ExtractToken pulls the bearer credential from a connection request:
// Authorization header first, then the token query parameter, then the
// X-Auth-Token header. First non-empty wins.
func ExtractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	return r.Header.Get("X-Auth-Token")
}

// ConnectionAuthenticator decides, per connection attempt, the identity
// the session is bound to before the connection is admitted.
type ConnectionAuthenticator struct {
	Verifier TokenVerifier
}

func NewConnectionAuthenticator(v TokenVerifier) *ConnectionAuthenticator {
	return &ConnectionAuthenticator{Verifier: v}
}

// Authenticate resolves the request's credential.
//
//   - credential present and valid: verified identity, admitted
//   - credential present and invalid: ErrCredentialInvalid, refused
//   - no credential: synthesized anonymous identity, admitted
func (a *ConnectionAuthenticator) Authenticate(r *http.Request) (Identity, error) {
	token := ExtractToken(r)
	if token == "" {
		id := Identity{UserID: NewAnonymousID(), Authenticated: false}
		log.Printf("No connection token, assigning anonymous ID %s", id.UserID)
		return id, nil
	}

	uid, err := a.Verifier.Verify(token)
	if err != nil {
		log.Printf("Invalid connection token: %v", err)
		return Identity{}, ErrCredentialInvalid
	}

	log.Printf("Connection authenticated for user: %s", uid)
	return Identity{UserID: uid, Authenticated: true}, nil
}

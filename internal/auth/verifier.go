package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenVerifier checks a bearer credential with the identity provider
// and returns the verified identity.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

var ErrInvalidToken = errors.New("invalid or expired token")

// JWTVerifier verifies HS256 tokens issued by the identity service. The
// verified identity is the "sub" claim.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// Issue creates a token for uid, signed with the same secret the
// verifier checks. Used by the ops tool to mint development tokens.
func (v *JWTVerifier) Issue(uid string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": uid,
		"exp": time.Now().Add(ttl).Unix(),
		"iss": "chatapp-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

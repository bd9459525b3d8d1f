package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hdcasedi/competenceo/internal/models"
)

// ErrInvalidSession covers every decode failure. Expired, tampered and
// plain garbage tokens are indistinguishable to callers.
var ErrInvalidSession = errors.New("invalid session")

type SessionClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a stateless session token for the given identity. The role
// is embedded at issue time and stays fixed for the token's lifetime; a
// promotion takes effect only after re-authentication.
func Issue(secret []byte, userID string, role models.Role, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func Decode(tokenStr string, secret []byte) (*SessionClaims, error) {
	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidSession
	}
	return &claims, nil
}

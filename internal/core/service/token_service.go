package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/staffdesk/attendance-system/internal/core/domain"
)

// TokenService signs and verifies HS256 identity tokens. Signing is stateless:
// any node holding the secret can verify independently, and rotating the
// secret invalidates every outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token embedding the user id, expiring ttl from now.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify validates signature and expiry and returns the embedded user id.
// The error taxonomy is strict: an expired but correctly signed token is
// ErrTokenExpired, never ErrTokenSignatureInvalid.
func (s *TokenService) Verify(raw string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", domain.ErrTokenSignatureInvalid
		default:
			return "", domain.ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return "", domain.ErrTokenSignatureInvalid
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", domain.ErrTokenMalformed
	}
	return id, nil
}

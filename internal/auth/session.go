// Package auth issues and validates the session cookie guarding the
// HTTP surface. Sessions are stateless HS256 tokens; there is no user
// database, just the one configured password.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie the middleware looks for.
const CookieName = "tracker_session"

// SessionDuration is how long an issued session stays valid.
const SessionDuration = 30 * 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session")

// Sessions signs and checks session tokens with a shared secret.
type Sessions struct {
	secret []byte
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret)}
}

// Issue creates a signed session token.
func (s *Sessions) Issue() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    "boardgame-tracker",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks a session token's signature and expiry.
func (s *Sessions) Validate(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return ErrInvalidSession
	}
	if !token.Valid {
		return ErrInvalidSession
	}
	return nil
}

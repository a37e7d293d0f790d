// Package session issues and verifies signed admin session tokens.
// A session is the explicit authorization context every store mutation
// requires; there is no ambient admin state.
package session

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("session token expired")
	ErrTokenInvalid = errors.New("session token invalid")
)

// Claims are the JWT claims carried by an admin session token.
type Claims struct {
	SessionID string `json:"session_id"`
	jwtv5.RegisteredClaims
}

// Session is a verified admin session.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
}

// Manager signs and verifies session tokens with an HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session manager. The secret must be non-empty;
// the TTL bounds how long an admin login stays valid.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a new signed session.
func (m *Manager) Issue() (*Session, error) {
	now := time.Now()
	id := uuid.New().String()

	claims := Claims{
		SessionID: id,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.ttl)),
			Issuer:    "personnel-portal",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, err
	}

	return &Session{ID: id, Token: signed, ExpiresAt: now.Add(m.ttl)}, nil
}

// Verify parses a token string and returns the session it represents.
func (m *Manager) Verify(tokenString string) (*Session, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return &Session{
		ID:        claims.SessionID,
		Token:     tokenString,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Package token issues and verifies the bearer tokens handed out at login.
// A token only identifies the user; the role is looked up on every request.
package token

import (
	"errors"
	"fmt"
	"time"

	"steelorders/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

const issuer = "steelorders"

var (
	ErrSecretIsRequired = errors.New("token secret is required")
	ErrInvalidToken     = errors.New("invalid token")
)

// Manager signs HS256 tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue returns a signed token for userID and its expiry.
func (m *Manager) Issue(userID kernel.UUID, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature and expiry and returns the user id. Every failure
// is reported as ErrInvalidToken.
func (m *Manager) Parse(tokenString string) (kernel.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return userID, nil
}

// Package token issues and verifies the JWTs used for bearer authentication.
package token

import (
	"fmt"
	"time"

	"catalog-service/internal/apperror"

	"github.com/golang-jwt/jwt/v5"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

type Claims struct {
	UserID    string `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type Manager struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	now        func() time.Time
}

func NewManager(accessKey, refreshKey []byte, accessTTL time.Duration) *Manager {
	return &Manager{
		accessKey:  accessKey,
		refreshKey: refreshKey,
		accessTTL:  accessTTL,
		now:        time.Now,
	}
}

func (m *Manager) GenerateAccessToken(userID string) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID:    userID,
		TokenType: typeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessKey)
}

// GenerateRefreshToken signs a token without expiry; revocation goes through the
// authentications table.
func (m *Manager) GenerateRefreshToken(userID string) (string, error) {
	claims := &Claims{
		UserID:    userID,
		TokenType: typeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(m.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshKey)
}

// ParseAccessToken returns the user id of a valid, unexpired access token.
func (m *Manager) ParseAccessToken(raw string) (string, error) {
	claims, err := m.parse(raw, m.accessKey, typeAccess)
	if err != nil {
		return "", apperror.Authentication("invalid access token").Wrap(err)
	}
	return claims.UserID, nil
}

// VerifyRefreshToken checks the signature of a refresh token and returns its user id.
func (m *Manager) VerifyRefreshToken(raw string) (string, error) {
	claims, err := m.parse(raw, m.refreshKey, typeRefresh)
	if err != nil {
		return "", apperror.Invariant("refresh token is invalid").Wrap(err)
	}
	return claims.UserID, nil
}

func (m *Manager) parse(raw string, key []byte, wantType string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !tok.Valid || claims.TokenType != wantType || claims.UserID == "" {
		return nil, fmt.Errorf("token: unexpected %q token", claims.TokenType)
	}
	return claims, nil
}

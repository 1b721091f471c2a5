package store

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/apperror"

	"github.com/jackc/pgx/v5"
)

// AuthenticationsStore keeps the refresh tokens that are still valid.
type AuthenticationsStore struct {
	db DB
}

func NewAuthenticationsStore(db DB) *AuthenticationsStore {
	return &AuthenticationsStore{db: db}
}

func (s *AuthenticationsStore) AddRefreshToken(ctx context.Context, token string) error {
	if _, err := s.db.Exec(ctx, `INSERT INTO authentications (token) VALUES ($1)`, token); err != nil {
		return fmt.Errorf("authentications: insert: %w", err)
	}
	return nil
}

func (s *AuthenticationsStore) VerifyRefreshToken(ctx context.Context, token string) error {
	var found string
	err := s.db.QueryRow(ctx, `SELECT token FROM authentications WHERE token = $1`, token).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.Invariant("refresh token is invalid")
	}
	if err != nil {
		return fmt.Errorf("authentications: verify: %w", err)
	}
	return nil
}

func (s *AuthenticationsStore) DeleteRefreshToken(ctx context.Context, token string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM authentications WHERE token = $1`, token); err != nil {
		return fmt.Errorf("authentications: delete: %w", err)
	}
	return nil
}

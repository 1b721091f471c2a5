package store

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/apperror"

	"github.com/jackc/pgx/v5"
)

type CollaborationsStore struct {
	db DB
}

func NewCollaborationsStore(db DB) *CollaborationsStore {
	return &CollaborationsStore{db: db}
}

func (s *CollaborationsStore) AddCollaboration(ctx context.Context, playlistID, userID string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, newID("collab"), playlistID, userID).Scan(&id)
	if isUniqueViolation(err) || isForeignKeyViolation(err) {
		return "", apperror.Invariant("failed to add collaboration").Wrap(err)
	}
	if err != nil {
		return "", fmt.Errorf("collaborations: insert: %w", err)
	}
	return id, nil
}

func (s *CollaborationsStore) DeleteCollaboration(ctx context.Context, playlistID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	if err != nil {
		return fmt.Errorf("collaborations: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.Invariant("failed to delete collaboration")
	}
	return nil
}

// VerifyCollaborator fails with an Invariant error when no grant exists.
func (s *CollaborationsStore) VerifyCollaborator(ctx context.Context, playlistID, userID string) error {
	var id string
	err := s.db.QueryRow(ctx, `
		SELECT id FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.Invariant("failed to verify collaboration")
	}
	if err != nil {
		return fmt.Errorf("collaborations: verify: %w", err)
	}
	return nil
}

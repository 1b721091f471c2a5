package store

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/apperror"

	"github.com/jackc/pgx/v5"
)

// AccessDecision is the outcome of CheckPlaylistAccess. When Granted is false,
// Reason holds the ownership error the caller should report.
type AccessDecision struct {
	Granted bool
	Reason  error
}

func granted() AccessDecision { return AccessDecision{Granted: true} }

func denied(reason error) AccessDecision { return AccessDecision{Reason: reason} }

func (s *PlaylistsStore) VerifyPlaylistOwner(ctx context.Context, playlistID, userID string) error {
	var owner string
	err := s.db.QueryRow(ctx, `SELECT owner FROM playlists WHERE id = $1`, playlistID).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound(msgPlaylistNotFound)
	}
	if err != nil {
		return fmt.Errorf("playlists: owner lookup: %w", err)
	}
	if owner != userID {
		return apperror.Authorization(msgNotEntitled)
	}
	return nil
}

// CheckPlaylistAccess grants owners and collaborators. A missing playlist or a
// failed owner lookup is returned as err. A non-owner who is not a collaborator is
// denied with the ownership error, whatever the collaboration check returned.
func (s *PlaylistsStore) CheckPlaylistAccess(ctx context.Context, playlistID, userID string) (AccessDecision, error) {
	ownerErr := s.VerifyPlaylistOwner(ctx, playlistID, userID)
	if ownerErr == nil {
		return granted(), nil
	}
	if !apperror.IsAuthorization(ownerErr) {
		return AccessDecision{}, ownerErr
	}

	if s.collaborators == nil {
		return denied(ownerErr), nil
	}
	if err := s.collaborators.VerifyCollaborator(ctx, playlistID, userID); err != nil {
		if !apperror.IsInvariant(err) {
			s.logger.Warn("collaboration check failed", "playlist", playlistID, "user", userID, "err", err)
		}
		return denied(ownerErr), nil
	}
	return granted(), nil
}

// VerifyPlaylistAccess is CheckPlaylistAccess folded into a single error.
func (s *PlaylistsStore) VerifyPlaylistAccess(ctx context.Context, playlistID, userID string) error {
	decision, err := s.CheckPlaylistAccess(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	if !decision.Granted {
		return decision.Reason
	}
	return nil
}

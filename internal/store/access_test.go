package store

import (
	"context"
	"errors"
	"testing"

	"catalog-service/internal/apperror"
	"catalog-service/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCollaborators struct {
	err   error
	calls int
}

func (s *stubCollaborators) VerifyCollaborator(context.Context, string, string) error {
	s.calls++
	return s.err
}

func expectOwner(mock pgxmock.PgxPoolIface, playlistID, owner string) {
	mock.ExpectQuery("SELECT owner FROM playlists").
		WithArgs(playlistID).
		WillReturnRows(pgxmock.NewRows([]string{"owner"}).AddRow(owner))
}

func TestVerifyPlaylistAccess_OwnerSkipsCollaborationCheck(t *testing.T) {
	mock := newMock(t)
	collab := &stubCollaborators{err: errors.New("must not be called")}
	s := NewPlaylistsStore(mock, collab, logging.Discard())

	expectOwner(mock, "playlist-abc", "user-1")

	require.NoError(t, s.VerifyPlaylistAccess(context.Background(), "playlist-abc", "user-1"))
	assert.Zero(t, collab.calls)
}

func TestVerifyPlaylistAccess_Collaborator(t *testing.T) {
	mock := newMock(t)
	s := NewPlaylistsStore(mock, NewCollaborationsStore(mock), logging.Discard())

	expectOwner(mock, "playlist-abc", "user-1")
	mock.ExpectQuery("SELECT id FROM collaborations").
		WithArgs("playlist-abc", "user-2").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("collab-1"))

	decision, err := s.CheckPlaylistAccess(context.Background(), "playlist-abc", "user-2")
	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.NoError(t, decision.Reason)
}

func TestVerifyPlaylistAccess_StrangerGetsOwnerError(t *testing.T) {
	mock := newMock(t)
	s := NewPlaylistsStore(mock, NewCollaborationsStore(mock), logging.Discard())

	expectOwner(mock, "playlist-abc", "user-1")
	mock.ExpectQuery("SELECT id FROM collaborations").
		WithArgs("playlist-abc", "user-2").
		WillReturnError(pgx.ErrNoRows)

	err := s.VerifyPlaylistAccess(context.Background(), "playlist-abc", "user-2")
	require.Error(t, err)
	assert.True(t, apperror.IsAuthorization(err))
	assert.Equal(t, "you are not entitled to access this resource", err.Error())
}

func TestVerifyPlaylistAccess_CollaborationQueryFailureKeepsOwnerError(t *testing.T) {
	mock := newMock(t)
	collab := &stubCollaborators{err: errors.New("connection refused")}
	s := NewPlaylistsStore(mock, collab, logging.Discard())

	expectOwner(mock, "playlist-abc", "user-1")

	decision, err := s.CheckPlaylistAccess(context.Background(), "playlist-abc", "user-2")
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	require.Error(t, decision.Reason)
	assert.Equal(t, "you are not entitled to access this resource", decision.Reason.Error())
	assert.True(t, apperror.IsAuthorization(decision.Reason))
	assert.Equal(t, 1, collab.calls)
}

func TestVerifyPlaylistAccess_MissingPlaylistIsNotMasked(t *testing.T) {
	mock := newMock(t)
	collab := &stubCollaborators{}
	s := NewPlaylistsStore(mock, collab, logging.Discard())

	mock.ExpectQuery("SELECT owner FROM playlists").
		WithArgs("playlist-x").
		WillReturnError(pgx.ErrNoRows)

	err := s.VerifyPlaylistAccess(context.Background(), "playlist-x", "user-2")
	assert.True(t, apperror.IsNotFound(err))
	assert.Zero(t, collab.calls)
}

func TestVerifyPlaylistOwner_NonOwner(t *testing.T) {
	mock := newMock(t)
	s := NewPlaylistsStore(mock, nil, logging.Discard())

	expectOwner(mock, "playlist-abc", "user-1")

	err := s.VerifyPlaylistOwner(context.Background(), "playlist-abc", "user-2")
	assert.True(t, apperror.IsAuthorization(err))
}

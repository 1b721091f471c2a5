package store

import (
	"context"
	"testing"

	"catalog-service/internal/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollaborationsStore(t *testing.T) {
	mock := newMock(t)
	s := NewCollaborationsStore(mock)
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO collaborations").
		WithArgs(pgxmock.AnyArg(), "playlist-abc", "user-2").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("collab-1"))
	id, err := s.AddCollaboration(ctx, "playlist-abc", "user-2")
	require.NoError(t, err)
	assert.Equal(t, "collab-1", id)

	mock.ExpectQuery("INSERT INTO collaborations").
		WithArgs(pgxmock.AnyArg(), "playlist-abc", "user-2").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
	_, err = s.AddCollaboration(ctx, "playlist-abc", "user-2")
	assert.True(t, apperror.IsInvariant(err))

	mock.ExpectExec("DELETE FROM collaborations").
		WithArgs("playlist-abc", "user-2").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, s.DeleteCollaboration(ctx, "playlist-abc", "user-2"))

	mock.ExpectExec("DELETE FROM collaborations").
		WithArgs("playlist-abc", "user-2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.True(t, apperror.IsInvariant(s.DeleteCollaboration(ctx, "playlist-abc", "user-2")))

	mock.ExpectQuery("SELECT id FROM collaborations").
		WithArgs("playlist-abc", "user-2").
		WillReturnError(pgx.ErrNoRows)
	assert.True(t, apperror.IsInvariant(s.VerifyCollaborator(ctx, "playlist-abc", "user-2")))
}

package catalog

import (
	"context"

	"catalog-service/internal/store"

	"github.com/stretchr/testify/mock"
)

var anyCtx = mock.Anything

type MockSongs struct {
	mock.Mock
}

func (m *MockSongs) AddSong(ctx context.Context, in store.SongInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockSongs) GetSongs(ctx context.Context, f store.SongFilter) ([]store.SongSummary, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]store.SongSummary), args.Error(1)
}

func (m *MockSongs) GetSongByID(ctx context.Context, id string) (store.Song, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.Song), args.Error(1)
}

func (m *MockSongs) EditSongByID(ctx context.Context, id string, in store.SongInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockSongs) DeleteSongByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAlbums struct {
	mock.Mock
}

func (m *MockAlbums) AddAlbum(ctx context.Context, in store.AlbumInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockAlbums) GetAlbumByID(ctx context.Context, id string) (store.Album, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.Album), args.Error(1)
}

func (m *MockAlbums) EditAlbumByID(ctx context.Context, id string, in store.AlbumInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockAlbums) DeleteAlbumByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAlbums) EditAlbumCoverByID(ctx context.Context, id, coverURL string) error {
	return m.Called(ctx, id, coverURL).Error(0)
}

func (m *MockAlbums) LikeAlbum(ctx context.Context, albumID, userID string) error {
	return m.Called(ctx, albumID, userID).Error(0)
}

func (m *MockAlbums) UnlikeAlbum(ctx context.Context, albumID, userID string) error {
	return m.Called(ctx, albumID, userID).Error(0)
}

func (m *MockAlbums) GetAlbumLikes(ctx context.Context, albumID string) (int, bool, error) {
	args := m.Called(ctx, albumID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

type MockPlaylists struct {
	mock.Mock
}

func (m *MockPlaylists) AddPlaylist(ctx context.Context, name, owner string) (string, error) {
	args := m.Called(ctx, name, owner)
	return args.String(0), args.Error(1)
}

func (m *MockPlaylists) GetPlaylists(ctx context.Context, userID string) ([]store.PlaylistSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]store.PlaylistSummary), args.Error(1)
}

func (m *MockPlaylists) DeletePlaylistByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlaylists) VerifyPlaylistOwner(ctx context.Context, playlistID, userID string) error {
	return m.Called(ctx, playlistID, userID).Error(0)
}

func (m *MockPlaylists) VerifyPlaylistAccess(ctx context.Context, playlistID, userID string) error {
	return m.Called(ctx, playlistID, userID).Error(0)
}

func (m *MockPlaylists) CheckSong(ctx context.Context, songID string) error {
	return m.Called(ctx, songID).Error(0)
}

func (m *MockPlaylists) AddPlaylistSong(ctx context.Context, playlistID, songID string) (string, error) {
	args := m.Called(ctx, playlistID, songID)
	return args.String(0), args.Error(1)
}

func (m *MockPlaylists) GetPlaylistSongByID(ctx context.Context, playlistID string) (store.PlaylistWithSongs, error) {
	args := m.Called(ctx, playlistID)
	return args.Get(0).(store.PlaylistWithSongs), args.Error(1)
}

func (m *MockPlaylists) DeletePlaylistSong(ctx context.Context, playlistID, songID string) error {
	return m.Called(ctx, playlistID, songID).Error(0)
}

func (m *MockPlaylists) AddPlaylistActivity(ctx context.Context, playlistID, songID, userID string, action store.Action) (store.ActivityRecord, error) {
	args := m.Called(ctx, playlistID, songID, userID, action)
	return args.Get(0).(store.ActivityRecord), args.Error(1)
}

func (m *MockPlaylists) GetPlaylistActivities(ctx context.Context, playlistID string) (store.PlaylistActivities, error) {
	args := m.Called(ctx, playlistID)
	return args.Get(0).(store.PlaylistActivities), args.Error(1)
}

type MockCollaborations struct {
	mock.Mock
}

func (m *MockCollaborations) AddCollaboration(ctx context.Context, playlistID, userID string) (string, error) {
	args := m.Called(ctx, playlistID, userID)
	return args.String(0), args.Error(1)
}

func (m *MockCollaborations) DeleteCollaboration(ctx context.Context, playlistID, userID string) error {
	return m.Called(ctx, playlistID, userID).Error(0)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) AddUser(ctx context.Context, in store.UserInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockUsers) GetUserByID(ctx context.Context, id string) (store.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.User), args.Error(1)
}

func (m *MockUsers) VerifyUserCredential(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockUsers) GetUsersByUsername(ctx context.Context, query string) ([]store.User, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]store.User), args.Error(1)
}

type MockAuthentications struct {
	mock.Mock
}

func (m *MockAuthentications) AddRefreshToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthentications) VerifyRefreshToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthentications) DeleteRefreshToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

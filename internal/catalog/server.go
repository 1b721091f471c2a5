// Package catalog exposes the music catalog over HTTP.
package catalog

import (
	"context"
	"io"
	"net/http"

	"catalog-service/internal/storage"
	"catalog-service/internal/store"
	"catalog-service/internal/token"
	"catalog-service/internal/validator"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type SongService interface {
	AddSong(ctx context.Context, in store.SongInput) (string, error)
	GetSongs(ctx context.Context, f store.SongFilter) ([]store.SongSummary, error)
	GetSongByID(ctx context.Context, id string) (store.Song, error)
	EditSongByID(ctx context.Context, id string, in store.SongInput) error
	DeleteSongByID(ctx context.Context, id string) error
}

type AlbumService interface {
	AddAlbum(ctx context.Context, in store.AlbumInput) (string, error)
	GetAlbumByID(ctx context.Context, id string) (store.Album, error)
	EditAlbumByID(ctx context.Context, id string, in store.AlbumInput) error
	DeleteAlbumByID(ctx context.Context, id string) error
	EditAlbumCoverByID(ctx context.Context, id, coverURL string) error
	LikeAlbum(ctx context.Context, albumID, userID string) error
	UnlikeAlbum(ctx context.Context, albumID, userID string) error
	GetAlbumLikes(ctx context.Context, albumID string) (int, bool, error)
}

type PlaylistService interface {
	AddPlaylist(ctx context.Context, name, owner string) (string, error)
	GetPlaylists(ctx context.Context, userID string) ([]store.PlaylistSummary, error)
	DeletePlaylistByID(ctx context.Context, id string) error
	VerifyPlaylistOwner(ctx context.Context, playlistID, userID string) error
	VerifyPlaylistAccess(ctx context.Context, playlistID, userID string) error
	CheckSong(ctx context.Context, songID string) error
	AddPlaylistSong(ctx context.Context, playlistID, songID string) (string, error)
	GetPlaylistSongByID(ctx context.Context, playlistID string) (store.PlaylistWithSongs, error)
	DeletePlaylistSong(ctx context.Context, playlistID, songID string) error
	AddPlaylistActivity(ctx context.Context, playlistID, songID, userID string, action store.Action) (store.ActivityRecord, error)
	GetPlaylistActivities(ctx context.Context, playlistID string) (store.PlaylistActivities, error)
}

type CollaborationService interface {
	AddCollaboration(ctx context.Context, playlistID, userID string) (string, error)
	DeleteCollaboration(ctx context.Context, playlistID, userID string) error
}

type UserService interface {
	AddUser(ctx context.Context, in store.UserInput) (string, error)
	GetUserByID(ctx context.Context, id string) (store.User, error)
	VerifyUserCredential(ctx context.Context, username, password string) (string, error)
	GetUsersByUsername(ctx context.Context, query string) ([]store.User, error)
}

type AuthenticationService interface {
	AddRefreshToken(ctx context.Context, token string) error
	VerifyRefreshToken(ctx context.Context, token string) error
	DeleteRefreshToken(ctx context.Context, token string) error
}

// CoverStorage persists uploaded album covers.
type CoverStorage interface {
	WriteFile(r io.Reader, originalName string) (string, error)
	URL(filename string) string
	Remove(filename string) error
	Dir() string
}

// Deps bundles everything a Server needs. Redis is optional; without it activity
// events are not published and the live feed is unavailable.
type Deps struct {
	Songs           SongService
	Albums          AlbumService
	Playlists       PlaylistService
	Collaborations  CollaborationService
	Users           UserService
	Authentications AuthenticationService

	Validator *validator.Validator
	Tokens    *token.Manager
	Covers    CoverStorage
	Redis     *redis.Client
	Logger    *log.Logger
}

type Server struct {
	songs           SongService
	albums          AlbumService
	playlists       PlaylistService
	collaborations  CollaborationService
	users           UserService
	authentications AuthenticationService

	validator *validator.Validator
	tokens    *token.Manager
	covers    CoverStorage
	rdb       *redis.Client
	logger    *log.Logger
}

func NewServer(d Deps) *Server {
	return &Server{
		songs:           d.Songs,
		albums:          d.Albums,
		playlists:       d.Playlists,
		collaborations:  d.Collaborations,
		users:           d.Users,
		authentications: d.Authentications,
		validator:       d.Validator,
		tokens:          d.Tokens,
		covers:          d.Covers,
		rdb:             d.Redis,
		logger:          d.Logger,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)

	r.Post("/users", s.handlePostUser)
	r.Get("/users", s.handleSearchUsers)
	r.Get("/users/{id}", s.handleGetUser)

	r.Post("/authentications", s.handlePostAuthentication)
	r.Put("/authentications", s.handlePutAuthentication)
	r.Delete("/authentications", s.handleDeleteAuthentication)

	r.Post("/songs", s.handlePostSong)
	r.Get("/songs", s.handleGetSongs)
	r.Get("/songs/{id}", s.handleGetSong)
	r.Put("/songs/{id}", s.handlePutSong)
	r.Delete("/songs/{id}", s.handleDeleteSong)

	r.Post("/albums", s.handlePostAlbum)
	r.Get("/albums/{id}", s.handleGetAlbum)
	r.Put("/albums/{id}", s.handlePutAlbum)
	r.Delete("/albums/{id}", s.handleDeleteAlbum)
	r.Post("/albums/{id}/covers", s.handlePostCover)
	r.Get("/albums/{id}/likes", s.handleGetAlbumLikes)

	if s.covers != nil {
		r.Handle(storage.URLPrefix+"*", http.StripPrefix(storage.URLPrefix, http.FileServer(http.Dir(s.covers.Dir()))))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Post("/albums/{id}/likes", s.handlePostAlbumLike)
		r.Delete("/albums/{id}/likes", s.handleDeleteAlbumLike)

		r.Post("/playlists", s.handlePostPlaylist)
		r.Get("/playlists", s.handleGetPlaylists)
		r.Delete("/playlists/{id}", s.handleDeletePlaylist)

		r.Post("/playlists/{id}/songs", s.handlePostPlaylistSong)
		r.Get("/playlists/{id}/songs", s.handleGetPlaylistSongs)
		r.Delete("/playlists/{id}/songs", s.handleDeletePlaylistSong)

		r.Get("/playlists/{id}/activities", s.handleGetPlaylistActivities)
		r.Get("/playlists/{id}/activities/live", s.handleLiveActivities)

		r.Post("/collaborations", s.handlePostCollaboration)
		r.Delete("/collaborations", s.handleDeleteCollaboration)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "catalog-service",
	})
}

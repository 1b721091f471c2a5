package catalog

import (
	"net/http"
	"strings"

	"catalog-service/internal/store"
	"catalog-service/internal/validator"

	"github.com/go-chi/chi/v5"
)

const defaultPlaylistName = "unnamed"

func (s *Server) handlePostPlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var p validator.PlaylistPayload
	if err := decodeJSON(r, &p); err != nil {
		s.writeFail(w, r, err)
		return
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = defaultPlaylistName
	}
	if err := s.validator.ValidatePlaylistPayload(p); err != nil {
		s.writeFail(w, r, err)
		return
	}

	playlistID, err := s.playlists.AddPlaylist(r.Context(), p.Name, userID)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Playlist added successfully", map[string]any{
		"playlistId": playlistID,
	})
}

func (s *Server) handleGetPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	playlists, err := s.playlists.GetPlaylists(r.Context(), userID)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"playlists": playlists})
}

// DELETE /playlists/{id} is reserved to the owner.
func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	playlistID := chi.URLParam(r, "id")

	if err := s.playlists.VerifyPlaylistOwner(ctx, playlistID, userID); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.playlists.DeletePlaylistByID(ctx, playlistID); err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Playlist deleted successfully", nil)
}

func (s *Server) decodePlaylistSong(r *http.Request) (string, error) {
	var p validator.PlaylistSongPayload
	if err := decodeJSON(r, &p); err != nil {
		return "", err
	}
	if err := s.validator.ValidatePlaylistSongPayload(p); err != nil {
		return "", err
	}
	return p.SongID, nil
}

func (s *Server) handlePostPlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	playlistID := chi.URLParam(r, "id")

	songID, err := s.decodePlaylistSong(r)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.playlists.VerifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.playlists.CheckSong(ctx, songID); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if _, err := s.playlists.AddPlaylistSong(ctx, playlistID, songID); err != nil {
		s.writeFail(w, r, err)
		return
	}

	rec, err := s.playlists.AddPlaylistActivity(ctx, playlistID, songID, userID, store.ActionAdd)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}
	s.publishActivity(ctx, rec)

	writeSuccess(w, http.StatusCreated, "Song added to playlist", nil)
}

func (s *Server) handleGetPlaylistSongs(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	playlistID := chi.URLParam(r, "id")

	if err := s.playlists.VerifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		s.writeFail(w, r, err)
		return
	}

	playlist, err := s.playlists.GetPlaylistSongByID(ctx, playlistID)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"playlist": playlist})
}

func (s *Server) handleDeletePlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	playlistID := chi.URLParam(r, "id")

	songID, err := s.decodePlaylistSong(r)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.playlists.VerifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.playlists.DeletePlaylistSong(ctx, playlistID, songID); err != nil {
		s.writeFail(w, r, err)
		return
	}

	rec, err := s.playlists.AddPlaylistActivity(ctx, playlistID, songID, userID, store.ActionDelete)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}
	s.publishActivity(ctx, rec)

	writeSuccess(w, http.StatusOK, "Song removed from playlist", nil)
}

func (s *Server) handleGetPlaylistActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	playlistID := chi.URLParam(r, "id")

	if err := s.playlists.VerifyPlaylistAccess(ctx, playlistID, userID); err != nil {
		s.writeFail(w, r, err)
		return
	}

	activities, err := s.playlists.GetPlaylistActivities(ctx, playlistID)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", activities)
}

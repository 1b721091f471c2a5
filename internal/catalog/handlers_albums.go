package catalog

import (
	"net/http"

	"catalog-service/internal/store"
	"catalog-service/internal/validator"

	"github.com/go-chi/chi/v5"
)

func (s *Server) decodeAlbum(r *http.Request) (store.AlbumInput, error) {
	var p validator.AlbumPayload
	if err := decodeJSON(r, &p); err != nil {
		return store.AlbumInput{}, err
	}
	if err := s.validator.ValidateAlbumPayload(p); err != nil {
		return store.AlbumInput{}, err
	}
	return store.AlbumInput{Name: p.Name, Year: p.Year}, nil
}

func (s *Server) handlePostAlbum(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeAlbum(r)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	albumID, err := s.albums.AddAlbum(r.Context(), in)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Album added successfully", map[string]any{
		"albumId": albumID,
	})
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	album, err := s.albums.GetAlbumByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"album": album})
}

func (s *Server) handlePutAlbum(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeAlbum(r)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	if err := s.albums.EditAlbumByID(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Album updated successfully", nil)
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if err := s.albums.DeleteAlbumByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Album deleted successfully", nil)
}

func (s *Server) handlePostAlbumLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.albums.LikeAlbum(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Album liked", nil)
}

func (s *Server) handleDeleteAlbumLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.albums.UnlikeAlbum(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Album unliked", nil)
}

func (s *Server) handleGetAlbumLikes(w http.ResponseWriter, r *http.Request) {
	likes, fromCache, err := s.albums.GetAlbumLikes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	if fromCache {
		w.Header().Set("X-Data-Source", "cache")
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"likes": likes})
}

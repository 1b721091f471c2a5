package catalog

import (
	"errors"
	"net/http"

	"catalog-service/internal/apperror"
	"catalog-service/internal/storage"

	"github.com/go-chi/chi/v5"
)

const maxCoverBytes = 512000

// POST /albums/{id}/covers stores a multipart "cover" image and links it to the album.
func (s *Server) handlePostCover(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "id")

	if r.ContentLength > maxCoverBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxCoverBytes)

	if err := r.ParseMultipartForm(maxCoverBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeFail(w, r, err)
			return
		}
		s.writeFail(w, r, apperror.Validation("invalid multipart form").Wrap(err))
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		s.writeFail(w, r, apperror.Validation(`"cover" is required`).Wrap(err))
		return
	}
	defer file.Close()

	if err := s.validator.ValidateImageHeaders(header.Header.Get("Content-Type")); err != nil {
		s.writeFail(w, r, err)
		return
	}

	filename, err := s.covers.WriteFile(file, header.Filename)
	if errors.Is(err, storage.ErrNotImage) {
		s.writeFail(w, r, apperror.Validation("file content is not a supported image").Wrap(err))
		return
	}
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	coverURL := s.covers.URL(filename)
	if err := s.albums.EditAlbumCoverByID(r.Context(), albumID, coverURL); err != nil {
		if rmErr := s.covers.Remove(filename); rmErr != nil {
			s.logger.Warn("remove orphaned cover", "file", filename, "err", rmErr)
		}
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Cover uploaded successfully", map[string]any{
		"coverUrl": coverURL,
	})
}

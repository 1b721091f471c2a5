package catalog

import (
	"net/http"

	"catalog-service/internal/store"
	"catalog-service/internal/validator"

	"github.com/go-chi/chi/v5"
)

func songInput(p validator.SongPayload) store.SongInput {
	return store.SongInput{
		Title:     p.Title,
		Year:      p.Year,
		Performer: p.Performer,
		Genre:     p.Genre,
		Duration:  p.Duration,
		AlbumID:   p.AlbumID,
	}
}

func (s *Server) decodeSong(r *http.Request) (store.SongInput, error) {
	var p validator.SongPayload
	if err := decodeJSON(r, &p); err != nil {
		return store.SongInput{}, err
	}
	if err := s.validator.ValidateSongPayload(p); err != nil {
		return store.SongInput{}, err
	}
	return songInput(p), nil
}

func (s *Server) handlePostSong(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeSong(r)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	songID, err := s.songs.AddSong(r.Context(), in)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Song added successfully", map[string]any{
		"songId": songID,
	})
}

// GET /songs?title=&performer=
func (s *Server) handleGetSongs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	songs, err := s.songs.GetSongs(r.Context(), store.SongFilter{
		Title:     q.Get("title"),
		Performer: q.Get("performer"),
	})
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"songs": songs})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.songs.GetSongByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"song": song})
}

func (s *Server) handlePutSong(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeSong(r)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	if err := s.songs.EditSongByID(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Song updated successfully", nil)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := s.songs.DeleteSongByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Song deleted successfully", nil)
}

package catalog

import (
	"net/http"

	"catalog-service/internal/validator"
)

func (s *Server) decodeCollaboration(r *http.Request) (validator.CollaborationPayload, error) {
	var p validator.CollaborationPayload
	if err := decodeJSON(r, &p); err != nil {
		return p, err
	}
	if err := s.validator.ValidateCollaborationPayload(p); err != nil {
		return p, err
	}
	return p, nil
}

func (s *Server) handlePostCollaboration(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	p, err := s.decodeCollaboration(r)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.playlists.VerifyPlaylistOwner(ctx, p.PlaylistID, ownerID); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if _, err := s.users.GetUserByID(ctx, p.UserID); err != nil {
		s.writeFail(w, r, err)
		return
	}

	collaborationID, err := s.collaborations.AddCollaboration(ctx, p.PlaylistID, p.UserID)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Collaboration added successfully", map[string]any{
		"collaborationId": collaborationID,
	})
}

func (s *Server) handleDeleteCollaboration(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	p, err := s.decodeCollaboration(r)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.playlists.VerifyPlaylistOwner(ctx, p.PlaylistID, ownerID); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.collaborations.DeleteCollaboration(ctx, p.PlaylistID, p.UserID); err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Collaboration deleted successfully", nil)
}

package catalog

import (
	"net/http"
	"strings"

	"catalog-service/internal/apperror"
	"catalog-service/internal/store"
	"catalog-service/internal/validator"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handlePostUser(w http.ResponseWriter, r *http.Request) {
	var p validator.UserPayload
	if err := decodeJSON(r, &p); err != nil {
		s.writeFail(w, r, err)
		return
	}
	p.Username = strings.TrimSpace(p.Username)
	if err := s.validator.ValidateUserPayload(p); err != nil {
		s.writeFail(w, r, err)
		return
	}

	userID, err := s.users.AddUser(r.Context(), store.UserInput{
		Username: p.Username,
		Password: p.Password,
		Fullname: p.Fullname,
	})
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "User added successfully", map[string]any{
		"userId": userID,
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"user": user})
}

// GET /users?username=
func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("username"))
	if q == "" {
		s.writeFail(w, r, apperror.Validation(`"username" is required`))
		return
	}

	users, err := s.users.GetUsersByUsername(r.Context(), q)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"users": users})
}

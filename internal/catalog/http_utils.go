package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"catalog-service/internal/apperror"

	"github.com/go-chi/chi/v5/middleware"
)

const msgInternal = "internal server error"

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, envelope{Status: "success", Message: msg, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Status: "fail", Message: msg})
}

// writeFail translates err into the error envelope. Errors without a client-facing
// kind are logged and reported as a generic 500.
func (s *Server) writeFail(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		writeError(w, ae.HTTPStatus(), ae.Message)
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"err", err,
	)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// decodeJSON reads the request body into dst. A malformed body is a validation error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return apperror.Validation("invalid JSON body").Wrap(err)
	}
	return nil
}

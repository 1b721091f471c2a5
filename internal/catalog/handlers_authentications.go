package catalog

import (
	"fmt"
	"net/http"

	"catalog-service/internal/validator"
)

// POST /authentications logs a user in and issues a token pair.
func (s *Server) handlePostAuthentication(w http.ResponseWriter, r *http.Request) {
	var p validator.LoginPayload
	if err := decodeJSON(r, &p); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.validator.ValidateLoginPayload(p); err != nil {
		s.writeFail(w, r, err)
		return
	}
	ctx := r.Context()

	userID, err := s.users.VerifyUserCredential(ctx, p.Username, p.Password)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	accessToken, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		s.writeFail(w, r, fmt.Errorf("sign access token: %w", err))
		return
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		s.writeFail(w, r, fmt.Errorf("sign refresh token: %w", err))
		return
	}
	if err := s.authentications.AddRefreshToken(ctx, refreshToken); err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Authentication added successfully", map[string]any{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// PUT /authentications exchanges a stored refresh token for a new access token.
func (s *Server) handlePutAuthentication(w http.ResponseWriter, r *http.Request) {
	var p validator.RefreshTokenPayload
	if err := decodeJSON(r, &p); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.validator.ValidateRefreshTokenPayload(p); err != nil {
		s.writeFail(w, r, err)
		return
	}
	ctx := r.Context()

	if err := s.authentications.VerifyRefreshToken(ctx, p.RefreshToken); err != nil {
		s.writeFail(w, r, err)
		return
	}
	userID, err := s.tokens.VerifyRefreshToken(p.RefreshToken)
	if err != nil {
		s.writeFail(w, r, err)
		return
	}

	accessToken, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		s.writeFail(w, r, fmt.Errorf("sign access token: %w", err))
		return
	}

	writeSuccess(w, http.StatusOK, "Access token refreshed successfully", map[string]any{
		"accessToken": accessToken,
	})
}

// DELETE /authentications revokes a refresh token.
func (s *Server) handleDeleteAuthentication(w http.ResponseWriter, r *http.Request) {
	var p validator.RefreshTokenPayload
	if err := decodeJSON(r, &p); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.validator.ValidateRefreshTokenPayload(p); err != nil {
		s.writeFail(w, r, err)
		return
	}
	ctx := r.Context()

	if err := s.authentications.VerifyRefreshToken(ctx, p.RefreshToken); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if err := s.authentications.DeleteRefreshToken(ctx, p.RefreshToken); err != nil {
		s.writeFail(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Refresh token deleted successfully", nil)
}

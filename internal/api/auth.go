package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nuttybakers/bakery-core/internal/auth"
)

// genericLoginMessage is returned for every login failure. Unknown
// email, wrong password, and deactivated account are indistinguishable
// to the caller.
const genericLoginMessage = "invalid credentials"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  *auth.User `json:"user"`
}

func (s *Server) tokenTTL() time.Duration {
	return time.Duration(s.secCfg.JWT.TokenTTLDays) * 24 * time.Hour
}

// handleLogin exchanges credentials for a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email and password are required")
		return
	}

	user, err := s.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeUnauthorized(w, genericLoginMessage)
			return
		}
		s.logger.Error("login lookup failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	// A malformed stored digest counts as a mismatch, not a 500.
	match, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		s.logger.Warn("verifying password", "error", err, "user_id", user.ID)
	}
	if !match || !user.IsActive {
		writeUnauthorized(w, genericLoginMessage)
		return
	}

	token, err := auth.GenerateAccessToken(user, s.secCfg.JWT.Secret, s.tokenTTL())
	if err != nil {
		s.logger.Error("generating access token", "error", err, "user_id", user.ID)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// handleMe returns the authenticated account's public fields.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// handlePasswordChange verifies the current password then stores the
// new hash in a single write. Concurrent sessions keep working; the
// last write wins.
func (s *Server) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w, "authentication required")
		return
	}

	var req passwordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	match, err := auth.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		s.logger.Warn("verifying current password", "error", err, "user_id", user.ID)
	}
	if !match {
		writeUnauthorized(w, "current password is incorrect")
		return
	}

	if err := auth.ValidatePasswordStrength(req.NewPassword); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error("hashing new password", "error", err, "user_id", user.ID)
		writeInternalError(w, "internal server error")
		return
	}

	if err := s.userRepo.UpdatePassword(r.Context(), user.ID, hash); err != nil {
		s.logger.Error("updating password", "error", err, "user_id", user.ID)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

type registerRequest struct {
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	DisplayName string    `json:"display_name"`
	Role        auth.Role `json:"role"`
}

// handleRegister provisions a new account. Admin only.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if !auth.IsValidEmail(req.Email) {
		writeValidationError(w, "invalid email address")
		return
	}
	if req.Role == "" {
		req.Role = auth.RoleUser
	}
	if !req.Role.IsValid() {
		writeValidationError(w, "invalid role")
		return
	}
	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("hashing password", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	user := &auth.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeConflict(w, "email already registered")
			return
		}
		s.logger.Error("creating user", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// internal/api/handler/auth.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"susu-ledger/internal/api/types"
	"susu-ledger/internal/apperr"
	"susu-ledger/internal/identity"
)

// AuthHandler exposes the identity provider's login surface.
type AuthHandler struct {
	provider identity.Provider
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(provider identity.Provider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, logger: logger}
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, apperr.InvalidArgument, "malformed request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, apperr.InvalidArgument, "email and password are required")
		return
	}

	token, err := h.provider.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if apperr.Is(err, apperr.Unauthenticated) {
			h.writeError(w, http.StatusUnauthorized, apperr.Unauthenticated, "invalid credentials")
			return
		}
		h.logger.Error("login failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, apperr.Internal, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (h *AuthHandler) writeError(w http.ResponseWriter, status int, code apperr.Code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorBody{
		Error: types.ErrorDetail{Code: string(code), Message: message},
	})
}

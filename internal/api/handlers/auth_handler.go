package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// UserService defines the account operations used by the handler
type UserService interface {
	Register(ctx context.Context, input services.RegisterInput) (*entities.User, error)
	Login(ctx context.Context, identifier, password string) (*entities.User, error)
}

// AuthHandler handles login and registration
type AuthHandler struct {
	service UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.service.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		respondWithAppError(w, err, "login error")
		return
	}
	respondOK(w, map[string]interface{}{
		"role":     user.Role,
		"redirect": user.Redirect,
		"userId":   user.ID,
	})
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		respondWithAppError(w, err, "registration error")
		return
	}
	respondOK(w, map[string]interface{}{"id": user.ID})
}

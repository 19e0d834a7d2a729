package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
)

// ContactService defines the contact form operations used by the handler
type ContactService interface {
	Submit(ctx context.Context, message *entities.ContactMessage) error
	List(ctx context.Context, filter repositories.ContactMessageFilter) ([]*entities.ContactMessage, error)
}

// ContactHandler handles contact form messages
type ContactHandler struct {
	service ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Newsletter bool   `json:"newsletter"`
}

// SubmitContact handles POST /api/contact
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	message := &entities.ContactMessage{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    req.Subject,
		Message:    req.Message,
		Newsletter: req.Newsletter,
	}
	if err := h.service.Submit(r.Context(), message); err != nil {
		respondWithAppError(w, err, "contact error")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ok": true,
		"id": message.ID,
	})
}

// ListContacts handles GET /api/contact?status=&limit=
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ContactMessageFilter{
		Status:      entities.ContactStatus(r.URL.Query().Get("status")),
		ListOptions: repositories.ListOptions{Limit: queryInt(r, "limit", 0)},
	}
	messages, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err, "get contact messages error")
		return
	}
	respondOK(w, map[string]interface{}{"messages": messages})
}

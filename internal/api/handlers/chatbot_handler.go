package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// ChatbotService defines the chat history operations used by the handler
type ChatbotService interface {
	Record(ctx context.Context, userID, sessionID, message, response string) (*entities.ChatbotMessage, error)
	History(ctx context.Context, userID string, limit int) ([]*entities.ChatbotMessage, error)
}

// ChatbotHandler stores and serves chat history
type ChatbotHandler struct {
	service ChatbotService
}

// NewChatbotHandler creates a new chatbot handler
func NewChatbotHandler(service ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{service: service}
}

type chatbotRequest struct {
	UserID      string `json:"userId"`
	SessionID   string `json:"sessionId"`
	UserMessage string `json:"userMessage"`
	BotResponse string `json:"botResponse"`
}

// RecordMessage handles POST /api/chatbot/messages
func (h *ChatbotHandler) RecordMessage(w http.ResponseWriter, r *http.Request) {
	var req chatbotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	message, err := h.service.Record(r.Context(), req.UserID, req.SessionID, req.UserMessage, req.BotResponse)
	if err != nil {
		respondWithAppError(w, err, "chatbot error")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ok": true,
		"id": message.ID,
	})
}

// History handles GET /api/chatbot/history/{userId}?limit=
func (h *ChatbotHandler) History(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.History(r.Context(), r.PathValue("userId"), queryInt(r, "limit", 0))
	if err != nil {
		respondWithAppError(w, err, "get chat history error")
		return
	}
	respondOK(w, map[string]interface{}{"messages": messages})
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
)

// StoreStatus is the part of the live store the health check needs
type StoreStatus interface {
	Kind() store.Kind
	Ping(ctx context.Context) error
}

// HealthHandler reports service health
type HealthHandler struct {
	store StoreStatus
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(s StoreStatus) *HealthHandler {
	return &HealthHandler{store: s}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"ok":    false,
			"store": h.store.Kind(),
			"error": "store unreachable",
		})
		return
	}
	respondOK(w, map[string]interface{}{"store": h.store.Kind()})
}

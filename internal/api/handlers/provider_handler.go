package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// ProviderService defines the provider operations used by the handler
type ProviderService interface {
	Register(ctx context.Context, provider *entities.Provider) error
	Search(ctx context.Context, q services.ProviderQuery) ([]*entities.Provider, error)
}

// ProviderHandler handles provider registration and search
type ProviderHandler struct {
	service ProviderService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(service ProviderService) *ProviderHandler {
	return &ProviderHandler{service: service}
}

type providerRequest struct {
	ProviderType string   `json:"providerType"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Contact      string   `json:"contact"`
	Services     []string `json:"services"`
	Specialty    string   `json:"specialty"`
	Location     struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	} `json:"location"`
	Admin struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	} `json:"admin"`
}

// RegisterProvider handles POST /api/providers
func (h *ProviderHandler) RegisterProvider(w http.ResponseWriter, r *http.Request) {
	var req providerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Location.Lat == nil || req.Location.Lng == nil {
		respondWithError(w, http.StatusBadRequest, "location lat and lng are required")
		return
	}

	provider := &entities.Provider{
		ProviderType: strings.TrimSpace(req.ProviderType),
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		Location:     entities.NewPoint(*req.Location.Lng, *req.Location.Lat),
		Contact:      strings.TrimSpace(req.Contact),
		Services:     req.Services,
		Specialty:    strings.TrimSpace(req.Specialty),
		Admin: entities.ProviderAdmin{
			Name:  strings.TrimSpace(req.Admin.FullName),
			Email: strings.TrimSpace(req.Admin.Email),
		},
	}
	if err := h.service.Register(r.Context(), provider); err != nil {
		respondWithAppError(w, err, "provider registration error")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":       true,
		"provider": provider,
	})
}

// SearchProviders handles GET /api/providers?type=&q=&lat=&lng=&maxDistance=&limit=
func (h *ProviderHandler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	near, ok := nearPoint(w, r)
	if !ok {
		return
	}
	query := services.ProviderQuery{
		Type:  r.URL.Query().Get("type"),
		Text:  strings.TrimSpace(r.URL.Query().Get("q")),
		Near:  near,
		Limit: queryInt(r, "limit", 0),
	}
	if near != nil {
		query.MaxDistanceMeters, _, _ = queryFloat(r, "maxDistance")
	}

	providers, err := h.service.Search(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err, "provider search error")
		return
	}
	respondOK(w, map[string]interface{}{"providers": providers})
}

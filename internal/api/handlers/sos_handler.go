package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// SosService defines the emergency report operations used by the handler
type SosService interface {
	Report(ctx context.Context, report *entities.SosReport) error
	List(ctx context.Context, q services.SosQuery) ([]*entities.SosReport, error)
}

// SosHandler handles emergency reports
type SosHandler struct {
	service SosService
}

// NewSosHandler creates a new SOS handler
func NewSosHandler(service SosService) *SosHandler {
	return &SosHandler{service: service}
}

type sosRequest struct {
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Symptoms    []string `json:"symptoms"`
	Description string   `json:"description"`
}

// ReportSos handles POST /api/sos
func (h *SosHandler) ReportSos(w http.ResponseWriter, r *http.Request) {
	var req sosRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Lat == nil || req.Lng == nil {
		respondWithError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}

	report := &entities.SosReport{
		Location:    entities.NewPoint(*req.Lng, *req.Lat),
		Symptoms:    req.Symptoms,
		Description: req.Description,
	}
	if err := h.service.Report(r.Context(), report); err != nil {
		respondWithAppError(w, err, "sos error")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":     true,
		"report": report,
	})
}

// ListSos handles GET /api/sos?lat=&lng=&maxDistance=&status=&limit=
func (h *SosHandler) ListSos(w http.ResponseWriter, r *http.Request) {
	query := services.SosQuery{
		Status: entities.SosStatus(r.URL.Query().Get("status")),
		Limit:  queryInt(r, "limit", 0),
	}

	near, ok := nearPoint(w, r)
	if !ok {
		return
	}
	if near != nil {
		query.Near = near
		query.MaxDistanceMeters, _, _ = queryFloat(r, "maxDistance")
	}

	reports, err := h.service.List(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err, "get sos reports error")
		return
	}
	respondOK(w, map[string]interface{}{"reports": reports})
}

// nearPoint reads optional lat/lng query parameters. It writes a 400 and
// returns ok=false when they are present but unusable.
func nearPoint(w http.ResponseWriter, r *http.Request) (*entities.GeoPoint, bool) {
	lat, hasLat, latErr := queryFloat(r, "lat")
	lng, hasLng, lngErr := queryFloat(r, "lng")
	if latErr != nil || lngErr != nil || hasLat != hasLng {
		respondWithError(w, http.StatusBadRequest, "lat and lng must both be numbers")
		return nil, false
	}
	if !hasLat {
		return nil, true
	}
	point := entities.NewPoint(lng, lat)
	if err := point.Validate(); err != nil {
		respondWithAppError(w, err, "invalid location")
		return nil, false
	}
	return &point, true
}

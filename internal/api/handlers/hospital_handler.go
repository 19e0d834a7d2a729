package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
)

// HospitalService defines the hospital operations used by the handler
type HospitalService interface {
	List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error)
	Get(ctx context.Context, id string) (*entities.Hospital, error)
	Nearby(ctx context.Context, lat, lng, maxDistanceMeters float64) ([]*entities.Hospital, error)
}

// HospitalHandler serves hospital listings
type HospitalHandler struct {
	service HospitalService
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(service HospitalService) *HospitalHandler {
	return &HospitalHandler{service: service}
}

// ListHospitals handles GET /api/hospitals
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.HospitalFilter{
		Specialty:     q.Get("specialty"),
		EmergencyOnly: q.Get("emergency") == "true",
		ListOptions: repositories.ListOptions{
			Limit:  queryInt(r, "limit", 0),
			Offset: queryInt(r, "offset", 0),
		},
	}
	hospitals, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err, "get hospitals error")
		return
	}
	respondOK(w, map[string]interface{}{"hospitals": hospitals})
}

// GetHospital handles GET /api/hospitals/{id}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	hospital, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err, "get hospital error")
		return
	}
	respondOK(w, map[string]interface{}{"hospital": hospital})
}

// NearbyHospitals handles GET /api/hospitals/nearby/{lat}/{lng}?maxDistance=meters
func (h *HospitalHandler) NearbyHospitals(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.PathValue("lat"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid latitude")
		return
	}
	lng, err := strconv.ParseFloat(r.PathValue("lng"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid longitude")
		return
	}
	if err := entities.NewPoint(lng, lat).Validate(); err != nil {
		respondWithAppError(w, err, "invalid location")
		return
	}
	maxDistance, _, err := queryFloat(r, "maxDistance")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid maxDistance")
		return
	}

	hospitals, err := h.service.Nearby(r.Context(), lat, lng, maxDistance)
	if err != nil {
		respondWithAppError(w, err, "get nearby hospitals error")
		return
	}
	respondOK(w, map[string]interface{}{"hospitals": hospitals})
}

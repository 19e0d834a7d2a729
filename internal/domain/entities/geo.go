package entities

import (
	"fmt"
	"math"

	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// GeoPointType is the only geometry type stored.
const GeoPointType = "Point"

// GeoPoint is a GeoJSON point. Coordinates are always [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewPoint builds a point from longitude and latitude, in that order.
func NewPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: GeoPointType, Coordinates: [2]float64{lng, lat}}
}

// Longitude returns the first coordinate.
func (p GeoPoint) Longitude() float64 { return p.Coordinates[0] }

// Latitude returns the second coordinate.
func (p GeoPoint) Latitude() float64 { return p.Coordinates[1] }

// Validate checks coordinate ranges. NaN and infinities are out of range.
func (p GeoPoint) Validate() error {
	for _, c := range p.Coordinates {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return apperrors.NewValidationError(fmt.Sprintf("coordinate %v is not a finite number", c))
		}
	}
	if p.Longitude() < -180 || p.Longitude() > 180 {
		return apperrors.NewValidationError(fmt.Sprintf("longitude %v out of range", p.Longitude()))
	}
	if p.Latitude() < -90 || p.Latitude() > 90 {
		return apperrors.NewValidationError(fmt.Sprintf("latitude %v out of range", p.Latitude()))
	}
	return nil
}

package utils

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// BoundingBox returns the lat/lng rectangle enclosing a circle of radiusKm.
// It is a coarse SQL prefilter; callers still check DistanceKm.
func BoundingBox(lat, lng, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusKm / 111.0
	cos := math.Cos(degreesToRadians(lat))
	lngDelta := 180.0
	if cos > 0.01 {
		lngDelta = radiusKm / (111.0 * cos)
	}
	return lat - latDelta, lat + latDelta, lng - lngDelta, lng + lngDelta
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

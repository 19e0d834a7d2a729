package repositories

// ListOptions bounds and orders a findMany query. Results are newest first
// unless Oldest is set. A zero Limit means no limit.
type ListOptions struct {
	Limit  int
	Offset int
	Oldest bool
}

// NearbyQuery selects records within RadiusKm of a point, nearest first.
type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Limit     int
}

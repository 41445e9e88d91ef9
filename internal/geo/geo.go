package geo

import "math"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultCoordinates is the fallback origin used when a device location is
// unavailable (city center of Astana).
var DefaultCoordinates = Coordinates{Latitude: 51.1694, Longitude: 71.4491}

// Distance returns the great-circle distance between two points in kilometers.
func Distance(a, b Coordinates) float64 {
	// Haversine formula implementation
	const R = 6371 // Earth radius in kilometers

	lat1Rad := a.Latitude * math.Pi / 180
	lat2Rad := b.Latitude * math.Pi / 180
	deltaLat := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return R * c
}

// SquaredDegreeDistance is the cheap planar approximation used for proximity
// sorting. Not a real distance; only its ordering matters.
func SquaredDegreeDistance(a, b Coordinates) float64 {
	dLat := a.Latitude - b.Latitude
	dLon := a.Longitude - b.Longitude
	return dLat*dLat + dLon*dLon
}

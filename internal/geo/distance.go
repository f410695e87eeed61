// Package geo provides the naive great-circle distance used for radius
// filtering of listings. The scan is in-memory over an already-loaded
// result set; there is no spatial index.
package geo

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the Haversine distance in kilometers between two
// WGS84 coordinates.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// WithinKm reports whether the two points are within radiusKm of each
// other.
func WithinKm(lat1, lng1, lat2, lng2, radiusKm float64) bool {
	return DistanceKm(lat1, lng1, lat2, lng2) <= radiusKm
}

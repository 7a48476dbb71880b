package memory

import (
	"math"

	"github.com/geobridge/geobridge-go/pkg/backend"
)

// EarthRadiusKm is the mean Earth radius used for distance calculations.
const EarthRadiusKm = 6371.0088

// Distance returns the great-circle distance between a and b in kilometers.
func Distance(a, b backend.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// withinRadius reports whether loc is inside the circle.
func withinRadius(center backend.Location, radius float64, loc backend.Location) bool {
	return Distance(center, loc) <= radius
}

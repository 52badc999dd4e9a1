package catalog

import (
	"math"

	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/jftuga/geodist"
)

// routeDistanceKm is the geodesic distance between two airports, rounded to whole kilometres.
// Any positive separation yields at least 1. ok is false when either airport has no coordinates.
func routeDistanceKm(src, dst *domain.Airport) (int, bool) {
	if src == nil || dst == nil || !src.HasCoordinates() || !dst.HasCoordinates() {
		return 0, false
	}

	from := geodist.Coord{Lat: *src.Latitude, Lon: *src.Longitude}
	to := geodist.Coord{Lat: *dst.Latitude, Lon: *dst.Longitude}

	_, km, err := geodist.VincentyDistance(from, to)
	if err != nil {
		// Vincenty does not converge for nearly antipodal points.
		_, km = geodist.HaversineDistance(from, to)
	}
	if km > 0 && km < 1 {
		return 1, true
	}
	return int(math.Round(km)), true
}

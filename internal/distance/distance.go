// Package distance measures the distance between two points on the Earth.
package distance

import (
	"fmt"
	"math"

	"github.com/UnknownOlympus/cafemap/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/tidwall/geodesic"
)

// Func returns the distance between two points in kilometers.
type Func func(a, b models.Coordinates) float64

// Metric names accepted by ByName.
const (
	MetricGeodesic  = "geodesic"
	MetricHaversine = "haversine"
)

const metersInKm = 1000.0

// ByName returns the distance function registered under name.
func ByName(name string) (Func, error) {
	switch name {
	case MetricGeodesic, "":
		return Geodesic, nil
	case MetricHaversine:
		return Haversine, nil
	default:
		return nil, fmt.Errorf("unsupported distance metric: %s", name)
	}
}

// Haversine computes the distance on a sphere with the Earth's equatorial radius.
func Haversine(a, b models.Coordinates) float64 {
	return geo.DistanceHaversine(point(a), point(b)) / metersInKm
}

// Geodesic computes the shortest distance over the WGS-84 ellipsoid.
// Latitudes outside [-90, 90] have no ellipsoidal solution, so such points
// are measured with Haversine instead.
func Geodesic(a, b models.Coordinates) float64 {
	if a == b {
		return 0
	}

	var meters float64
	geodesic.WGS84.Inverse(a.Latitude, a.Longitude, b.Latitude, b.Longitude, &meters, nil, nil)
	if math.IsNaN(meters) {
		return Haversine(a, b)
	}

	return meters / metersInKm
}

func point(c models.Coordinates) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Package ranking orders cafes by their distance from a point.
package ranking

import (
	"cmp"
	"slices"

	"github.com/UnknownOlympus/cafemap/internal/distance"
	"github.com/UnknownOlympus/cafemap/internal/models"
)

// DefaultLimit is the number of cafes shown on the map.
const DefaultLimit = 5

// Rank measures the distance from origin to every cafe and returns the
// nearest limit of them, closest first. Cafes at equal distance keep their
// input order. The cafes slice is not modified.
func Rank(origin models.Coordinates, cafes []models.Cafe, limit int, metric distance.Func) []models.RankedCafe {
	if limit <= 0 || len(cafes) == 0 {
		return []models.RankedCafe{}
	}

	ranked := make([]models.RankedCafe, 0, len(cafes))
	for _, cafe := range cafes {
		ranked = append(ranked, models.RankedCafe{
			Title:       cafe.Name,
			Distance:    metric(origin, cafe.Coordinates),
			Coordinates: cafe.Coordinates,
		})
	}

	slices.SortStableFunc(ranked, func(a, b models.RankedCafe) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	return slices.Clip(ranked[:min(limit, len(ranked))])
}

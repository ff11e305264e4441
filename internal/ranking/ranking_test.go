package ranking_test

import (
	"fmt"
	"testing"

	"github.com/UnknownOlympus/cafemap/internal/distance"
	"github.com/UnknownOlympus/cafemap/internal/models"
	"github.com/UnknownOlympus/cafemap/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var origin = models.Coordinates{Longitude: 37.6173, Latitude: 55.7558}

// byLongitude treats a cafe's longitude as its distance from the origin.
func byLongitude(_, b models.Coordinates) float64 {
	return b.Longitude
}

func cafesAt(distances ...float64) []models.Cafe {
	cafes := make([]models.Cafe, 0, len(distances))
	for i, d := range distances {
		cafes = append(cafes, models.Cafe{
			Name:        fmt.Sprintf("cafe-%d", i),
			Coordinates: models.Coordinates{Longitude: d, Latitude: float64(i)},
		})
	}

	return cafes
}

func distancesOf(ranked []models.RankedCafe) []float64 {
	out := make([]float64, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Distance)
	}

	return out
}

func TestRank(t *testing.T) {
	t.Run("fewer cafes than the limit", func(t *testing.T) {
		ranked := ranking.Rank(origin, cafesAt(1.2, 5.0, 0.3), ranking.DefaultLimit, byLongitude)

		require.Len(t, ranked, 3)
		assert.Equal(t, []float64{0.3, 1.2, 5.0}, distancesOf(ranked))
		assert.Equal(t, "cafe-2", ranked[0].Title)
	})

	t.Run("more cafes than the limit", func(t *testing.T) {
		ranked := ranking.Rank(origin, cafesAt(9, 3, 7, 1, 8, 2, 6, 4), ranking.DefaultLimit, byLongitude)

		require.Len(t, ranked, 5)
		assert.Equal(t, []float64{1, 2, 3, 4, 6}, distancesOf(ranked))
	})

	t.Run("ties keep input order", func(t *testing.T) {
		ranked := ranking.Rank(origin, cafesAt(2, 1, 2, 1, 2), 4, byLongitude)

		titles := make([]string, 0, len(ranked))
		for _, r := range ranked {
			titles = append(titles, r.Title)
		}
		assert.Equal(t, []string{"cafe-1", "cafe-3", "cafe-0", "cafe-2"}, titles)
	})

	t.Run("coordinates are carried over", func(t *testing.T) {
		cafes := []models.Cafe{
			{Name: "Кофемания", Coordinates: models.Coordinates{Longitude: 37.6208, Latitude: 55.7539}},
			{Name: "Шоколадница", Coordinates: models.Coordinates{Longitude: 37.5910, Latitude: 55.7640}},
		}

		ranked := ranking.Rank(origin, cafes, ranking.DefaultLimit, distance.Geodesic)

		require.Len(t, ranked, 2)
		assert.Equal(t, "Кофемания", ranked[0].Title)
		assert.Equal(t, cafes[0].Coordinates, ranked[0].Coordinates)
		assert.Equal(t, cafes[1].Coordinates, ranked[1].Coordinates)
		assert.Less(t, ranked[0].Distance, ranked[1].Distance)
	})

	t.Run("cafe at the origin", func(t *testing.T) {
		cafes := []models.Cafe{{Name: "Here", Coordinates: origin}}

		ranked := ranking.Rank(origin, cafes, ranking.DefaultLimit, distance.Geodesic)

		require.Len(t, ranked, 1)
		assert.Equal(t, "0.00", fmt.Sprintf("%.2f", ranked[0].Distance))
	})

	t.Run("input is not reordered", func(t *testing.T) {
		cafes := cafesAt(3, 2, 1)

		ranking.Rank(origin, cafes, ranking.DefaultLimit, byLongitude)

		assert.Equal(t, "cafe-0", cafes[0].Name)
		assert.Equal(t, "cafe-2", cafes[2].Name)
	})

	t.Run("empty input", func(t *testing.T) {
		ranked := ranking.Rank(origin, nil, ranking.DefaultLimit, byLongitude)

		assert.Empty(t, ranked)
	})

	t.Run("non positive limit", func(t *testing.T) {
		ranked := ranking.Rank(origin, cafesAt(1, 2), 0, byLongitude)

		assert.Empty(t, ranked)
	})
}

func TestRankIsSortedWithBoundedLength(t *testing.T) {
	cafes := make([]models.Cafe, 0, 40)
	for i := range 40 {
		cafes = append(cafes, models.Cafe{
			Name: fmt.Sprintf("cafe-%d", i),
			Coordinates: models.Coordinates{
				Longitude: 37.5 + float64((i*7)%13)*0.01,
				Latitude:  55.7 + float64((i*5)%11)*0.01,
			},
		})
	}

	for n := 1; n <= len(cafes); n++ {
		ranked := ranking.Rank(origin, cafes[:n], ranking.DefaultLimit, distance.Geodesic)

		require.Len(t, ranked, min(ranking.DefaultLimit, n))
		for i := 1; i < len(ranked); i++ {
			assert.LessOrEqual(t, ranked[i-1].Distance, ranked[i].Distance)
		}
	}
}

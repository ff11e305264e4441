package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/cafemap/internal/distance"
	"github.com/UnknownOlympus/cafemap/internal/geocoding"
	"github.com/UnknownOlympus/cafemap/internal/metrics"
	"github.com/UnknownOlympus/cafemap/internal/models"
	"github.com/UnknownOlympus/cafemap/internal/ranking"
)

// CafeSource provides the list of candidate cafes.
type CafeSource interface {
	FetchCafes(ctx context.Context) ([]models.Cafe, error)
}

// Renderer draws the result and returns the path of the produced artifact.
type Renderer interface {
	Render(origin models.Coordinates, ranked []models.RankedCafe) (string, error)
}

// Result is the outcome of one Find call.
type Result struct {
	Origin       models.Coordinates  // Origin is the geocoded user location.
	Cafes        []models.RankedCafe // Cafes are the nearest cafes, closest first.
	ArtifactPath string              // ArtifactPath is the rendered map file.
}

// Finder runs the geocode, rank and render pipeline.
type Finder struct {
	log          *slog.Logger       // Logger for logging pipeline steps
	provider     geocoding.Provider // Geocoding provider for the user's address
	providerName string             // Name of the provider for metrics labeling
	source       CafeSource         // Source of candidate cafes
	renderer     Renderer           // Renderer of the map artifact
	metrics      *metrics.Metrics   // Metrics for tracking pipeline results
	limit        int                // Number of nearest cafes to keep
	metric       distance.Func      // Distance function used for ranking
}

// NewFinder creates a new Finder. A non-positive limit selects ranking.DefaultLimit
// and a nil metric selects distance.Geodesic.
func NewFinder(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	source CafeSource,
	renderer Renderer,
	metrics *metrics.Metrics,
	limit int,
	metric distance.Func,
) *Finder {
	if limit <= 0 {
		limit = ranking.DefaultLimit
	}
	if metric == nil {
		metric = distance.Geodesic
	}

	return &Finder{
		log:          log,
		provider:     provider,
		providerName: providerName,
		source:       source,
		renderer:     renderer,
		metrics:      metrics,
		limit:        limit,
		metric:       metric,
	}
}

// Find geocodes address, picks the nearest cafes and renders them. Every step
// depends on the previous one: when geocoding fails, no cafes are read and no
// artifact is written.
func (f *Finder) Find(ctx context.Context, address string) (*Result, error) {
	origin, err := f.geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	cafes, err := f.source.FetchCafes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cafes: %w", err)
	}
	f.metrics.CafesLoaded.Set(float64(len(cafes)))

	nearest := ranking.Rank(*origin, cafes, f.limit, f.metric)
	f.metrics.CafesRanked.Set(float64(len(nearest)))
	f.log.DebugContext(ctx, "Cafes ranked", "candidates", len(cafes), "selected", len(nearest))

	path, err := f.renderer.Render(*origin, nearest)
	if err != nil {
		return nil, fmt.Errorf("failed to render map: %w", err)
	}

	return &Result{Origin: *origin, Cafes: nearest, ArtifactPath: path}, nil
}

func (f *Finder) geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	startTime := time.Now()
	coords, err := f.provider.Geocode(ctx, address)
	f.metrics.GeocodingSeconds.WithLabelValues(f.providerName).Observe(time.Since(startTime).Seconds())

	if err == nil && coords == nil {
		err = geocoding.ErrNotFound
	}
	if err != nil {
		var upstream *geocoding.UpstreamError
		switch {
		case errors.Is(err, geocoding.ErrNotFound):
			f.metrics.GeocodingErrors.WithLabelValues(metrics.ReasonNotFound).Inc()
		case errors.As(err, &upstream):
			f.metrics.GeocodingErrors.WithLabelValues(metrics.ReasonUpstream).Inc()
		default:
			f.metrics.GeocodingErrors.WithLabelValues(metrics.ReasonOther).Inc()
		}
		f.log.ErrorContext(ctx, "Failed to geocode", "address", address, "error", err)

		return nil, fmt.Errorf("failed to geocode %q: %w", address, err)
	}

	f.log.InfoContext(ctx, "Address geocoded", "address", address, "lat", coords.Latitude, "lon", coords.Longitude)

	return coords, nil
}

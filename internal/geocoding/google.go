package geocoding

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/cafemap/internal/models"
	"googlemaps.github.io/maps"
)

const googleName = "google"

// GoogleProvider geocodes addresses through the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of *maps.Client used by GoogleProvider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider wraps an existing Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode returns the location of the first result Google reports for the address.
// Any client failure is reported as *UpstreamError since the maps client does not
// expose the HTTP status separately.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, &UpstreamError{Provider: googleName, Err: err}
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrNotFound
	}
	location := geocodeResponse[0].Geometry.Location

	gp.log.InfoContext(ctx, "Google found result",
		"address", address, "match", geocodeResponse[0].FormattedAddress)

	return &models.Coordinates{Longitude: location.Lng, Latitude: location.Lat}, nil
}

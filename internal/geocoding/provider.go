package geocoding

import (
	"context"
	"net/http"

	"github.com/UnknownOlympus/cafemap/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the coordinates of the most relevant match.
// Implementations return ErrNotFound when nothing matches and *UpstreamError
// when the service cannot be reached or answers with a failure status.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

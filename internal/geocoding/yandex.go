package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/cafemap/internal/models"
	"golang.org/x/time/rate"
)

// YandexBaseURL -- Yandex Geocoder API base URL.
const YandexBaseURL = "https://geocode-maps.yandex.ru/1.x"

const yandexName = "yandex"

// YandexProvider implements geocoding using the Yandex Geocoder HTTP API.
type YandexProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Yandex API
	apiKey  string        // API key with geocoder access
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// yandexResponse is the part of the Yandex answer the provider needs.
type yandexResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Name  string `json:"name"`
					Point struct {
						Pos string `json:"pos"` // "lon lat"
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// NewYandexProvider creates a new Yandex geocoding provider.
func NewYandexProvider(apiKey string, rateLimit int, timeout time.Duration, log *slog.Logger) *YandexProvider {
	return &YandexProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: YandexBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewYandexProviderWithClient allows injecting a custom HTTP client and base URL.
func NewYandexProviderWithClient(
	client HTTPClient,
	baseURL string,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *YandexProvider {
	return &YandexProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// Geocode resolves the address to the coordinates of the first (most relevant)
// feature member returned by Yandex.
func (yp *YandexProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	if err := yp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	yp.log.DebugContext(ctx, "Geocoding using Yandex", "address", address)

	reqURL, err := url.Parse(yp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("geocode", address)
	query.Set("apikey", yp.apiKey)
	query.Set("format", "json")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := yp.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: yandexName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Provider: yandexName, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		yp.log.ErrorContext(ctx, "Yandex API error", "status", resp.StatusCode, "body", string(body))
		return nil, &UpstreamError{Provider: yandexName, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result yandexResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode yandex response: %w", err)
	}

	members := result.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return nil, ErrNotFound
	}

	found := members[0].GeoObject
	coords, err := parsePos(found.Point.Pos)
	if err != nil {
		return nil, err
	}

	yp.log.InfoContext(ctx, "Yandex found result",
		"address", address, "match", found.Name, "lat", coords.Latitude, "lon", coords.Longitude)

	return coords, nil
}

// parsePos parses the "longitude latitude" pair used by Yandex.
func parsePos(pos string) (*models.Coordinates, error) {
	const posFields = 2

	fields := strings.Fields(pos)
	if len(fields) != posFields {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCoords, pos)
	}

	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrInvalidCoords, fields[0])
	}

	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrInvalidCoords, fields[1])
	}

	return &models.Coordinates{Longitude: lon, Latitude: lat}, nil
}

package geocoding_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/UnknownOlympus/cafemap/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

// brokenBody fails after the status line has been received.
type brokenBody struct{}

func (brokenBody) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func (brokenBody) Close() error { return nil }

func TestYandexProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	apiKey := "test-api-key"
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), geocoding.YandexBaseURL)
				assert.Equal(t, "Москва, Красная площадь", req.URL.Query().Get("geocode"))
				assert.Equal(t, apiKey, req.URL.Query().Get("apikey"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))

				responseBody := `{"response":{"GeoObjectCollection":{"featureMember":[
					{"GeoObject":{"name":"Красная площадь","Point":{"pos":"37.620795 55.753930"}}},
					{"GeoObject":{"name":"Красная площадь, Ярославль","Point":{"pos":"39.883 57.625"}}}
				]}}}`
				return jsonResponse(http.StatusOK, responseBody), nil
			},
		}

		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, apiKey, defaultRL, logger,
		)
		coords, err := provider.Geocode(ctx, "Москва, Красная площадь")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 37.620795, coords.Longitude, 0.000001)
		assert.InEpsilon(t, 55.753930, coords.Latitude, 0.000001)
	})

	t.Run("no feature members", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "Нигде", req.URL.Query().Get("geocode"))
				return jsonResponse(http.StatusOK, `{"response":{"GeoObjectCollection":{"featureMember":[]}}}`), nil
			},
		}

		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, apiKey, defaultRL, logger,
		)
		coords, err := provider.Geocode(ctx, "Нигде")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusInternalServerError, `internal error`), nil
			},
		}

		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, apiKey, defaultRL, logger,
		)
		coords, err := provider.Geocode(ctx, "Москва")

		require.Nil(t, coords)
		var upstream *geocoding.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
		assert.Equal(t, "internal error", upstream.Body)
		assert.Contains(t, err.Error(), "yandex API returned status 500")
	})

	t.Run("forbidden", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusForbidden, `{"message":"Invalid api key"}`), nil
			},
		}

		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, "bad", defaultRL, logger,
		)
		_, err := provider.Geocode(ctx, "Москва")

		var upstream *geocoding.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusForbidden, upstream.StatusCode)
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, apiKey, defaultRL, logger,
		)
		_, err := provider.Geocode(ctx, "Москва")

		var upstream *geocoding.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Zero(t, upstream.StatusCode)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("response body cut off", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusOK, Body: brokenBody{}}, nil
			},
		}

		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, apiKey, defaultRL, logger,
		)
		coords, err := provider.Geocode(ctx, "Москва")

		require.Nil(t, coords)
		var upstream *geocoding.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, "yandex", upstream.Provider)
		assert.Equal(t, http.StatusOK, upstream.StatusCode)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Contains(t, err.Error(), "could not be read")
	})

	t.Run("invalid pos", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK,
					`{"response":{"GeoObjectCollection":{"featureMember":[{"GeoObject":{"Point":{"pos":"37.6"}}}]}}}`), nil
			},
		}

		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, apiKey, defaultRL, logger,
		)
		coords, err := provider.Geocode(ctx, "Москва")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrInvalidCoords)
	})

	t.Run("non numeric latitude", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK,
					`{"response":{"GeoObjectCollection":{"featureMember":[{"GeoObject":{"Point":{"pos":"37.6 north"}}}]}}}`), nil
			},
		}

		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, apiKey, defaultRL, logger,
		)
		_, err := provider.Geocode(ctx, "Москва")

		require.ErrorIs(t, err, geocoding.ErrInvalidCoords)
		assert.Contains(t, err.Error(), "invalid latitude")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `not json`), nil
			},
		}

		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, apiKey, defaultRL, logger,
		)
		_, err := provider.Geocode(ctx, "Москва")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode yandex response")
	})

	t.Run("empty address", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called for an empty address")
				return nil, errors.New("unreachable")
			},
		}

		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, apiKey, defaultRL, logger,
		)
		_, err := provider.Geocode(ctx, "")

		require.ErrorIs(t, err, geocoding.ErrEmptyAddress)
	})

	t.Run("rate limit exceeded", func(t *testing.T) {
		rateCtx, cancel := context.WithCancel(context.Background())
		cancel()
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called when rate limit blocks")
				return nil, errors.New("unreachable")
			},
		}

		limiter := rate.NewLimiter(rate.Every(time.Second), 1)
		provider := geocoding.NewYandexProviderWithClient(
			mockClient, geocoding.YandexBaseURL, apiKey, limiter, logger,
		)
		_, err := provider.Geocode(rateCtx, "Москва")

		require.Error(t, err)
		assert.ErrorContains(t, err, "rate limit exceeded")
	})
}

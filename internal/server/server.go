// Package server serves the rendered map page.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/UnknownOlympus/cafemap/internal/metrics"
	"github.com/gorilla/mux"
)

// Config holds configuration for the map server.
type Config struct {
	ArtifactPath string           // ArtifactPath is the HTML file returned at "/".
	Logger       *slog.Logger     // Logger for request errors.
	Metrics      *metrics.Metrics // Metrics is optional.
}

// NewHandler constructs an HTTP handler with a single GET "/" route. The
// artifact is read from disk on every request.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.ArtifactPath == "" {
		return nil, errors.New("artifact path is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	router := mux.NewRouter()
	router.HandleFunc("/", artifactHandler(cfg)).Methods(http.MethodGet)

	return router, nil
}

func artifactHandler(cfg Config) http.HandlerFunc {
	return func(writer http.ResponseWriter, req *http.Request) {
		status := http.StatusOK
		defer func() {
			if cfg.Metrics != nil {
				cfg.Metrics.ArtifactRequests.WithLabelValues(strconv.Itoa(status)).Inc()
			}
		}()

		body, err := os.ReadFile(cfg.ArtifactPath)
		if err != nil {
			status = http.StatusInternalServerError
			cfg.Logger.ErrorContext(req.Context(), "Failed to read map artifact", "path", cfg.ArtifactPath, "error", err)
			http.Error(writer, http.StatusText(status), status)
			return
		}

		writer.Header().Set("Content-Type", "text/html; charset=utf-8")
		writer.WriteHeader(status)
		if _, err = writer.Write(body); err != nil {
			cfg.Logger.ErrorContext(req.Context(), "failed to write reply", "error", err)
		}
	}
}

// Run listens on addr and serves handler until the process exits.
func Run(addr string, handler http.Handler, log *slog.Logger) error {
	const (
		readTimeout  = 5 * time.Second
		writeTimeout = 10 * time.Second
	)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	log.Info("Serving cafe map", "addr", addr)

	return server.ListenAndServe()
}

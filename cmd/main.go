package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/UnknownOlympus/cafemap/internal/cafes"
	"github.com/UnknownOlympus/cafemap/internal/config"
	"github.com/UnknownOlympus/cafemap/internal/distance"
	"github.com/UnknownOlympus/cafemap/internal/geocoding"
	"github.com/UnknownOlympus/cafemap/internal/metrics"
	"github.com/UnknownOlympus/cafemap/internal/render"
	"github.com/UnknownOlympus/cafemap/internal/repository"
	"github.com/UnknownOlympus/cafemap/internal/server"
	"github.com/UnknownOlympus/cafemap/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// Supported cafe sources.
const (
	sourceFile     = "file"
	sourcePostgres = "postgres"
)

const prompt = "Где вы находитесь ? "

// healthChecker reports whether a dependency is ready to serve.
type healthChecker func(ctx context.Context) error

// cafeFinder runs the cafe search pipeline for an address.
type cafeFinder interface {
	Find(ctx context.Context, address string) (*service.Result, error)
}

// main is the entry point of the application.
func main() {
	os.Exit(run())
}

// run wires the application and returns the process exit code. Resources are
// released by deferred calls before main exits.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: cfg.RateLimit,
		Timeout:   cfg.Timeout,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	metric, err := distance.ByName(cfg.DistanceMetric)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	source, checks, closeSource, err := newCafeSource(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to set up cafe source: %v", err)
	}
	defer closeSource()

	renderer := render.New(render.Options{Output: cfg.Map.Output, Zoom: cfg.Map.Zoom}, logger)

	finder := service.NewFinder(
		logger,
		geoProvider,
		cfg.ProviderType, // Provider name for metrics
		source,
		renderer,
		appMetrics,
		cfg.Limit,
		metric,
	)

	result, code := findNearest(ctx, logger, finder, os.Stdin, os.Stdout)
	if result == nil {
		return code
	}

	handler, err := server.NewHandler(server.Config{
		ArtifactPath: result.ArtifactPath,
		Logger:       logger,
		Metrics:      appMetrics,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create map server", "error", err)
		return 1
	}

	checks = append(checks, artifactCheck(result.ArtifactPath))

	// Start the monitoring server in a goroutine so the map server can block run.
	go startMonitoringServer(ctx, logger, reg, checks, cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(cfg.Addr, handler, logger)
	}()

	fmt.Fprintf(os.Stdout, "Карта доступна по адресу http://%s/\n", cfg.Addr)

	select {
	case err = <-errCh:
		logger.ErrorContext(ctx, "Map server failed", "error", err)
		return 1
	case <-ctx.Done():
		logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")
		return 0
	}
}

// findNearest asks for an address, runs the pipeline and prints the outcome.
// On failure it returns a nil result and the exit code.
func findNearest(
	ctx context.Context,
	logger *slog.Logger,
	finder cafeFinder,
	in io.Reader,
	out io.Writer,
) (*service.Result, int) {
	address, err := readAddress(in, out)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read address", "error", err)
		return nil, 1
	}

	result, err := finder.Find(ctx, address)
	if errors.Is(err, geocoding.ErrNotFound) {
		fmt.Fprintf(out, "Адрес %q не найден. Уточните запрос и попробуйте снова.\n", address)
		return nil, 1
	}
	if err != nil {
		logger.ErrorContext(ctx, "Failed to find cafes", "error", err)
		fmt.Fprintf(out, "Не удалось найти кафе: %v\n", err)
		return nil, 1
	}

	printResult(out, result)

	return result, 0
}

// newCafeSource builds the configured cafe source together with its health checks
// and a function releasing its resources.
func newCafeSource(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (service.CafeSource, []healthChecker, func(), error) {
	switch cfg.Source {
	case sourceFile, "":
		return cafes.NewFileSource(cfg.Data.Path, cfg.Data.Encoding, logger), nil, func() {}, nil
	case sourcePostgres:
		dtb, err := repository.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		repo := repository.NewRepository(dtb, logger)

		return repo, []healthChecker{repo.Ping}, dtb.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported cafe source: %s", cfg.Source)
	}
}

// readAddress prints the prompt and returns the first line of input, trimmed.
func readAddress(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// printResult lists the nearest cafes, closest first.
func printResult(out io.Writer, result *service.Result) {
	fmt.Fprintf(out, "Ваши координаты: %.6f, %.6f\n", result.Origin.Latitude, result.Origin.Longitude)
	if len(result.Cafes) == 0 {
		fmt.Fprintln(out, "Кафе не найдены.")
	}
	for i, cafe := range result.Cafes {
		fmt.Fprintf(out, "%d. %s - %.2f км\n", i+1, cafe.Title, cafe.Distance)
	}
	fmt.Fprintf(out, "Карта сохранена в %s\n", result.ArtifactPath)
}

func artifactCheck(path string) healthChecker {
	return func(context.Context) error {
		file, err := os.Open(path)
		if err != nil {
			return err
		}

		return file.Close()
	}
}

// startMonitoringServer starts an HTTP server that provides health check and metrics endpoints.
// It listens on the specified port and logs the server's status and any errors encountered.
//
// Parameters:
// - ctx: A context.Context for managing cancellation and timeouts.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - checks: Readiness checks; /healthz fails when any of them fails.
// - port: The port number on which the server will listen.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	checks []healthChecker,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		for _, check := range checks {
			if err := check(req.Context()); err != nil {
				status, body = http.StatusServiceUnavailable, "Health check failed"
				log.WarnContext(ctx, "Health check failed", "error", err)
				break
			}
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
// Logs go to stderr; stdout carries the prompt and the results.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

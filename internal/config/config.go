package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the cafe map.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - Addr: The listen address of the map server.
// - ProviderType: The type of geocoding provider to use (yandex, google, nominatim).
// - APIKey: The API key for the geocoding provider.
// - Source: Where the cafes are read from (file, postgres).
// - Data: Settings of the cafe data file.
// - Map: Settings of the rendered map.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env            string         `mapstructure:"env"`             // Env is the current environment: local, development, production.
	Port           int            `mapstructure:"health_port"`     // Port is the monitoring server port.
	Addr           string         `mapstructure:"addr"`            // Addr is the map server listen address.
	ProviderType   string         `mapstructure:"provider_type"`   // ProviderType specifies which geocoding provider to use.
	APIKey         string         `mapstructure:"api_key"`         // The API key for accessing the geocoding provider.
	RateLimit      int            `mapstructure:"rate_limit"`      // Requests per second allowed to the provider.
	Timeout        time.Duration  `mapstructure:"timeout"`         // HTTP timeout of provider requests.
	Source         string         `mapstructure:"source"`          // Source of the cafe list: file or postgres.
	DistanceMetric string         `mapstructure:"distance_metric"` // DistanceMetric is geodesic or haversine.
	Limit          int            `mapstructure:"limit"`           // Limit is the number of nearest cafes to show.
	Data           DataConfig     `mapstructure:"data"`            // Data holds the cafe data file configuration.
	Map            MapConfig      `mapstructure:"map"`             // Map holds the rendered map configuration.
	Database       PostgresConfig `mapstructure:"postgres"`        // Database holds the postgres database configuration.
}

// DataConfig describes the cafe data file.
type DataConfig struct {
	Path     string `mapstructure:"path"`     // Path to the JSON file with cafes.
	Encoding string `mapstructure:"encoding"` // Encoding of the file, e.g. windows-1251.
}

// MapConfig describes the generated map artifact.
type MapConfig struct {
	Output string `mapstructure:"output"` // Output is the path of the HTML file.
	Zoom   int    `mapstructure:"zoom"`   // Zoom is the initial zoom level.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`     // Host is the database server address.
	Port     string `mapstructure:"port"`     // Port is the database server port.
	User     string `mapstructure:"user"`     // User is the database user.
	Password string `mapstructure:"password"` // Password is the database user's password.
	Name     string `mapstructure:"db_name"`  // Name is the name of the database.
}

var defaults = map[string]any{
	"CAFEMAP_ENV":             "production",
	"CAFEMAP_HEALTH_PORT":     8080,
	"CAFEMAP_ADDR":            "0.0.0.0:5000",
	"CAFEMAP_PROVIDER_TYPE":   "yandex",
	"CAFEMAP_RATE_LIMIT":      10,
	"CAFEMAP_TIMEOUT":         "10s",
	"CAFEMAP_SOURCE":          "file",
	"CAFEMAP_DISTANCE_METRIC": "geodesic",
	"CAFEMAP_LIMIT":           5,
	"CAFEMAP_DATA_ENCODING":   "windows-1251",
	"CAFEMAP_OUTPUT":          "cafes_map.html",
	"CAFEMAP_ZOOM":            13,
	"DB_PORT":                 "5432",
}

// MustLoad reads the configuration from the environment (and a .env file, if any)
// and returns a Config struct. It panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	env := viper.New()
	env.AutomaticEnv()
	for key, value := range defaults {
		env.SetDefault(key, value)
	}

	healthPort, err := cast.ToIntE(env.Get("CAFEMAP_HEALTH_PORT"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	rateLimit, err := cast.ToIntE(env.Get("CAFEMAP_RATE_LIMIT"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer type")
	}

	timeout, err := cast.ToDurationE(env.Get("CAFEMAP_TIMEOUT"))
	if err != nil {
		panic("failed to parse timeout from configuration")
	}

	limit, err := cast.ToIntE(env.Get("CAFEMAP_LIMIT"))
	if err != nil {
		panic("failed to parse cafes limit from configuration, must be an integer type")
	}

	zoom, err := cast.ToIntE(env.Get("CAFEMAP_ZOOM"))
	if err != nil {
		panic("failed to parse map zoom from configuration, must be an integer type")
	}

	return &Config{
		Env:            env.GetString("CAFEMAP_ENV"),
		Port:           healthPort,
		Addr:           env.GetString("CAFEMAP_ADDR"),
		ProviderType:   env.GetString("CAFEMAP_PROVIDER_TYPE"),
		APIKey:         env.GetString("API_KEY"),
		RateLimit:      rateLimit,
		Timeout:        timeout,
		Source:         env.GetString("CAFEMAP_SOURCE"),
		DistanceMetric: env.GetString("CAFEMAP_DISTANCE_METRIC"),
		Limit:          limit,
		Data: DataConfig{
			Path:     env.GetString("PATH_FILE"),
			Encoding: env.GetString("CAFEMAP_DATA_ENCODING"),
		},
		Map: MapConfig{
			Output: env.GetString("CAFEMAP_OUTPUT"),
			Zoom:   zoom,
		},
		Database: PostgresConfig{
			Host:     env.GetString("DB_HOST"),
			Port:     env.GetString("DB_PORT"),
			User:     env.GetString("DB_USERNAME"),
			Password: env.GetString("DB_PASSWORD"),
			Name:     env.GetString("DB_NAME"),
		},
	}
}

// Package config loads service configuration from defaults, an optional
// JSON or YAML file and the environment, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration written as "30s" in files and the environment.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats d as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Geocoding GeocodingConfig `json:"geocoding" yaml:"geocoding"`
	Chart     ChartConfig     `json:"chart" yaml:"chart"`
	Storage   StorageConfig   `json:"storage" yaml:"storage"`
	Inbox     InboxConfig     `json:"inbox" yaml:"inbox"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Matching  MatchingConfig  `json:"matching" yaml:"matching"`
}

type ServerConfig struct {
	Port            int      `json:"port" yaml:"port" env:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     Duration `json:"readTimeout" yaml:"readTimeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    Duration `json:"writeTimeout" yaml:"writeTimeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout Duration `json:"shutdownTimeout" yaml:"shutdownTimeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	AllowedOrigins  []string `json:"allowedOrigins" yaml:"allowedOrigins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

type GeocodingConfig struct {
	NominatimURL        string   `json:"nominatimURL" yaml:"nominatimURL" env:"NOMINATIM_URL" validate:"omitempty,url"`
	UserAgent           string   `json:"userAgent" yaml:"userAgent" env:"NOMINATIM_USER_AGENT" validate:"required"`
	GoogleAPIKey        string   `json:"googleAPIKey" yaml:"googleAPIKey" env:"GOOGLE_GEOCODING_API_KEY"`
	GoogleURL           string   `json:"googleURL" yaml:"googleURL" env:"GOOGLE_GEOCODING_URL" validate:"omitempty,url"`
	RequestsPerSecond   float64  `json:"requestsPerSecond" yaml:"requestsPerSecond" env:"GEOCODING_RPS" validate:"gt=0"`
	Burst               int      `json:"burst" yaml:"burst" env:"GEOCODING_BURST" validate:"min=1"`
	Timeout             Duration `json:"timeout" yaml:"timeout" env:"GEOCODING_TIMEOUT"`
	BreakerFailureRatio float64  `json:"breakerFailureRatio" yaml:"breakerFailureRatio" env:"GEOCODING_BREAKER_RATIO" validate:"gt=0,lte=1"`
	BreakerMinRequests  uint32   `json:"breakerMinRequests" yaml:"breakerMinRequests" env:"GEOCODING_BREAKER_MIN_REQUESTS" validate:"min=1"`
	BreakerTimeout      Duration `json:"breakerTimeout" yaml:"breakerTimeout" env:"GEOCODING_BREAKER_TIMEOUT"`
	Gazetteer           bool     `json:"gazetteer" yaml:"gazetteer" env:"GEOCODING_GAZETTEER"`
	SearchCacheTTL      Duration `json:"searchCacheTTL" yaml:"searchCacheTTL" env:"GEOCODING_SEARCH_CACHE_TTL"`
}

type ChartConfig struct {
	Sidereal    bool   `json:"sidereal" yaml:"sidereal" env:"CHART_SIDEREAL"`
	HouseSystem string `json:"houseSystem" yaml:"houseSystem" env:"CHART_HOUSE_SYSTEM" validate:"oneof=placidus equal"`
}

type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver" env:"STORAGE_DRIVER" validate:"oneof=memory sqlite"`
	Path   string `json:"path" yaml:"path" env:"STORAGE_PATH" validate:"required_if=Driver sqlite"`
}

type InboxConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" env:"INBOX_ENABLED"`
	Dir     string   `json:"dir" yaml:"dir" env:"INBOX_DIR" validate:"required_if=Enabled true"`
	Timeout Duration `json:"timeout" yaml:"timeout" env:"INBOX_TIMEOUT"`
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Development bool   `json:"development" yaml:"development" env:"LOG_DEVELOPMENT"`
}

type MatchingConfig struct {
	Concurrency int `json:"concurrency" yaml:"concurrency" env:"MATCHING_CONCURRENCY" validate:"min=1,max=64"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
			AllowedOrigins:  []string{"*"},
		},
		Geocoding: GeocodingConfig{
			NominatimURL:        "https://nominatim.openstreetmap.org",
			UserAgent:           "synastry-service/1.0",
			GoogleURL:           "https://maps.googleapis.com/maps/api/geocode/json",
			RequestsPerSecond:   1,
			Burst:               1,
			Timeout:             Duration(10 * time.Second),
			BreakerFailureRatio: 0.6,
			BreakerMinRequests:  5,
			BreakerTimeout:      Duration(30 * time.Second),
			Gazetteer:           true,
			SearchCacheTTL:      Duration(10 * time.Minute),
		},
		Chart: ChartConfig{
			Sidereal:    true,
			HouseSystem: "placidus",
		},
		Storage: StorageConfig{
			Driver: "memory",
			Path:   "synastry.db",
		},
		Inbox: InboxConfig{
			Dir:     "inbox",
			Timeout: Duration(30 * time.Second),
		},
		Log: LogConfig{
			Level: "info",
		},
		Matching: MatchingConfig{
			Concurrency: 4,
		},
	}
}

var validate = validator.New()

// Load builds the configuration. A missing file is not an error; the
// defaults and environment still apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

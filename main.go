package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"synastry-service/api"
	"synastry-service/cache"
	"synastry-service/chart"
	"synastry-service/collector"
	"synastry-service/config"
	"synastry-service/datasource"
	"synastry-service/logging"
	"synastry-service/metrics"
	"synastry-service/models"
	"synastry-service/providers/gazetteer"
	"synastry-service/providers/google"
	"synastry-service/providers/nominatim"
	"synastry-service/service"
	"synastry-service/storage"
	"synastry-service/storage/sqlite"
)

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	configFile := flag.String("config", "config.yaml", "Path to configuration file (JSON or YAML)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()
	if envErr != nil {
		logger.Warn("no .env file loaded", zap.Error(envErr))
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("service stopped with error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collectorMetrics := metrics.NewCollector("synastry")

	geocoder, searcher := buildGeocoding(cfg.Geocoding, logger, collectorMetrics)

	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	system, err := models.ParseHouseSystem(cfg.Chart.HouseSystem)
	if err != nil {
		return err
	}
	svc := service.New(store, geocoder, searcher, chart.Options{Sidereal: cfg.Chart.Sidereal, HouseSystem: system}, logger).
		WithMetrics(collectorMetrics).
		WithMatchConcurrency(cfg.Matching.Concurrency)

	if cfg.Inbox.Enabled {
		stopInbox, err := startInbox(ctx, cfg.Inbox, svc, logger, collectorMetrics)
		if err != nil {
			return err
		}
		defer stopInbox()
	}

	server := api.NewServer(svc, api.Options{
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout.Std(),
		WriteTimeout:   cfg.Server.WriteTimeout.Std(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, logger, collectorMetrics)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildGeocoding assembles the provider chain: each remote provider is rate
// limited and behind a breaker, the gazetteer answers last, and the whole
// chain sits behind the caches.
func buildGeocoding(cfg config.GeocodingConfig, logger *zap.Logger, m *metrics.Collector) (datasource.Geocoder, datasource.Searcher) {
	breaker := datasource.DefaultBreakerConfig()
	breaker.FailureThreshold = cfg.BreakerFailureRatio
	breaker.MinRequests = cfg.BreakerMinRequests
	breaker.Timeout = cfg.BreakerTimeout.Std()

	var providers []datasource.Provider

	osm := nominatim.NewNominatimSource(cfg.NominatimURL, cfg.UserAgent, cfg.Timeout.Std())
	providers = append(providers, datasource.NewBreakerProvider(
		datasource.NewRateLimitedProvider(osm, cfg.RequestsPerSecond, cfg.Burst), breaker, logger))

	if cfg.GoogleAPIKey != "" {
		g := google.NewGoogleSource(cfg.GoogleAPIKey, cfg.GoogleURL, cfg.Timeout.Std())
		providers = append(providers, datasource.NewBreakerProvider(g, breaker, logger))
		logger.Info("google geocoding enabled")
	}
	if cfg.Gazetteer {
		providers = append(providers, gazetteer.New())
	}

	geocoders := make([]datasource.Geocoder, 0, len(providers))
	searchers := make([]datasource.Searcher, 0, len(providers))
	for _, p := range providers {
		geocoders = append(geocoders, p)
		searchers = append(searchers, p)
	}

	geocoder := cache.NewCachedGeocoder(datasource.NewFallbackGeocoder(logger, geocoders...), cache.NewGeocodeCache(), logger).
		WithRecorder(m)
	searcher := cache.NewCachedSearcher(datasource.NewFallbackSearcher(logger, searchers...), cfg.SearchCacheTTL.Std(), logger).
		WithRecorder(m)

	logger.Info("geocoding ready", zap.String("geocoder", geocoder.Name()), zap.Int("providers", len(providers)))
	return geocoder, searcher
}

func openStore(cfg config.StorageConfig) (storage.ProfileStore, error) {
	if cfg.Driver == "sqlite" {
		s, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return storage.NewMemoryStore(), nil
}

func startInbox(ctx context.Context, cfg config.InboxConfig, svc *service.Service, logger *zap.Logger, m *metrics.Collector) (func(), error) {
	pc := collector.NewProfileCollector(cfg.Dir, svc, logger)
	pc.SetFileTimeout(cfg.Timeout.Std())
	pc.SetRecorder(m)

	stop, err := pc.Start(ctx)
	if err != nil {
		return nil, err
	}

	// Drain both channels; the collector already logs each file.
	go func() {
		for range pc.OutputChannel() {
		}
	}()
	go func() {
		for range pc.ErrorChannel() {
		}
	}()
	return stop, nil
}

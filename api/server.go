// Package api serves the synastry service over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"synastry-service/models"
	"synastry-service/service"
)

// Service is the application surface the handlers call. *service.Service
// implements it.
type Service interface {
	ComputeChart(ctx context.Context, in service.ChartInput) (service.ChartResult, error)
	Synastry(ctx context.Context, first, second service.ChartInput) (models.SynastryResult, error)
	CreateProfile(ctx context.Context, in service.ProfileInput) (models.Profile, error)
	Profile(ctx context.Context, id string) (models.Profile, error)
	Profiles(ctx context.Context) ([]models.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
	NatalReport(ctx context.Context, id string) (string, error)
	ProfileSynastry(ctx context.Context, id, otherID string) (models.SynastryResult, error)
	SynastryReport(ctx context.Context, id, otherID string) (string, error)
	Matches(ctx context.Context, id string, minAge, maxAge int) ([]models.Match, error)
	SearchLocations(ctx context.Context, query string) ([]models.Location, error)
}

var _ Service = (*service.Service)(nil)

// Metrics records finished requests and serves the exposition endpoint.
// metrics.Collector implements it.
type Metrics interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
	Handler() http.Handler
}

// Options configures the HTTP server.
type Options struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// Server represents the API server
type Server struct {
	svc     Service
	logger  *zap.Logger
	metrics Metrics
	server  *http.Server
	started time.Time
}

// NewServer creates a new API server. metrics may be nil.
func NewServer(svc Service, opts Options, logger *zap.Logger, metrics Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		svc:     svc,
		logger:  logger,
		metrics: metrics,
		started: time.Now(),
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.routes(opts.AllowedOrigins),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) routes(origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(accessLog(s.logger))
	if s.metrics != nil {
		r.Use(observe(s.metrics))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealthCheck)
		r.Post("/charts", s.handleComputeChart)
		r.Post("/synastry", s.handleSynastry)

		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", s.handleCreateProfile)
			r.Get("/", s.handleListProfiles)
			r.Get("/{id}", s.handleGetProfile)
			r.Delete("/{id}", s.handleDeleteProfile)
			r.Get("/{id}/report", s.handleNatalReport)
			r.Get("/{id}/synastry/{otherID}", s.handleProfileSynastry)
			r.Get("/{id}/matches", s.handleMatches)
		})

		r.Get("/locations/search", s.handleSearchLocations)
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// Start begins the API server. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting API server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits for active ones to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

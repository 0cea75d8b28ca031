// Package service ties geocoding, chart computation, persistence and
// synastry together behind the operations the API and inbox use.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"synastry-service/chart"
	"synastry-service/datasource"
	"synastry-service/ephemeris"
	"synastry-service/models"
	"synastry-service/storage"
)

// SearchLimit is how many suggestions a location search returns.
const SearchLimit = 5

// Metrics receives domain events. metrics.Collector implements it.
type Metrics interface {
	ChartComputed(sidereal bool)
	SynastryDone(n int)
	ProfileCreated()
	GeocodeResult(outcome string)
}

type nopMetrics struct{}

func (nopMetrics) ChartComputed(bool)   {}
func (nopMetrics) SynastryDone(int)     {}
func (nopMetrics) ProfileCreated()      {}
func (nopMetrics) GeocodeResult(string) {}

// Service implements the application operations.
type Service struct {
	store       storage.ProfileStore
	geocoder    datasource.Geocoder
	searcher    datasource.Searcher
	options     chart.Options
	logger      *zap.Logger
	metrics     Metrics
	concurrency int
	now         func() time.Time
	newID       func() string
}

// New creates a service. geocoder and searcher may be the same provider.
func New(store storage.ProfileStore, geocoder datasource.Geocoder, searcher datasource.Searcher, options chart.Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:       store,
		geocoder:    geocoder,
		searcher:    searcher,
		options:     options,
		logger:      logger,
		metrics:     nopMetrics{},
		concurrency: 4,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// WithMetrics sets the metrics sink and returns s.
func (s *Service) WithMetrics(m Metrics) *Service {
	if m != nil {
		s.metrics = m
	}
	return s
}

// WithMatchConcurrency bounds parallel synastry in Matches and returns s.
func (s *Service) WithMatchConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// Options returns the chart defaults in effect.
func (s *Service) Options() chart.Options {
	return s.options
}

// locate geocodes place and counts the outcome.
func (s *Service) locate(ctx context.Context, place string) (models.Location, error) {
	loc, err := s.geocoder.Geocode(ctx, place)
	switch {
	case err == nil:
		s.metrics.GeocodeResult("ok")
		return loc, nil
	case errors.Is(err, datasource.ErrLocationUnresolved):
		s.metrics.GeocodeResult("unresolved")
		return models.Location{}, fmt.Errorf("place %q: %w", place, err)
	default:
		s.metrics.GeocodeResult("error")
		s.logger.Warn("geocoding failed", zap.String("place", place), zap.Error(err))
		return models.Location{}, fmt.Errorf("failed to geocode %q: %w", place, err)
	}
}

func (s *Service) computeChart(r chart.Request) (models.Chart, error) {
	c, err := s.options.Compute(r)
	if err != nil {
		return models.Chart{}, err
	}
	s.metrics.ChartComputed(c.Sidereal)
	return c, nil
}

// SearchLocations suggests up to SearchLimit places for a partial name.
// Queries shorter than two characters return an empty list.
func (s *Service) SearchLocations(ctx context.Context, query string) ([]models.Location, error) {
	if utf8.RuneCountInString(query) < 2 {
		return []models.Location{}, nil
	}
	locs, err := s.searcher.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search locations: %w", err)
	}
	if locs == nil {
		locs = []models.Location{}
	}
	return locs, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ephemeris.ErrInvalidInput, fmt.Sprintf(format, args...))
}

package datasource

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"synastry-service/models"
)

// FallbackGeocoder asks each geocoder in order and returns the first match.
type FallbackGeocoder struct {
	geocoders []Geocoder
	logger    *zap.Logger
}

// NewFallbackGeocoder chains geocoders, most preferred first.
func NewFallbackGeocoder(logger *zap.Logger, geocoders ...Geocoder) *FallbackGeocoder {
	return &FallbackGeocoder{geocoders: geocoders, logger: logger}
}

// Name returns the provider name
func (f *FallbackGeocoder) Name() string {
	return "Fallback"
}

// Geocode returns the first successful answer. The error wraps
// ErrLocationUnresolved only when every geocoder reported the place as
// unknown; otherwise it carries the provider failures.
func (f *FallbackGeocoder) Geocode(ctx context.Context, place string) (models.Location, error) {
	var failures []error
	for _, g := range f.geocoders {
		if err := ctx.Err(); err != nil {
			return models.Location{}, err
		}
		loc, err := g.Geocode(ctx, place)
		if err == nil {
			return loc, nil
		}
		if errors.Is(err, ErrLocationUnresolved) {
			f.logger.Debug("geocoder found no match", zap.String("provider", g.Name()), zap.String("place", place))
			continue
		}
		f.logger.Warn("geocoder failed", zap.String("provider", g.Name()), zap.String("place", place), zap.Error(err))
		failures = append(failures, fmt.Errorf("%s: %w", g.Name(), err))
	}
	if len(failures) > 0 {
		return models.Location{}, fmt.Errorf("geocode %q: %w", place, errors.Join(failures...))
	}
	return models.Location{}, fmt.Errorf("geocode %q: %w", place, ErrLocationUnresolved)
}

// FallbackSearcher returns the first non-empty suggestion list.
type FallbackSearcher struct {
	searchers []Searcher
	logger    *zap.Logger
}

// NewFallbackSearcher chains searchers, most preferred first.
func NewFallbackSearcher(logger *zap.Logger, searchers ...Searcher) *FallbackSearcher {
	return &FallbackSearcher{searchers: searchers, logger: logger}
}

// Name returns the provider name
func (f *FallbackSearcher) Name() string {
	return "Fallback"
}

// Search never fails because of a provider error; it logs and moves on, and
// returns an empty list when nobody answers.
func (f *FallbackSearcher) Search(ctx context.Context, query string, limit int) ([]models.Location, error) {
	for _, s := range f.searchers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		locs, err := s.Search(ctx, query, limit)
		if err != nil {
			f.logger.Warn("location search failed", zap.String("provider", s.Name()), zap.String("query", query), zap.Error(err))
			continue
		}
		if len(locs) > 0 {
			return locs, nil
		}
	}
	return []models.Location{}, nil
}

var (
	_ Geocoder = (*FallbackGeocoder)(nil)
	_ Searcher = (*FallbackSearcher)(nil)
)

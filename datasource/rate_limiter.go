package datasource

import (
	"context"
	"fmt"

	"synastry-service/models"

	"golang.org/x/time/rate"
)

// RateLimitedGeocoder wraps a Geocoder with rate limiting
type RateLimitedGeocoder struct {
	geocoder Geocoder
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedGeocoder creates a new rate limited geocoder
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedGeocoder(geocoder Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	return &RateLimitedGeocoder{
		geocoder: geocoder,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", geocoder.Name()),
	}
}

// Geocode resolves a place, respecting rate limits
func (r *RateLimitedGeocoder) Geocode(ctx context.Context, place string) (models.Location, error) {
	if err := wait(ctx, r.limiter); err != nil {
		return models.Location{}, err
	}
	return r.geocoder.Geocode(ctx, place)
}

// Name returns the provider name
func (r *RateLimitedGeocoder) Name() string {
	return r.name
}

// RateLimitedProvider throttles both geocoding and search through a single
// limiter, since providers such as Nominatim count every request against one
// quota.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider creates a provider that implements both interfaces with rate limiting
func NewRateLimitedProvider(provider Provider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// Geocode implements Geocoder with rate limiting
func (r *RateLimitedProvider) Geocode(ctx context.Context, place string) (models.Location, error) {
	if err := wait(ctx, r.limiter); err != nil {
		return models.Location{}, err
	}
	return r.provider.Geocode(ctx, place)
}

// Search implements Searcher with rate limiting
func (r *RateLimitedProvider) Search(ctx context.Context, query string, limit int) ([]models.Location, error) {
	if err := wait(ctx, r.limiter); err != nil {
		return nil, err
	}
	return r.provider.Search(ctx, query, limit)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

func wait(ctx context.Context, limiter *rate.Limiter) error {
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait canceled: %v", ErrUnavailable, err)
	}
	return nil
}

// Verify that our rate limited types implement the required interfaces
var (
	_ Geocoder = (*RateLimitedGeocoder)(nil)
	_ Provider = (*RateLimitedProvider)(nil)
)

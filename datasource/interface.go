package datasource

import (
	"context"
	"errors"

	"synastry-service/models"
)

var (
	// ErrLocationUnresolved means the place name matched nothing. It is a
	// definite answer, not a provider failure.
	ErrLocationUnresolved = errors.New("location unresolved")

	// ErrUnavailable means a provider could not be asked: its breaker is
	// open or the caller gave up waiting for the rate limiter.
	ErrUnavailable = errors.New("geocoding provider unavailable")
)

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	// Geocode returns the best match for place or an error wrapping
	// ErrLocationUnresolved when nothing matches
	Geocode(ctx context.Context, place string) (models.Location, error)

	// Name returns the provider's name
	Name() string
}

// Searcher suggests locations for a partial place name.
type Searcher interface {
	// Search returns up to limit candidates, best first
	Search(ctx context.Context, query string, limit int) ([]models.Location, error)

	// Name returns the provider's name
	Name() string
}

// Provider is implemented by sources that can do both.
type Provider interface {
	Geocoder
	Searcher
}

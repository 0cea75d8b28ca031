package datasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"synastry-service/models"
)

// BreakerConfig holds the circuit breaker thresholds for a remote provider.
type BreakerConfig struct {
	MaxRequests      uint32        // trial requests allowed while half-open
	Interval         time.Duration // closed-state counter reset period
	Timeout          time.Duration // open-state duration before probing
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig trips after 5 requests with 60% failing.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// BreakerProvider stops calling a failing provider for a while. Unresolved
// places and caller cancellations do not count as failures.
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
	name     string
}

// NewBreakerProvider wraps provider with a circuit breaker.
func NewBreakerProvider(provider Provider, cfg BreakerConfig, logger *zap.Logger) *BreakerProvider {
	name := provider.Name()
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("geocoder circuit breaker state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrLocationUnresolved) ||
				errors.Is(err, context.Canceled)
		},
	})
	return &BreakerProvider{
		provider: provider,
		cb:       cb,
		name:     fmt.Sprintf("%s [Breaker]", name),
	}
}

// Geocode forwards to the provider unless the breaker is open.
func (b *BreakerProvider) Geocode(ctx context.Context, place string) (models.Location, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.provider.Geocode(ctx, place)
	})
	if err != nil {
		return models.Location{}, breakerError(err)
	}
	return res.(models.Location), nil
}

// Search forwards to the provider unless the breaker is open.
func (b *BreakerProvider) Search(ctx context.Context, query string, limit int) ([]models.Location, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.provider.Search(ctx, query, limit)
	})
	if err != nil {
		return nil, breakerError(err)
	}
	return res.([]models.Location), nil
}

// Name returns the provider name
func (b *BreakerProvider) Name() string {
	return b.name
}

// State exposes the breaker state for health reporting.
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}

func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

var _ Provider = (*BreakerProvider)(nil)

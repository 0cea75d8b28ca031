package datasource

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"synastry-service/models"
)

type fakeProvider struct {
	name  string
	loc   models.Location
	locs  []models.Location
	err   error
	calls atomic.Int32
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Geocode(ctx context.Context, place string) (models.Location, error) {
	f.calls.Add(1)
	if f.err != nil {
		return models.Location{}, f.err
	}
	return f.loc, nil
}

func (f *fakeProvider) Search(ctx context.Context, query string, limit int) ([]models.Location, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.locs, nil
}

var paris = models.Location{DisplayName: "Paris", Latitude: 48.8566, Longitude: 2.3522}

func TestRateLimitedProvider(t *testing.T) {
	p := &fakeProvider{name: "fake", loc: paris}
	rl := NewRateLimitedProvider(p, 0.001, 1)
	assert.Equal(t, "fake [Rate Limited]", rl.Name())

	loc, err := rl.Geocode(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, paris, loc)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = rl.Search(ctx, "Paris", 5)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestRateLimitedGeocoder(t *testing.T) {
	p := &fakeProvider{name: "fake", loc: paris}
	rl := NewRateLimitedGeocoder(p, 1000, 2)
	for i := 0; i < 3; i++ {
		_, err := rl.Geocode(context.Background(), "Paris")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), p.calls.Load())
}

func testBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

func TestBreakerProviderTrips(t *testing.T) {
	p := &fakeProvider{name: "flaky", err: errors.New("connection refused")}
	b := NewBreakerProvider(p, testBreakerConfig(), zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := b.Geocode(context.Background(), "Paris")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Search(context.Background(), "Paris", 5)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), p.calls.Load())
}

func TestBreakerIgnoresUnresolved(t *testing.T) {
	p := &fakeProvider{name: "strict", err: ErrLocationUnresolved}
	b := NewBreakerProvider(p, testBreakerConfig(), zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := b.Geocode(context.Background(), "Atlantis")
		assert.ErrorIs(t, err, ErrLocationUnresolved)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, int32(5), p.calls.Load())
}

func TestBreakerPassesResults(t *testing.T) {
	p := &fakeProvider{name: "ok", loc: paris, locs: []models.Location{paris}}
	b := NewBreakerProvider(p, DefaultBreakerConfig(), zap.NewNop())

	loc, err := b.Geocode(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, paris, loc)

	locs, err := b.Search(context.Background(), "Par", 5)
	require.NoError(t, err)
	assert.Equal(t, []models.Location{paris}, locs)
}

func TestFallbackGeocoder(t *testing.T) {
	unknown := &fakeProvider{name: "a", err: ErrLocationUnresolved}
	known := &fakeProvider{name: "b", loc: paris}
	down := &fakeProvider{name: "c", err: ErrUnavailable}

	t.Run("first match wins", func(t *testing.T) {
		f := NewFallbackGeocoder(zap.NewNop(), unknown, known, down)
		loc, err := f.Geocode(context.Background(), "Paris")
		require.NoError(t, err)
		assert.Equal(t, paris, loc)
		assert.Equal(t, int32(0), down.calls.Load())
	})

	t.Run("all unresolved", func(t *testing.T) {
		f := NewFallbackGeocoder(zap.NewNop(), unknown, unknown)
		_, err := f.Geocode(context.Background(), "Atlantis")
		assert.ErrorIs(t, err, ErrLocationUnresolved)
	})

	t.Run("provider failure is not unresolved", func(t *testing.T) {
		f := NewFallbackGeocoder(zap.NewNop(), down, unknown)
		_, err := f.Geocode(context.Background(), "Paris")
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.NotErrorIs(t, err, ErrLocationUnresolved)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := NewFallbackGeocoder(zap.NewNop(), known)
		_, err := f.Geocode(ctx, "Paris")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFallbackSearcher(t *testing.T) {
	empty := &fakeProvider{name: "empty"}
	broken := &fakeProvider{name: "broken", err: errors.New("boom")}
	full := &fakeProvider{name: "full", locs: []models.Location{paris}}

	f := NewFallbackSearcher(zap.NewNop(), broken, empty, full)
	locs, err := f.Search(context.Background(), "Par", 5)
	require.NoError(t, err)
	assert.Equal(t, []models.Location{paris}, locs)

	none, err := NewFallbackSearcher(zap.NewNop(), empty).Search(context.Background(), "Par", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

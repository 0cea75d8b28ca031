package gazetteer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synastry-service/datasource"
)

func TestGeocode(t *testing.T) {
	g := New()
	tests := []struct {
		query string
		name  string
	}{
		{"Paris", "Paris, France"},
		{"paris, FRANCE", "Paris, France"},
		{"sao paulo", "São Paulo, Brazil"},
		{"New York, USA", "New York, NY, USA"},
		{"  singapore ", "Singapore"},
	}
	for _, tt := range tests {
		loc, err := g.Geocode(context.Background(), tt.query)
		require.NoError(t, err, tt.query)
		assert.Equal(t, tt.name, loc.DisplayName)
		assert.Equal(t, tt.query, loc.Query)
		assert.Equal(t, "Gazetteer", loc.Provider)
	}

	loc, err := g.Geocode(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, 51.5074, loc.Latitude)
	assert.Equal(t, -0.1278, loc.Longitude)
}

func TestGeocodeUnresolved(t *testing.T) {
	g := New()
	for _, q := range []string{"Paris, Texas", "Fresno", "", " , "} {
		_, err := g.Geocode(context.Background(), q)
		assert.ErrorIs(t, err, datasource.ErrLocationUnresolved, q)
	}
}

func TestSearch(t *testing.T) {
	g := New()

	locs, err := g.Search(context.Background(), "san", 10)
	require.NoError(t, err)
	names := make([]string, 0, len(locs))
	for _, l := range locs {
		names = append(names, l.DisplayName)
	}
	assert.Equal(t, []string{
		"San Antonio, TX, USA",
		"San Diego, CA, USA",
		"San Jose, CA, USA",
		"San Francisco, CA, USA",
		"Santiago, Chile",
	}, names)

	locs, err = g.Search(context.Background(), "DON", 5)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "London, UK", locs[0].DisplayName)

	locs, err = g.Search(context.Background(), "san", 2)
	require.NoError(t, err)
	assert.Len(t, locs, 2)

	locs, err = g.Search(context.Background(), "s", 5)
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestCustomCities(t *testing.T) {
	g := New(City{"Fresno, CA, USA", 36.7378, -119.7871})
	loc, err := g.Geocode(context.Background(), "Fresno, CA")
	require.NoError(t, err)
	assert.Equal(t, 36.7378, loc.Latitude)
}

package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synastry-service/datasource"
)

func newServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const twoResults = `{"status":"OK","results":[
	{"formatted_address":"London, UK","geometry":{"location":{"lat":51.5074,"lng":-0.1278}}},
	{"formatted_address":"London, ON, Canada","geometry":{"location":{"lat":42.9849,"lng":-81.2453}}}
]}`

func TestGeocode(t *testing.T) {
	srv := newServer(t, twoResults)
	loc, err := NewGoogleSource("secret", srv.URL, 0).Geocode(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, "London, UK", loc.DisplayName)
	assert.Equal(t, 51.5074, loc.Latitude)
	assert.Equal(t, -0.1278, loc.Longitude)
	assert.Equal(t, "London", loc.Query)
	assert.Equal(t, "Google", loc.Provider)
}

func TestGeocodeZeroResults(t *testing.T) {
	srv := newServer(t, `{"status":"ZERO_RESULTS","results":[]}`)
	_, err := NewGoogleSource("secret", srv.URL, 0).Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, datasource.ErrLocationUnresolved)
}

func TestGeocodeFailures(t *testing.T) {
	srv := newServer(t, `{"status":"REQUEST_DENIED","error_message":"bad key"}`)

	_, err := NewGoogleSource("", srv.URL, 0).Geocode(context.Background(), "London")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewGoogleSource("wrong", srv.URL, 0).Geocode(context.Background(), "London")
	assert.ErrorContains(t, err, "403")

	_, err = NewGoogleSource("secret", srv.URL, 0).Geocode(context.Background(), "London")
	assert.ErrorContains(t, err, "REQUEST_DENIED")
	assert.NotErrorIs(t, err, datasource.ErrLocationUnresolved)
}

func TestSearch(t *testing.T) {
	srv := newServer(t, twoResults)
	src := NewGoogleSource("secret", srv.URL, 0)

	locs, err := src.Search(context.Background(), "London", 1)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "London, UK", locs[0].DisplayName)

	locs, err = src.Search(context.Background(), "L", 5)
	require.NoError(t, err)
	assert.Empty(t, locs)
}

package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synastry-service/datasource"
)

type recorder struct {
	mu   sync.Mutex
	reqs []*http.Request
}

func (r *recorder) all() []*http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*http.Request(nil), r.reqs...)
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, r)
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestGeocode(t *testing.T) {
	srv, seen := newServer(t, http.StatusOK, `[{"display_name":"Fresno, Fresno County, California, United States","lat":"36.7378","lon":"-119.7871"}]`)
	src := NewNominatimSource(srv.URL, "test-agent/1.0", time.Second)

	loc, err := src.Geocode(context.Background(), "Fresno, CA")
	require.NoError(t, err)
	assert.Equal(t, "Fresno, CA", loc.Query)
	assert.Equal(t, 36.7378, loc.Latitude)
	assert.Equal(t, -119.7871, loc.Longitude)
	assert.Equal(t, "Nominatim", loc.Provider)

	reqs := seen.all()
	require.Len(t, reqs, 1)
	r := reqs[0]
	assert.Equal(t, "/search", r.URL.Path)
	assert.Equal(t, "json", r.URL.Query().Get("format"))
	assert.Equal(t, "Fresno, CA", r.URL.Query().Get("q"))
	assert.Equal(t, "1", r.URL.Query().Get("limit"))
	assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
}

func TestGeocodeNoMatch(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `[]`)
	_, err := NewNominatimSource(srv.URL, "", 0).Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, datasource.ErrLocationUnresolved)
}

func TestGeocodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"bad json", http.StatusOK, `{"not":"an array"}`},
		{"bad latitude", http.StatusOK, `[{"display_name":"x","lat":"north","lon":"1"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.status, tt.body)
			_, err := NewNominatimSource(srv.URL, "", 0).Geocode(context.Background(), "Paris")
			require.Error(t, err)
			assert.NotErrorIs(t, err, datasource.ErrLocationUnresolved)
		})
	}
}

func TestSearch(t *testing.T) {
	srv, seen := newServer(t, http.StatusOK, `[
		{"display_name":"Paris, France","lat":"48.8566","lon":"2.3522"},
		{"display_name":"Paris, Texas","lat":"33.6609","lon":"-95.5555"}
	]`)
	src := NewNominatimSource(srv.URL, "", 0)

	locs, err := src.Search(context.Background(), "Paris", 0)
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "Paris, Texas", locs[1].DisplayName)
	assert.Equal(t, "5", seen.all()[0].URL.Query().Get("limit"))

	short, err := src.Search(context.Background(), "P", 5)
	require.NoError(t, err)
	assert.Empty(t, short)
	assert.Len(t, seen.all(), 1, "short queries are not sent")
}

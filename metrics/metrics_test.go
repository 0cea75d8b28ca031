package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollectorCounters(t *testing.T) {
	c := NewCollector("synastry")

	c.ObserveHTTP(http.MethodGet, "/api/health", 200, 5*time.Millisecond)
	c.ObserveHTTP(http.MethodGet, "/api/health", 200, 5*time.Millisecond)
	c.ChartComputed(true)
	c.ChartComputed(false)
	c.ChartComputed(true)
	c.SynastryDone(3)
	c.ProfileCreated()
	c.InboxFile(true)
	c.InboxFile(false)
	c.GeocodeResult("ok")
	c.CacheLookup("geocode", true)
	c.CacheLookup("geocode", false)
	c.CacheLookup("geocode", false)

	body := scrape(t, c)
	for _, line := range []string{
		`synastry_http_requests_total{method="GET",route="/api/health",status="200"} 2`,
		`synastry_http_request_duration_seconds_count{method="GET",route="/api/health"} 2`,
		`synastry_charts_computed_total{zodiac="sidereal"} 2`,
		`synastry_charts_computed_total{zodiac="tropical"} 1`,
		`synastry_synastry_computed_total 3`,
		`synastry_profiles_created_total 1`,
		`synastry_inbox_files_total{result="error"} 1`,
		`synastry_inbox_files_total{result="ok"} 1`,
		`synastry_geocode_results_total{outcome="ok"} 1`,
		`synastry_cache_lookups_total{cache="geocode",result="hit"} 1`,
		`synastry_cache_lookups_total{cache="geocode",result="miss"} 2`,
	} {
		assert.Contains(t, body, line)
	}
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("synastry")
	b := NewCollector("synastry")
	a.ProfileCreated()

	assert.Contains(t, scrape(t, a), "synastry_profiles_created_total 1")
	assert.Contains(t, scrape(t, b), "synastry_profiles_created_total 0")
	assert.NotNil(t, a.Registry())
}

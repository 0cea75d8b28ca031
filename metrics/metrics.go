// Package metrics exposes the service's Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application. Each
// Collector has its own registry, so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Domain metrics
	ChartsComputed   *prometheus.CounterVec
	SynastryComputed prometheus.Counter
	ProfilesCreated  prometheus.Counter
	InboxFiles       *prometheus.CounterVec

	// Geocoding metrics
	GeocodeResults *prometheus.CounterVec
	CacheLookups   *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ChartsComputed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "charts_computed_total",
				Help:      "Total number of natal charts computed",
			},
			[]string{"zodiac"},
		),
		SynastryComputed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "synastry_computed_total",
				Help:      "Total number of synastry comparisons",
			},
		),
		ProfilesCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "profiles_created_total",
				Help:      "Total number of profiles created",
			},
		),
		InboxFiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "inbox_files_total",
				Help:      "Inbox files processed by result",
			},
			[]string{"result"},
		),
		GeocodeResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "geocode_results_total",
				Help:      "Geocoding lookups by outcome",
			},
			[]string{"outcome"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.ChartsComputed,
		c.SynastryComputed,
		c.ProfilesCreated,
		c.InboxFiles,
		c.GeocodeResults,
		c.CacheLookups,
	)
	return c
}

// ObserveHTTP records one finished request. route is the chi route pattern.
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ChartComputed counts a chart.
func (c *Collector) ChartComputed(sidereal bool) {
	zodiac := "tropical"
	if sidereal {
		zodiac = "sidereal"
	}
	c.ChartsComputed.WithLabelValues(zodiac).Inc()
}

// SynastryDone counts n synastry comparisons.
func (c *Collector) SynastryDone(n int) {
	c.SynastryComputed.Add(float64(n))
}

// ProfileCreated counts a profile.
func (c *Collector) ProfileCreated() {
	c.ProfilesCreated.Inc()
}

// InboxFile counts an inbox file.
func (c *Collector) InboxFile(ok bool) {
	if ok {
		c.InboxFiles.WithLabelValues("ok").Inc()
		return
	}
	c.InboxFiles.WithLabelValues("error").Inc()
}

// GeocodeResult counts a geocode outcome: "ok", "unresolved" or "error".
func (c *Collector) GeocodeResult(outcome string) {
	c.GeocodeResults.WithLabelValues(outcome).Inc()
}

// CacheLookup implements cache.Recorder.
func (c *Collector) CacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.CacheLookups.WithLabelValues(cache, result).Inc()
}

// Registry returns the Prometheus registry for this collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Package metrics exposes the BFF's Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names
const (
	MetricHTTPRequestsTotal      = "constructpro_http_requests_total"
	MetricHTTPDurationSeconds    = "constructpro_http_request_duration_seconds"
	MetricQueryCacheTotal        = "constructpro_query_cache_total"
	MetricPostalLookupsTotal     = "constructpro_postal_lookups_total"
	MetricUpstreamRequestsTotal  = "constructpro_upstream_requests_total"
	MetricUpstreamDurationSecond = "constructpro_upstream_request_duration_seconds"
)

// Registry owns a private Prometheus registry and the dashboard's collectors.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Registry struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	queryCache       *prometheus.CounterVec
	postalLookups    *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewRegistry creates the registry. Go runtime and process collectors are
// included.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "Total number of BFF HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	r.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricHTTPDurationSeconds,
			Help:    "Duration of BFF HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	r.queryCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricQueryCacheTotal,
			Help: "List query cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
	r.postalLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricPostalLookupsTotal,
			Help: "Postal code lookups by result (found, not_found, error).",
		},
		[]string{"result"},
	)
	r.upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricUpstreamRequestsTotal,
			Help: "Calls to the ConstructPro API by resource and status.",
		},
		[]string{"method", "resource", "status"},
	)
	r.upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricUpstreamDurationSecond,
			Help:    "Duration of calls to the ConstructPro API in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.queryCache,
		r.postalLookups,
		r.upstreamRequests,
		r.upstreamDuration,
	)
	return r
}

// Handler serves the metrics in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one BFF request
func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveCache records a query cache outcome
func (r *Registry) ObserveCache(result string) {
	r.queryCache.WithLabelValues(result).Inc()
}

// ObservePostalLookup records a postal lookup outcome
func (r *Registry) ObservePostalLookup(result string) {
	r.postalLookups.WithLabelValues(result).Inc()
}

// ObserveUpstream records one call to the upstream API. status 0 means the
// request never got a response.
func (r *Registry) ObserveUpstream(method, resource string, status int, elapsed time.Duration) {
	r.upstreamRequests.WithLabelValues(method, resource, strconv.Itoa(status)).Inc()
	r.upstreamDuration.WithLabelValues(resource).Observe(elapsed.Seconds())
}

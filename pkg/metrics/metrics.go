package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector aggregates client-side instrumentation: outbound request volume
// and latency plus cache behaviour per entity. A nil *Collector is a no-op
// so callers never need to guard their observations.
type Collector struct {
	requests     *prometheus.CounterVec
	requestTimes *prometheus.HistogramVec

	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	cacheInvalidations *prometheus.CounterVec
}

// New registers the client collectors on the given registerer.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "records_client_requests_total",
			Help: "Outbound requests to the records service.",
		}, []string{"method", "path", "status"}),
		requestTimes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "records_client_request_duration_seconds",
			Help:    "Outbound request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "records_client_cache_hits_total",
			Help: "Reads served from the keyed cache.",
		}, []string{"entity"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "records_client_cache_misses_total",
			Help: "Reads that required a fetch.",
		}, []string{"entity"}),
		cacheInvalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "records_client_cache_invalidations_total",
			Help: "Entity-wide cache invalidations triggered by writes.",
		}, []string{"entity"}),
	}

	if reg != nil {
		reg.MustRegister(c.requests, c.requestTimes, c.cacheHits, c.cacheMisses, c.cacheInvalidations)
	}
	return c
}

// ObserveRequest records one outbound HTTP exchange. A zero status means the
// connection could not be established.
func (c *Collector) ObserveRequest(method, path string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.requestTimes.WithLabelValues(method, path).Observe(duration.Seconds())
}

// CacheHit records a read served without a fetch.
func (c *Collector) CacheHit(entity string) {
	if c == nil {
		return
	}
	c.cacheHits.WithLabelValues(entity).Inc()
}

// CacheMiss records a read that triggered a fetch.
func (c *Collector) CacheMiss(entity string) {
	if c == nil {
		return
	}
	c.cacheMisses.WithLabelValues(entity).Inc()
}

// CacheInvalidation records an entity-wide discard.
func (c *Collector) CacheInvalidation(entity string) {
	if c == nil {
		return
	}
	c.cacheInvalidations.WithLabelValues(entity).Inc()
}

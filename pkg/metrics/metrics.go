package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Count of handled HTTP requests.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of handled HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// Observe records one completed request.
func (h *HTTPMetrics) Observe(method, route string, status string, elapsed time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	method = normalizeLabel(method)
	route = normalizeLabel(route)
	h.requests.WithLabelValues(method, route, normalizeLabel(status)).Inc()
	h.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// CollectionMetrics tracks collection store operations and the writes dropped
// under the best-effort failure policy.
type CollectionMetrics struct {
	ops     *prometheus.CounterVec
	dropped *prometheus.CounterVec
}

// NewCollectionMetrics registers the collection metrics on the provided registerer.
func NewCollectionMetrics(reg prometheus.Registerer) *CollectionMetrics {
	if reg == nil {
		return &CollectionMetrics{}
	}
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_operations_total",
		Help: "Collection store operations by collection and operation.",
	}, []string{"collection", "op"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_dropped_writes_total",
		Help: "Writes dropped because the backing store rejected them.",
	}, []string{"collection"})
	reg.MustRegister(ops, dropped)
	return &CollectionMetrics{ops: ops, dropped: dropped}
}

// IncOp increments the operation counter for the named collection.
func (c *CollectionMetrics) IncOp(collection, op string) {
	if c == nil || c.ops == nil {
		return
	}
	c.ops.WithLabelValues(normalizeLabel(collection), normalizeLabel(op)).Inc()
}

// IncDropped increments the dropped-write counter for the named collection.
func (c *CollectionMetrics) IncDropped(collection string) {
	if c == nil || c.dropped == nil {
		return
	}
	c.dropped.WithLabelValues(normalizeLabel(collection)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

// Package metrics exposes Prometheus collectors for the HTTP layer and the
// client query cache. A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clientdesk"

// Recorder owns the registered collectors.
type Recorder struct {
	gatherer prometheus.Gatherer

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	cacheRequests prometheus.Counter
	cacheFetches  *prometheus.CounterVec
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		gatherer: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		cacheRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query_cache",
			Name:      "requests_total",
			Help:      "Client filter lookups served by the query cache.",
		}),
		cacheFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query_cache",
			Name:      "fetches_total",
			Help:      "Underlying fetches issued by the query cache, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		r.httpRequests,
		r.httpDuration,
		r.cacheRequests,
		r.cacheFetches,
		collectors.NewGoCollector(),
	)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

// ObserveHTTP records one completed request.
func (r *Recorder) ObserveHTTP(method string, code int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	r.httpDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// CacheRequest counts one lookup, whether or not it reached the source.
func (r *Recorder) CacheRequest() {
	if r == nil {
		return
	}
	r.cacheRequests.Inc()
}

// CacheFetch counts one underlying fetch.
func (r *Recorder) CacheFetch(err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.cacheFetches.WithLabelValues(outcome).Inc()
}

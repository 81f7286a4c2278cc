// Package metrics exposes Prometheus counters for the display engine and
// the feed client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "controlroom"

// Recorder implements engine.Observer and feed.RequestObserver
type Recorder struct {
	registry *prometheus.Registry

	snapshots    *prometheus.CounterVec
	screens      prometheus.Gauge
	transitions  *prometheus.CounterVec
	ignored      *prometheus.CounterVec
	requests     *prometheus.CounterVec
	requestTimes prometheus.Histogram
}

// New creates a Recorder registered on its own registry
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		snapshots: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_snapshots_total",
			Help:      "Feed snapshots applied to the display, by result.",
		}, []string{"result"}),
		screens: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "screens_current",
			Help:      "Screens in the latest snapshot, map tile included.",
		}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_transitions_total",
			Help:      "View transitions, by source and target view and reason.",
		}, []string{"from", "to", "reason"}),
		ignored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_ignored_total",
			Help:      "Events that matched no rule in the current view.",
		}, []string{"event"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "HTTP attempts against the feed, by result.",
		}, []string{"result"}),
		requestTimes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_request_duration_seconds",
			Help:      "Duration of HTTP attempts against the feed.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Snapshot records a snapshot reaching the engine
func (r *Recorder) Snapshot(screens int, err error) {
	r.snapshots.WithLabelValues(result(err)).Inc()
	if err != nil {
		r.screens.Set(0)
		return
	}
	r.screens.Set(float64(screens))
}

// Transition records a view change
func (r *Recorder) Transition(from, to, reason string) {
	r.transitions.WithLabelValues(from, to, reason).Inc()
}

// Ignored records an event with no matching rule
func (r *Recorder) Ignored(event string) {
	r.ignored.WithLabelValues(event).Inc()
}

// ObserveRequest records one feed HTTP attempt
func (r *Recorder) ObserveRequest(d time.Duration, err error) {
	r.requests.WithLabelValues(result(err)).Inc()
	r.requestTimes.Observe(d.Seconds())
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

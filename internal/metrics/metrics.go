package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Call outcomes used as the status label.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// GatewayMetrics records gateway round trips.
type GatewayMetrics interface {
	ObserveCall(operation, status string, duration time.Duration)
}

// Noop drops every observation.
type Noop struct{}

func (Noop) ObserveCall(string, string, time.Duration) {}

// Prom implements GatewayMetrics with a counter and a latency histogram.
type Prom struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewProm registers the gateway collectors on registerer, or on the default
// registerer when nil. Collectors already registered under the same names
// are reused.
func NewProm(namespace string, registerer prometheus.Registerer) (*Prom, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "calls_total",
		Help:      "Remote media gateway calls by operation and status",
	}, []string{"operation", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "call_duration_seconds",
		Help:      "Remote media gateway call latency by operation",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	var err error
	if calls, err = register(registerer, calls); err != nil {
		return nil, err
	}
	if latency, err = register(registerer, latency); err != nil {
		return nil, err
	}
	return &Prom{calls: calls, latency: latency}, nil
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return collector, err
	}
	return collector, nil
}

func (p *Prom) ObserveCall(operation, status string, duration time.Duration) {
	p.calls.WithLabelValues(operation, status).Inc()
	p.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

// Handler exposes the metrics gathered by gatherer, or the default gatherer
// when nil.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder reports dispatch metrics using Prometheus primitives.
type PrometheusRecorder struct {
	dispatches *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

func NewPrometheusRecorder(registry *prometheus.Registry) (*PrometheusRecorder, error) {
	if registry == nil {
		return nil, fmt.Errorf("prometheus registry is nil")
	}

	r := &PrometheusRecorder{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hpn_llm_dispatch_total",
			Help: "Total number of provider dispatches by outcome",
		}, []string{"provider", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hpn_llm_dispatch_duration_seconds",
			Help:    "Provider round-trip latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}

	for _, collector := range []prometheus.Collector{r.dispatches, r.durations} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) ObserveDispatch(provider string, outcome string, duration time.Duration) {
	r.dispatches.WithLabelValues(provider, outcome).Inc()
	r.durations.WithLabelValues(provider).Observe(duration.Seconds())
}

// Handler exposes registry in the Prometheus text format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

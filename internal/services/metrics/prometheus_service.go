package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PromCollector struct {
	hist *prometheus.HistogramVec
	cnt  *prometheus.CounterVec
}

func NewPromCollector(registerer prometheus.Registerer) *PromCollector {
	hist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "movies_api",
			Name:      "cache_operation_duration_seconds",
			Help:      "Cache operation latencies",
		},
		[]string{"operation"},
	)
	cnt := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movies_api",
			Name:      "cache_operations_total",
			Help:      "Cache operation counts",
		},
		[]string{"operation", "result"},
	)
	registerer.MustRegister(hist, cnt)
	return &PromCollector{hist: hist, cnt: cnt}
}

func (p *PromCollector) ObserveLatency(operation string, d time.Duration) {
	p.hist.WithLabelValues(operation).Observe(d.Seconds())
}

func (p *PromCollector) IncrementCounter(operation string, labels ...string) {
	p.cnt.WithLabelValues(append([]string{operation}, labels...)...).Inc()
}

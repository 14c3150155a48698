package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cacheaside"

type Prometheus struct {
	LookupCounter       prometheus.Counter
	CacheHitCounter     prometheus.Counter
	CacheMissCounter    prometheus.Counter
	WriteFailureCounter prometheus.Counter
}

func NewPrometheusClient(registerer prometheus.Registerer) *Prometheus {
	prom := &Prometheus{
		LookupCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lookup_counter",
				Help:      "All get-or-compute calls",
			}),
		CacheHitCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hit_counter",
				Help:      "Cache hit count",
			}),
		CacheMissCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_miss_counter",
				Help:      "Cache miss count, one per computation",
			}),
		WriteFailureCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "write_failure_counter",
				Help:      "Computed values that could not be written back",
			}),
	}

	registerer.MustRegister(prom.LookupCounter, prom.CacheHitCounter, prom.CacheMissCounter, prom.WriteFailureCounter)

	return prom
}

func (prom *Prometheus) lookup() {
	if prom != nil {
		prom.LookupCounter.Inc()
	}
}

func (prom *Prometheus) hit() {
	if prom != nil {
		prom.CacheHitCounter.Inc()
	}
}

func (prom *Prometheus) miss() {
	if prom != nil {
		prom.CacheMissCounter.Inc()
	}
}

func (prom *Prometheus) writeFailure() {
	if prom != nil {
		prom.WriteFailureCounter.Inc()
	}
}

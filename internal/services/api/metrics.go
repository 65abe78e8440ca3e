package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	fallbacks prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shams_calc_requests_total",
			Help: "Calculator requests by calculator and outcome.",
		}, []string{"calculator", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shams_calc_duration_seconds",
			Help:    "Calculator request duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"calculator"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shams_explanation_fallbacks_total",
			Help: "Explanations served from the fixed template instead of the service.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.fallbacks)
	return m
}

func (m *metrics) observe(calculator, outcome string, start time.Time) {
	m.requests.WithLabelValues(calculator, outcome).Inc()
	m.duration.WithLabelValues(calculator).Observe(time.Since(start).Seconds())
}

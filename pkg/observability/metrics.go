package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeOverflow = "overflow"
	OutcomeTooLarge = "too_large"
	OutcomeError    = "error"
)

// Metrics groups the collectors exported by the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	evaluations *prometheus.CounterVec
	cacheHits   prometheus.Counter
	duration    prometheus.Histogram
	digits      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tetrator_evaluations_total",
				Help: "Total number of tetration evaluations by outcome",
			},
			[]string{"outcome"},
		),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tetrator_cache_hits_total",
			Help: "Evaluations answered from the result cache",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tetrator_evaluation_duration_seconds",
			Help:    "Duration of tetration evaluations",
			Buckets: prometheus.ExponentialBuckets(0.00001, 10, 8),
		}),
		digits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tetrator_result_digits",
			Help:    "Decimal digit count of successful results",
			Buckets: prometheus.ExponentialBuckets(1, 10, 10),
		}),
	}
	reg.MustRegister(m.evaluations, m.cacheHits, m.duration, m.digits)
	return m
}

// Observe records one finished evaluation.
func (m *Metrics) Observe(outcome string, elapsed time.Duration, digits int, cached bool) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(outcome).Inc()
	if cached {
		m.cacheHits.Inc()
		return
	}
	m.duration.Observe(elapsed.Seconds())
	if outcome == OutcomeOK {
		m.digits.Observe(float64(digits))
	}
}

package recaptcha

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors updated by Verify.
type Metrics struct {
	verifications *prometheus.CounterVec
	errorCodes    *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewMetrics registers the verification collectors on reg, falling back to
// the default registerer. Collectors already registered by another client
// are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	verifications, err := registerCollector(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recaptcha_verifications_total",
			Help: "Total number of token verifications by outcome",
		},
		[]string{"version", "outcome"},
	))
	if err != nil {
		return nil, err
	}
	errorCodes, err := registerCollector(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recaptcha_error_codes_total",
			Help: "Error codes recorded by token verifications",
		},
		[]string{"code"},
	))
	if err != nil {
		return nil, err
	}
	duration, err := registerCollector(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recaptcha_verify_duration_seconds",
			Help:    "Duration of verification requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"version"},
	))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		verifications: verifications,
		errorCodes:    errorCodes,
		duration:      duration,
	}, nil
}

// MustNewMetrics is like NewMetrics but panics on registration errors.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	m, err := NewMetrics(reg)
	if err != nil {
		panic(err)
	}
	return m
}

func registerCollector[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

func (m *Metrics) observe(version Version, outcome string, codes []string, elapsed time.Duration, remote bool) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(string(version), outcome).Inc()
	for _, code := range codes {
		m.errorCodes.WithLabelValues(code).Inc()
	}
	if remote {
		m.duration.WithLabelValues(string(version)).Observe(elapsed.Seconds())
	}
}

package maskapi

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Edit outcomes reported in the outcome label.
const (
	OutcomeAccepted  = "accepted"
	OutcomeComplete  = "complete"
	OutcomeRejected  = "rejected"
	OutcomeUnchanged = "unchanged"
	OutcomeError     = "error"
)

type metrics struct {
	editsTotal      *prometheus.CounterVec
	conformDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	m := &metrics{
		editsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "inputmask_edits_total", Help: "Total conformed edits"},
			[]string{"preset", "outcome"},
		),
		conformDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inputmask_conform_duration_seconds",
				Help:    "Time spent conforming one edit",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"preset"},
		),
	}
	m.editsTotal = register(reg, m.editsTotal)
	m.conformDuration = register(reg, m.conformDuration)
	return m
}

// register reuses a collector already registered by another handler built
// on the same Registerer.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *metrics) observe(preset, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.editsTotal.WithLabelValues(preset, outcome).Inc()
	m.conformDuration.WithLabelValues(preset).Observe(elapsed.Seconds())
}

// Package metrics exports Prometheus collectors fed by runner lifecycle hooks.
package metrics

import (
	"context"

	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors that report command activity.
type Metrics struct {
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	active     prometheus.Gauge
}

// New constructs Metrics and registers the collectors with reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "runcmd",
				Name:      "executions_total",
				Help:      "Total number of routed command executions by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "runcmd",
				Name:      "execution_duration_seconds",
				Help:      "Wall-clock duration of completed command executions.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"exit_code"},
		),
		active: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "runcmd",
				Name:      "executions_active",
				Help:      "Number of commands currently running.",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.executions, m.duration, m.active} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnExecStart: func(ctx context.Context, e *domain.ExecEvent) {
			m.active.Inc()
		},
		OnExecEnd: func(ctx context.Context, e *domain.ExecEvent) {
			m.active.Dec()
			if e.Err == nil {
				m.duration.WithLabelValues(exitLabel(e.ExitCode)).Observe(e.Duration.Seconds())
			}
		},
		OnRoute: func(ctx context.Context, e *domain.RouteEvent) {
			m.executions.WithLabelValues(e.Outcome).Inc()
		},
	}
}

func exitLabel(code int) string {
	if code == 0 {
		return "0"
	}
	return "nonzero"
}

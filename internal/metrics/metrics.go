// ABOUTME: Prometheus metrics for tool execution outcomes and latency
// ABOUTME: Registered on an injected registerer; no process-wide globals

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "agent"

// Collector records per-tool execution counters and duration histograms.
type Collector struct {
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewCollector builds a collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_executions_total",
				Help:      "Total number of tool executions by outcome",
			},
			[]string{"tool", "outcome"}, // outcome: success, error
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_execution_duration_seconds",
				Help:      "Histogram of tool execution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
	}
	reg.MustRegister(c.executions, c.duration)
	return c
}

// Record notes one tool execution outcome and its duration.
func (c *Collector) Record(tool string, success bool, d time.Duration) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	c.executions.WithLabelValues(tool, outcome).Inc()
	c.duration.WithLabelValues(tool).Observe(d.Seconds())
}

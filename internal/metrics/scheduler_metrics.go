package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// SchedulerMetricsCollector implements SchedulerMetricsRecorder.
type SchedulerMetricsCollector struct {
	decisionsTotal *prometheus.CounterVec
	tickDuration   prometheus.Histogram
	queueSize      prometheus.Gauge
	apiErrorsTotal *prometheus.CounterVec
}

func NewSchedulerMetricsCollector() *SchedulerMetricsCollector {
	return &SchedulerMetricsCollector{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "dispatcher_decisions_total",
				Help:      "Total dispatcher decisions by ship and action.",
			},
			[]string{"ship", "action"},
		),
		tickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "scheduler_tick_duration_seconds",
				Help:      "Wall-clock duration of one scheduler pop/decide/execute cycle.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		queueSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ready_queue_size",
				Help:      "Number of ships currently queued for a scheduling decision.",
			},
		),
		apiErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_errors_total",
				Help:      "Total remote API errors observed, by error code.",
			},
			[]string{"code"},
		),
	}
}

func (c *SchedulerMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, m := range []prometheus.Collector{c.decisionsTotal, c.tickDuration, c.queueSize, c.apiErrorsTotal} {
		if err := Registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *SchedulerMetricsCollector) RecordDecision(ship, action string) {
	c.decisionsTotal.WithLabelValues(ship, action).Inc()
}

func (c *SchedulerMetricsCollector) RecordTick(queueSize int, durationSeconds float64) {
	c.queueSize.Set(float64(queueSize))
	c.tickDuration.Observe(durationSeconds)
}

func (c *SchedulerMetricsCollector) RecordAPIError(code int) {
	c.apiErrorsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
}

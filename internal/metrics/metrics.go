// Package metrics provides Prometheus metrics instrumentation for the operator.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector provides metrics recording interface.
// This allows components to record metrics without direct prometheus dependency.
type Collector interface {
	// Reconcile metrics
	RecordReconcileDuration(ctx context.Context, controller, result string, duration time.Duration)
	RecordReconcileError(ctx context.Context, controller, errorType string)
	RecordOutcome(ctx context.Context, controller, node, outcome string)
	RecordStatusConflict(ctx context.Context, controller string)

	// Remediation metrics
	RecordRemediation(ctx context.Context, controller, action string)
	RecordReloadCall(ctx context.Context, status string, duration time.Duration)
}

// prometheusCollector implements Collector using Prometheus metrics.
type prometheusCollector struct {
	// Reconcile metrics
	reconcileDuration    *prometheus.HistogramVec
	reconcileErrorsTotal *prometheus.CounterVec
	outcomesTotal        *prometheus.CounterVec
	statusConflictsTotal *prometheus.CounterVec

	// Remediation metrics
	remediationsTotal *prometheus.CounterVec
	reloadDuration    *prometheus.HistogramVec
	reloadCallsTotal  *prometheus.CounterVec
}

// NewCollector creates a new Prometheus metrics collector and registers metrics.
func NewCollector(reg prometheus.Registerer) Collector {
	c := &prometheusCollector{}
	c.initReconcileMetrics()
	c.initRemediationMetrics()
	c.register(reg)

	return c
}

// RecordReconcileDuration records the duration of one reconcile attempt.
func (c *prometheusCollector) RecordReconcileDuration(
	_ context.Context,
	controller, result string,
	duration time.Duration,
) {
	c.reconcileDuration.WithLabelValues(controller, result).Observe(duration.Seconds())
}

// RecordReconcileError records a failed reconcile by error type.
func (c *prometheusCollector) RecordReconcileError(_ context.Context, controller, errorType string) {
	c.reconcileErrorsTotal.WithLabelValues(controller, errorType).Inc()
}

// RecordOutcome records the outcome of applying one object.
func (c *prometheusCollector) RecordOutcome(_ context.Context, controller, node, outcome string) {
	c.outcomesTotal.WithLabelValues(controller, node, outcome).Inc()
}

// RecordStatusConflict records a status write rejected by optimistic concurrency.
func (c *prometheusCollector) RecordStatusConflict(_ context.Context, controller string) {
	c.statusConflictsTotal.WithLabelValues(controller).Inc()
}

// RecordRemediation records the remediation action chosen after apply.
func (c *prometheusCollector) RecordRemediation(_ context.Context, controller, action string) {
	c.remediationsTotal.WithLabelValues(controller, action).Inc()
}

// RecordReloadCall records one plugin reload request.
func (c *prometheusCollector) RecordReloadCall(_ context.Context, status string, duration time.Duration) {
	c.reloadDuration.WithLabelValues(status).Observe(duration.Seconds())
	c.reloadCallsTotal.WithLabelValues(status).Inc()
}

func (c *prometheusCollector) initReconcileMetrics() {
	c.reconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gerrit_operator_reconcile_duration_seconds",
			Help:    "Duration of reconcile attempts",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"controller", "result"},
	)
	c.reconcileErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gerrit_operator_reconcile_errors_total",
			Help: "Total failed reconcile attempts by error type",
		},
		[]string{"controller", "error_type"},
	)
	c.outcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gerrit_operator_outcomes_total",
			Help: "Total applied objects by workflow node and outcome",
		},
		[]string{"controller", "node", "outcome"},
	)
	c.statusConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gerrit_operator_status_conflicts_total",
			Help: "Total status writes rejected because the primary changed",
		},
		[]string{"controller"},
	)
}

func (c *prometheusCollector) initRemediationMetrics() {
	c.remediationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gerrit_operator_remediations_total",
			Help: "Total remediation actions by type",
		},
		[]string{"controller", "action"},
	)
	c.reloadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gerrit_operator_reload_duration_seconds",
			Help:    "Duration of plugin reload calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	c.reloadCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gerrit_operator_reload_calls_total",
			Help: "Total plugin reload calls",
		},
		[]string{"status"},
	)
}

func (c *prometheusCollector) register(reg prometheus.Registerer) {
	reg.MustRegister(
		c.reconcileDuration,
		c.reconcileErrorsTotal,
		c.outcomesTotal,
		c.statusConflictsTotal,
		c.remediationsTotal,
		c.reloadDuration,
		c.reloadCallsTotal,
	)
}

// NoopCollector is a no-op implementation of Collector for testing.
type NoopCollector struct{}

// NewNoopCollector creates a new no-op collector.
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

// RecordReconcileDuration is a no-op.
func (c *NoopCollector) RecordReconcileDuration(_ context.Context, _, _ string, _ time.Duration) {}

// RecordReconcileError is a no-op.
func (c *NoopCollector) RecordReconcileError(_ context.Context, _, _ string) {}

// RecordOutcome is a no-op.
func (c *NoopCollector) RecordOutcome(_ context.Context, _, _, _ string) {}

// RecordStatusConflict is a no-op.
func (c *NoopCollector) RecordStatusConflict(_ context.Context, _ string) {}

// RecordRemediation is a no-op.
func (c *NoopCollector) RecordRemediation(_ context.Context, _, _ string) {}

// RecordReloadCall is a no-op.
func (c *NoopCollector) RecordReloadCall(_ context.Context, _ string, _ time.Duration) {}

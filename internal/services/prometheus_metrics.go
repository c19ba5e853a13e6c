package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	riskCyclesTotal        *prometheus.CounterVec
	riskCycleDuration      prometheus.Histogram
	riskFindingsTotal      *prometheus.CounterVec
	riskAlertsEmittedTotal *prometheus.CounterVec
	riskBudgetErrorsTotal  *prometheus.CounterVec
	activeAlertsTotal      prometheus.Gauge
	modelServiceRequests   *prometheus.CounterVec
	modelServiceDuration   prometheus.Histogram
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		riskCyclesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_analysis_cycles_total",
				Help: "Total number of risk analysis cycles by outcome",
			},
			[]string{"outcome"},
		),
		riskCycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "risk_analysis_cycle_duration_milliseconds",
				Help:    "Risk analysis cycle duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		riskFindingsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_findings_total",
				Help: "Total number of risk findings produced by the projection engine",
			},
			[]string{"kind", "severity"},
		),
		riskAlertsEmittedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_alerts_emitted_total",
				Help: "Total number of alerts that survived deduplication and were persisted",
			},
			[]string{"kind", "severity"},
		),
		riskBudgetErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_budget_errors_total",
				Help: "Total number of per-budget evaluation failures by stage",
			},
			[]string{"stage"},
		),
		activeAlertsTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_alerts_total",
				Help: "Current number of active alerts",
			},
		),
		modelServiceRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "model_service_requests_total",
				Help: "Total number of model service proxy requests",
			},
			[]string{"endpoint", "status"},
		),
		modelServiceDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "model_service_request_duration_seconds",
				Help:    "Model service proxy request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "risk.cycle.completed":
		m.riskCyclesTotal.WithLabelValues("completed").Inc()
	case "risk.cycle.skipped":
		m.riskCyclesTotal.WithLabelValues("skipped").Inc()
	case "risk.cycle.errors":
		m.riskCyclesTotal.WithLabelValues("failed").Inc()
	case "risk.findings":
		m.riskFindingsTotal.WithLabelValues(tags["kind"], tags["severity"]).Inc()
	case "risk.alerts.emitted":
		m.riskAlertsEmittedTotal.WithLabelValues(tags["kind"], tags["severity"]).Inc()
	case "risk.budget.errors":
		m.riskBudgetErrorsTotal.WithLabelValues(tags["stage"]).Inc()
	case "model.request":
		m.modelServiceRequests.WithLabelValues(tags["endpoint"], tags["status"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "risk.cycle":
		m.riskCycleDuration.Observe(float64(duration.Milliseconds()))
	case "model.request":
		m.modelServiceDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "alerts.active":
		m.activeAlertsTotal.Set(value)
	}
}

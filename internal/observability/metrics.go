// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Model run metrics
	ModelRunsTotal      *prometheus.CounterVec
	ModelRunDuration    *prometheus.HistogramVec
	CompaniesSimulated  prometheus.Counter
	IRRNonConvergences  prometheus.Counter
	ValidationFailures  *prometheus.CounterVec

	// Export metrics
	ReportsGenerated prometheus.Counter
	ExportsTotal     *prometheus.CounterVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Live feed metrics
	WSClientsConnected prometheus.Gauge
	WSMessagesSent     prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "venture_fund_lab"
	}

	return &Metrics{
		ModelRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "model_runs_total",
			Help:      "Total number of model runs by scenario and status",
		}, []string{"scenario", "status"}),
		ModelRunDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "model_run_duration_seconds",
			Help:      "Duration of model runs by scenario",
			Buckets:   prometheus.DefBuckets,
		}, []string{"scenario"}),
		CompaniesSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "companies_simulated_total",
			Help:      "Total number of company outcomes drawn",
		}),
		IRRNonConvergences: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "irr_non_convergences_total",
			Help:      "Total number of runs whose IRR solve had no root",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "validation_failures_total",
			Help:      "Total number of parameter validation failures by field",
		}, []string{"field"}),

		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),
		ExportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "exports_total",
			Help:      "Total number of exports by format",
		}, []string{"format"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "db_query_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "db_query_errors_total",
			Help:      "Total number of database operation errors",
		}, []string{"database", "operation"}),

		WSClientsConnected: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "ws_clients_connected",
			Help:      "Current number of connected WebSocket clients",
		}),
		WSMessagesSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "ws_messages_sent_total",
			Help:      "Total number of WebSocket messages broadcast",
		}),
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordModelRun records one scenario run.
func RecordModelRun(scenario, status string, durationSeconds float64) {
	DefaultMetrics.ModelRunsTotal.WithLabelValues(scenario, status).Inc()
	DefaultMetrics.ModelRunDuration.WithLabelValues(scenario).Observe(durationSeconds)
}

// RecordCompaniesSimulated adds to the simulated company counter.
func RecordCompaniesSimulated(n int) {
	DefaultMetrics.CompaniesSimulated.Add(float64(n))
}

// RecordIRRNonConvergence increments the no-root IRR counter.
func RecordIRRNonConvergence() {
	DefaultMetrics.IRRNonConvergences.Inc()
}

// RecordValidationFailure records a rejected parameter set.
func RecordValidationFailure(field string) {
	DefaultMetrics.ValidationFailures.WithLabelValues(field).Inc()
}

// RecordReportGenerated increments the report counter.
func RecordReportGenerated() {
	DefaultMetrics.ReportsGenerated.Inc()
}

// RecordExport records an export by format ("xlsx", "csv", "markdown", "png").
func RecordExport(format string) {
	DefaultMetrics.ExportsTotal.WithLabelValues(format).Inc()
}

// RecordDBQuery records database operation metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// UpdateWSClients sets the connected client gauge.
func UpdateWSClients(n int) {
	DefaultMetrics.WSClientsConnected.Set(float64(n))
}

// RecordWSMessage increments the broadcast counter.
func RecordWSMessage() {
	DefaultMetrics.WSMessagesSent.Inc()
}

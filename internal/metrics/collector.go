// Package metrics exposes Prometheus collectors for the fleet controller:
// per-ship scheduler activity and fleet-wide financial metrics. Collectors
// are registered against a single process-wide Registry, set up once at
// daemon startup when metrics are enabled.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "fleetctl"
	subsystem = "daemon"
)

// Registry is the global Prometheus registry. Nil when metrics are disabled.
var Registry *prometheus.Registry

// globalCollector is the singleton scheduler metrics recorder.
var globalCollector SchedulerMetricsRecorder

// globalFinancialCollector is the singleton financial metrics recorder.
var globalFinancialCollector FinancialMetricsRecorder

// SchedulerMetricsRecorder records per-tick scheduler activity.
type SchedulerMetricsRecorder interface {
	RecordDecision(ship string, action string)
	RecordTick(queueSize int, durationSeconds float64)
	RecordAPIError(code int)
}

// FinancialMetricsRecorder records transaction and P&L events.
type FinancialMetricsRecorder interface {
	RecordTransaction(transactionType, category string, amount int, creditsBalance int)
	RecordTrade(goodSymbol string, buyPrice, sellPrice, quantity int)
}

// InitRegistry initializes the Prometheus registry. Call once at startup if
// metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

func GetRegistry() *prometheus.Registry { return Registry }

func IsEnabled() bool { return Registry != nil }

func SetGlobalCollector(c SchedulerMetricsRecorder) { globalCollector = c }

func RecordDecision(ship, action string) {
	if globalCollector != nil {
		globalCollector.RecordDecision(ship, action)
	}
}

func RecordTick(queueSize int, durationSeconds float64) {
	if globalCollector != nil {
		globalCollector.RecordTick(queueSize, durationSeconds)
	}
}

func RecordAPIError(code int) {
	if globalCollector != nil {
		globalCollector.RecordAPIError(code)
	}
}

func SetGlobalFinancialCollector(c FinancialMetricsRecorder) { globalFinancialCollector = c }

func RecordTransaction(transactionType, category string, amount, creditsBalance int) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordTransaction(transactionType, category, amount, creditsBalance)
	}
}

func RecordTrade(goodSymbol string, buyPrice, sellPrice, quantity int) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordTrade(goodSymbol, buyPrice, sellPrice, quantity)
	}
}

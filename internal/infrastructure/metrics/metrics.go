// Package metrics provides Prometheus metrics for the call broker.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveSessions tracks the number of sessions currently in the registry
	// that have not ended.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broker_active_call_sessions",
			Help: "Number of call sessions that have not reached a terminal state",
		},
	)

	// SessionsCreated tracks the total number of call sessions registered.
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broker_call_sessions_created_total",
			Help: "Total number of call sessions registered",
		},
	)

	// StateTransitions tracks session state changes.
	StateTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broker_call_state_transitions_total",
			Help: "Total number of call session state transitions",
		},
		[]string{"from_state", "to_state"},
	)

	// TransfersRequested tracks operator transfer requests by outcome.
	TransfersRequested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broker_transfers_requested_total",
			Help: "Total number of operator transfer requests",
		},
		[]string{"outcome"},
	)

	// RecordingDownloadDuration tracks successful recording downloads.
	RecordingDownloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "broker_recording_download_duration_seconds",
			Help:    "Duration of recording downloads including retries",
			Buckets: prometheus.DefBuckets,
		},
	)

	// RecordingDownloadErrors tracks downloads abandoned after the retry
	// ceiling.
	RecordingDownloadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broker_recording_download_errors_total",
			Help: "Total number of recording downloads abandoned after retries",
		},
	)

	// HTTPRequests tracks inbound HTTP traffic.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
)

// RecordSessionCreated increments session creation metrics.
func RecordSessionCreated() {
	SessionsCreated.Inc()
	ActiveSessions.Inc()
}

// RecordSessionEnded decrements the active session gauge.
func RecordSessionEnded() {
	ActiveSessions.Dec()
}

// RecordStateTransition records a session state change.
func RecordStateTransition(fromState, toState string) {
	StateTransitions.WithLabelValues(fromState, toState).Inc()
}

// RecordTransfer records a transfer request outcome.
func RecordTransfer(outcome string) {
	TransfersRequested.WithLabelValues(outcome).Inc()
}

// RecordRecordingDownloaded records a completed recording download.
func RecordRecordingDownloaded(d time.Duration) {
	RecordingDownloadDuration.Observe(d.Seconds())
}

// RecordRecordingDownloadError records an abandoned recording download.
func RecordRecordingDownloadError() {
	RecordingDownloadErrors.Inc()
}

// RecordRequest records an inbound HTTP request.
func RecordRequest(method, endpoint, status string) {
	HTTPRequests.WithLabelValues(method, endpoint, status).Inc()
}

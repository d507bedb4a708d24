// Package metrics provides Prometheus metrics for the termfolio engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Command dispatch metrics
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "termfolio_commands_total",
			Help: "Total number of dispatched commands",
		},
		[]string{"command", "status"},
	)

	// Auth metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "termfolio_auth_attempts_total",
			Help: "Total privilege escalation attempts",
		},
		[]string{"result"},
	)

	// Permission metrics
	permissionChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "termfolio_permission_checks_total",
			Help: "Total permission checks",
		},
		[]string{"result"},
	)

	// Sequencer metrics
	sequencerStepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "termfolio_sequencer_steps_total",
			Help: "Total scripted sequencer steps executed",
		},
	)

	sequencerDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "termfolio_sequencer_queue_depth",
			Help: "Number of sequencer steps waiting to run",
		},
	)

	// Session metrics
	sessionsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "termfolio_sessions_started_total",
			Help: "Total sessions started (including resets)",
		},
	)

	localeSwitchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "termfolio_locale_switches_total",
			Help: "Total locale switches",
		},
		[]string{"locale"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordCommand records a dispatched command and its outcome.
func RecordCommand(command string, ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	commandsTotal.WithLabelValues(command, status).Inc()
}

// RecordAuthAttempt records a privilege escalation attempt.
func RecordAuthAttempt(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	authAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordPermissionCheck records a permission check result.
func RecordPermissionCheck(allowed bool) {
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	permissionChecksTotal.WithLabelValues(result).Inc()
}

// RecordSequencerStep records one executed sequencer step.
func RecordSequencerStep() {
	sequencerStepsTotal.Inc()
}

// SetSequencerDepth sets the current sequencer queue depth.
func SetSequencerDepth(depth int) {
	sequencerDepth.Set(float64(depth))
}

// RecordSessionStarted records a new (or reset) session.
func RecordSessionStarted() {
	sessionsStartedTotal.Inc()
}

// RecordLocaleSwitch records a locale change.
func RecordLocaleSwitch(locale string) {
	localeSwitchesTotal.WithLabelValues(locale).Inc()
}

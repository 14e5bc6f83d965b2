// Package metrics exposes Prometheus counters for access decisions and unlock attempts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// decisions counts access decisions by outcome ("content" or "challenge").
	decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pageguard_access_decisions_total",
		Help: "Total access decisions by outcome",
	}, []string{"decision"})

	// unlocks counts unlock attempts by result.
	unlocks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pageguard_unlock_attempts_total",
		Help: "Total unlock attempts by result",
	}, []string{"result"})
)

// ObserveDecision records one access decision.
func ObserveDecision(decision string) {
	decisions.WithLabelValues(decision).Inc()
}

// ObserveUnlock records one unlock attempt. result is "unlocked",
// "rejected" or "session_unavailable".
func ObserveUnlock(result string) {
	unlocks.WithLabelValues(result).Inc()
}

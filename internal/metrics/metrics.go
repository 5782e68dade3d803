// Package metrics holds the Prometheus instruments for the pass engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the server.
type Metrics struct {
	PassesIssued        prometheus.Counter
	EntriesVerified     prometheus.Counter
	VerificationsDenied prometheus.Counter
	Exits               prometheus.Counter
	PassesExpired       prometheus.Counter
	BlacklistSize       prometheus.Gauge
}

// New creates and registers all metrics against the given registerer.
// Tests pass a fresh prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PassesIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "janus_passes_issued_total",
			Help: "Total number of visitor passes issued.",
		}),
		EntriesVerified: factory.NewCounter(prometheus.CounterOpts{
			Name: "janus_entries_verified_total",
			Help: "Total number of successful entry verifications.",
		}),
		VerificationsDenied: factory.NewCounter(prometheus.CounterOpts{
			Name: "janus_verifications_denied_total",
			Help: "Total number of entry verifications denied on PIN mismatch.",
		}),
		Exits: factory.NewCounter(prometheus.CounterOpts{
			Name: "janus_exits_total",
			Help: "Total number of visitor exits recorded.",
		}),
		PassesExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "janus_passes_expired_total",
			Help: "Total number of passes that expired before exit.",
		}),
		BlacklistSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "janus_blacklist_entries",
			Help: "Current number of blacklist entries.",
		}),
	}
}

package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tripplanner/internal/itinerary"
)

// Metrics are the planner's Prometheus instruments. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	tripsPlanned     *prometheus.CounterVec
	optimizations    *prometheus.CounterVec
	optimizeDuration *prometheus.HistogramVec
	lockConflicts    prometheus.Counter
	notifications    *prometheus.CounterVec
}

// NewMetrics creates the instruments and registers them with reg when it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tripsPlanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripplanner",
			Name:      "trips_planned_total",
			Help:      "Trip plans assembled from chat messages.",
		}, []string{"destination"}),
		optimizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripplanner",
			Name:      "optimizations_total",
			Help:      "Itinerary edit actions by outcome.",
		}, []string{"action", "outcome"}),
		optimizeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tripplanner",
			Name:      "optimize_duration_seconds",
			Help:      "Time spent applying an itinerary edit action.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"action"}),
		lockConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tripplanner",
			Name:      "session_lock_conflicts_total",
			Help:      "Edits rejected because the session was locked.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripplanner",
			Name:      "notifications_total",
			Help:      "Realtime events published to session subscribers.",
		}, []string{"type"}),
	}

	if reg != nil {
		reg.MustRegister(m.tripsPlanned, m.optimizations, m.optimizeDuration, m.lockConflicts, m.notifications)
	}
	return m
}

func (m *Metrics) tripPlanned(destination string) {
	if m == nil {
		return
	}
	m.tripsPlanned.WithLabelValues(destination).Inc()
}

func (m *Metrics) optimized(action string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	switch action {
	case itinerary.ActionReorder, itinerary.ActionRemove, itinerary.ActionDiscover, itinerary.ActionAdd:
	default:
		action = "unknown"
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.optimizations.WithLabelValues(action, outcome).Inc()
	m.optimizeDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (m *Metrics) lockConflict() {
	if m == nil {
		return
	}
	m.lockConflicts.Inc()
}

func (m *Metrics) notified(eventType string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(eventType).Inc()
}

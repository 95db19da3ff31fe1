package metrics

import (
	"net/http"

	"github.com/KirkDiggler/crypto-zombies/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "zombies"

// Metrics counts registry activity from committed events
type Metrics struct {
	registry *prometheus.Registry

	// Events counts every delivered event by type
	Events *prometheus.CounterVec

	// Minted counts new zombies
	Minted prometheus.Counter

	// Battles counts resolved attacks by result
	Battles *prometheus.CounterVec

	// FeesCollected sums level up payments in gwei
	FeesCollected prometheus.Counter

	// FeesWithdrawn sums withdrawals in gwei
	FeesWithdrawn prometheus.Counter
}

// New creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Committed registry events by type",
		}, []string{"type"}),
		Minted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "minted_total",
			Help:      "Zombies created",
		}),
		Battles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "battles_total",
			Help:      "Resolved attacks by result",
		}, []string{"result"}),
		FeesCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fees_collected_gwei_total",
			Help:      "Level up fees collected in gwei",
		}),
		FeesWithdrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fees_withdrawn_gwei_total",
			Help:      "Fees withdrawn in gwei",
		}),
	}

	m.registry.MustRegister(m.Events, m.Minted, m.Battles, m.FeesCollected, m.FeesWithdrawn)
	return m
}

// Handler serves the collectors in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ID() string    { return "metrics" }
func (m *Metrics) Priority() int { return events.PriorityMetrics }

// HandleEvent updates counters for one event
func (m *Metrics) HandleEvent(event events.Event) error {
	m.Events.WithLabelValues(string(event.GetType())).Inc()

	switch e := event.(type) {
	case *events.ZombieCreatedEvent:
		m.Minted.Inc()
	case *events.BattleEvent:
		result := "loss"
		if e.Won {
			result = "win"
		}
		m.Battles.WithLabelValues(result).Inc()
	case *events.LevelUpEvent:
		m.FeesCollected.Add(float64(e.Fee))
	case *events.WithdrawnEvent:
		m.FeesWithdrawn.Add(float64(e.Amount))
	}

	return nil
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WagersPlaced counts wagers accepted by the engine
	WagersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsbook_wagers_placed_total",
		Help: "Number of wagers placed",
	})

	// WagersSettled counts terminal transitions by outcome
	WagersSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsbook_wagers_settled_total",
		Help: "Number of wagers moved to a terminal state",
	}, []string{"outcome"})

	// ClaimSweepDuration observes how long a per-user claim sweep takes
	ClaimSweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sportsbook_claim_sweep_duration_seconds",
		Help:    "Duration of per-user claim sweeps",
		Buckets: prometheus.DefBuckets,
	})
)

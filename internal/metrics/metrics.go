// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DrinksLogged counts logged drinks by canonical type.
	DrinksLogged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cuppa_drinks_logged_total",
		Help: "Number of drink logs recorded, by drink type.",
	}, []string{"type"})

	// CoinsAwarded counts coins granted by the reward policy.
	CoinsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cuppa_coins_awarded_total",
		Help: "Coins awarded for logging drinks.",
	})

	// CoinsSpent counts coins spent on cup purchases.
	CoinsSpent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cuppa_coins_spent_total",
		Help: "Coins spent in the cup store.",
	})

	// CupPurchases counts successful cup purchases.
	CupPurchases = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cuppa_cup_purchases_total",
		Help: "Cup skins purchased.",
	})

	// HTTPDuration observes request latency by route and status class.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cuppa_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)

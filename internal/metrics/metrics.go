package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationsTotal counts generation attempts by outcome.
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickthumb_generations_total",
		Help: "Thumbnail generation attempts by outcome.",
	}, []string{"outcome"})

	// CreditsSpent counts credits consumed by successful generations.
	CreditsSpent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickthumb_credits_spent_total",
		Help: "Credits consumed by successful generations.",
	})

	// CreditsGranted counts credits granted through checkout or webhook.
	CreditsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickthumb_credits_granted_total",
		Help: "Credits granted, by settlement source.",
	}, []string{"source"})
)

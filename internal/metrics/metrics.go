package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Badge store operations by op (create, update, delete, clear) and outcome.
	BadgeOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "edusign_badge_operations_total",
		Help: "Badge store operations by operation and outcome",
	}, []string{"op", "outcome"})

	// Advisor questions by outcome (reply, empty, error).
	AdvisorAsks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "edusign_advisor_asks_total",
		Help: "Advisor questions by outcome",
	}, []string{"outcome"})

	// Round trip to the completion endpoint.
	AdvisorLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "edusign_advisor_latency_seconds",
		Help:    "Latency of chat completion requests",
		Buckets: prometheus.DefBuckets,
	})
)

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			BadgeOperations,
			AdvisorAsks,
			AdvisorLatency,
		)
	})
}

// Package metrics exposes the Prometheus instruments for the webhook
// pipeline and the /metrics scrape endpoint.
package metrics

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Terminal outcome labels for WebhookOutcomes.
const (
	OutcomePosted           = "posted"
	OutcomeStoredOnly       = "stored_only"
	OutcomeSkippedBranch    = "skipped_branch"
	OutcomeSkippedPrivate   = "skipped_private"
	OutcomeNoCommits        = "no_commits"
	OutcomeFailedSignature  = "failed_signature"
	OutcomeFailedParse      = "failed_parse"
	OutcomeFailedIdentity   = "failed_identity"
	OutcomeFailedStorage    = "failed_storage"
	OutcomeFailedEvaluation = "failed_evaluation"
)

var (
	// WebhookOutcomes counts webhook deliveries by terminal outcome.
	WebhookOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crax",
		Subsystem: "webhook",
		Name:      "deliveries_total",
		Help:      "GitHub webhook deliveries by terminal outcome.",
	}, []string{"outcome"})

	// EvaluationDuration tracks the latency of the LLM post-worthiness call,
	// the only pipeline step with externally variable latency.
	EvaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "crax",
		Subsystem: "webhook",
		Name:      "evaluation_duration_seconds",
		Help:      "Latency of the LLM post-worthiness evaluation.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	})

	// CommitsStored counts commit rows persisted from deliveries.
	CommitsStored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crax",
		Subsystem: "webhook",
		Name:      "commits_stored_total",
		Help:      "Commit rows persisted from webhook deliveries.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

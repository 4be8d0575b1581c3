package githubhooks

import (
	"errors"
	"strings"
	"time"

	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/env"
	"github.com/Crax-AI/crax.app/internal/errmsg"
	"github.com/Crax-AI/crax.app/internal/evaluator"
	"github.com/Crax-AI/crax.app/internal/events"
	"github.com/Crax-AI/crax.app/internal/feed"
	"github.com/Crax-AI/crax.app/internal/metrics"
	"github.com/Crax-AI/crax.app/internal/models"
	"github.com/Crax-AI/crax.app/internal/pubsub"
	"github.com/Crax-AI/crax.app/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler carries the collaborators one webhook delivery touches. Every
// delivery runs the same strict sequence; there is no retrying here, GitHub
// redelivers on non-2xx.
type Handler struct {
	Store     *db.Store
	Evaluator *evaluator.Evaluator
	Emitter   *events.Emitter
	Feed      *pubsub.Broker[models.Post]
}

// webhookHandler ingests a GitHub push delivery: verify, parse, filter,
// resolve, store, evaluate, and conditionally post.
// @Summary Ingest a GitHub push webhook
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param X-Hub-Signature-256 header string true "HMAC-SHA256 of the body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errmsg._WebhookInvalidPayload
// @Failure 404 {object} errmsg._WebhookPusherUnknown
// @Failure 500 {object} errmsg._WebhookEvaluationFailed
// @Router /webhooks/github [post]
func (h *Handler) webhookHandler(c fiber.Ctx) error {
	secret := strings.TrimSpace(env.GITHUB_WEBHOOK_SECRET)
	if secret == "" {
		return utils.StatusError(c, errmsg.WebhookSecretNotConfigured)
	}

	body := c.Body()
	deliveryID := strings.TrimSpace(c.Get(deliveryHeader))

	logger := log.With().
		Str("delivery", deliveryID).
		Logger()

	signature := strings.TrimSpace(c.Get(signatureHeader))
	if signature == "" {
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeFailedSignature).Inc()
		return utils.StatusError(c, errmsg.WebhookSignatureMissing)
	}

	if !verifySignature(secret, signature, body) {
		logger.Warn().Msg("webhook signature verification failed")
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeFailedSignature).Inc()
		return utils.StatusError(c, errmsg.WebhookSignatureInvalid)
	}

	// Ignore non-push events silently; GitHub delivers other hook types
	// against the same endpoint when broadly subscribed.
	if eventType := strings.TrimSpace(c.Get(eventHeader)); eventType != "" && eventType != pushEvent {
		return c.SendStatus(fiber.StatusNoContent)
	}

	payload, err := parsePushPayload(body)
	if err != nil {
		logger.Warn().Err(err).Msg("webhook payload rejected")
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeFailedParse).Inc()
		return utils.StatusError(c, errmsg.WebhookInvalidPayload)
	}

	logger = logger.With().
		Str("repository", payload.Repository.FullName).
		Str("ref", payload.Ref).
		Logger()

	if !isMainBranch(payload) {
		logger.Info().Msg("skipping push to non-main branch")
		h.Emitter.WebhookSkipped(deliveryID, payload.Repository.FullName, payload.Ref, "branch")
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeSkippedBranch).Inc()
		return c.JSON(fiber.Map{
			"message": "Skipped - not a push to main branch",
			"ref":     payload.Ref,
		})
	}

	if !isPublicRepository(payload) {
		logger.Info().Msg("skipping push to private repository")
		h.Emitter.WebhookSkipped(deliveryID, payload.Repository.FullName, payload.Ref, "private")
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeSkippedPrivate).Inc()
		return c.JSON(fiber.Map{
			"message":    "Skipped - private repository",
			"repository": payload.Repository.FullName,
		})
	}

	if len(payload.Commits) == 0 {
		logger.Info().Msg("push carried no commits")
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeNoCommits).Inc()
		return c.JSON(fiber.Map{
			"message": "No commits found in push event",
		})
	}

	login := strings.TrimSpace(payload.Sender.Login)
	if login == "" {
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeFailedParse).Inc()
		return utils.StatusError(c, errmsg.WebhookPusherMissing)
	}

	profile, err := resolveAuthor(h.Store, login)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.Warn().Str("login", login).Msg("no profile for pusher")
			metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeFailedIdentity).Inc()
			return utils.StatusError(c, errmsg.WebhookPusherUnknown(login))
		}
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeFailedStorage).Inc()
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	stored, err := storeCommits(h.Store, profile.ID, payload)
	if err != nil {
		logger.Error().Err(err).Msg("failed to persist commits")
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeFailedStorage).Inc()
		return utils.StatusError(c, errmsg.WebhookCommitsNotStored.WithCause(err))
	}

	metrics.CommitsStored.Add(float64(len(stored)))
	for _, commit := range stored {
		h.Emitter.CommitStored(deliveryID, commit.CommitID, commit.RepositoryName, commit.Message)
	}

	logger.Info().
		Int("commits", len(stored)).
		Str("user", profile.ID).
		Msg("commits persisted, evaluating post-worthiness")

	inputs := make([]evaluator.CommitInput, len(stored))
	for i, commit := range stored {
		inputs[i] = evaluator.CommitInput{
			Message:       commit.Message,
			AddedFiles:    commit.AddedFiles,
			ModifiedFiles: commit.ModifiedFiles,
			RemovedFiles:  commit.RemovedFiles,
		}
	}

	evalStart := time.Now()
	decision, err := h.Evaluator.Evaluate(c, payload.Repository.Name, login, inputs)
	metrics.EvaluationDuration.Observe(time.Since(evalStart).Seconds())
	if err != nil {
		// Fail closed: the commits stay persisted and unlinked, no post.
		logger.Error().Err(err).Msg("post-worthiness evaluation failed")
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeFailedEvaluation).Inc()
		return utils.StatusError(c, errmsg.WebhookEvaluationFailed.WithCause(err))
	}

	if !decision.ShouldPost {
		logger.Info().Str("reasoning", decision.Reasoning).Msg("batch judged not post-worthy")
		h.Emitter.EvaluationSkipped(deliveryID, payload.Repository.FullName, decision.Reasoning, len(stored))
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeStoredOnly).Inc()
		return c.JSON(fiber.Map{
			"message":        "Commits stored - not post-worthy",
			"commits_stored": len(stored),
			"reasoning":      decision.Reasoning,
		})
	}

	post, err := createPost(h.Store, profile.ID, decision.Post)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create post")
		metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomeFailedStorage).Inc()
		return utils.StatusError(c, errmsg.WebhookPostNotCreated.WithCause(err))
	}

	commitIDs := make([]string, len(stored))
	for i, commit := range stored {
		commitIDs[i] = commit.ID
	}

	// A link failure after the post insert is reported, not rolled back: the
	// response carries the accurate linked count.
	linked, err := linkCommits(h.Store, post.ID, commitIDs)
	if err != nil {
		logger.Error().Err(err).Str("post", post.ID).Msg("failed to link commits to post")
	}

	h.Feed.Publish(post)
	if err := feed.InvalidateCache(h.Store); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate feed cache")
	}

	h.Emitter.PostCreated(deliveryID, post.ID, profile.ID, int(linked))
	metrics.WebhookOutcomes.WithLabelValues(metrics.OutcomePosted).Inc()

	logger.Info().
		Str("post", post.ID).
		Int64("linked", linked).
		Msg("post created from push delivery")

	return c.JSON(fiber.Map{
		"message":           "Post created successfully",
		"post_id":           post.ID,
		"content":           post.Description,
		"commits_processed": len(stored),
		"commits_linked":    linked,
	})
}

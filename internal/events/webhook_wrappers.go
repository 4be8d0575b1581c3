package events

import "github.com/Crax-AI/crax.app/internal/models"

const (
	targetDelivery = "delivery"
	targetCommit   = "commit"
	targetPost     = "post"
)

// WebhookSkipped records a delivery the branch/visibility filter rejected.
func (e *Emitter) WebhookSkipped(deliveryID, repository, ref, reason string) {
	if e == nil {
		return
	}

	e.Emit(models.Event{
		Action: "webhook.delivery.skipped",

		ActorRole: ActorSystem,
		ActorID:   deliveryID,

		TargetType: targetDelivery,
		TargetID:   deliveryID,

		Props: map[string]any{
			"repository": repository,
			"ref":        ref,
			"reason":     reason,
		},
	})
}

// CommitStored records one persisted commit row from a delivery.
func (e *Emitter) CommitStored(deliveryID, commitID, repository, message string) {
	if e == nil {
		return
	}

	e.Emit(models.Event{
		Action: "webhook.commit.stored",

		ActorRole: ActorSystem,
		ActorID:   deliveryID,

		TargetType: targetCommit,
		TargetID:   commitID,

		Props: map[string]any{
			"repository": repository,
			"message":    message,
		},
	})
}

// EvaluationSkipped records a delivery the evaluator judged not post-worthy.
func (e *Emitter) EvaluationSkipped(deliveryID, repository, reasoning string, commits int) {
	if e == nil {
		return
	}

	e.Emit(models.Event{
		Action: "webhook.evaluation.skipped",

		ActorRole: ActorSystem,
		ActorID:   deliveryID,

		TargetType: targetDelivery,
		TargetID:   deliveryID,

		Props: map[string]any{
			"repository": repository,
			"reasoning":  reasoning,
			"commits":    commits,
		},
	})
}

// PostCreated records a post generated from a delivery and how many commit
// rows were linked to it.
func (e *Emitter) PostCreated(deliveryID, postID, authorID string, linked int) {
	if e == nil {
		return
	}

	e.Emit(models.Event{
		Action: "webhook.post.created",

		ActorRole: ActorSystem,
		ActorID:   deliveryID,

		TargetType: targetPost,
		TargetID:   postID,

		Props: map[string]any{
			"author_id":      authorID,
			"commits_linked": linked,
		},
	})
}

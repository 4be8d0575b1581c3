package errmsg

import (
	"fmt"
	"net/http"
)

// GitHub webhook StatusError values surfaced by the push pipeline. Signature
// and payload failures are client errors so GitHub stops redelivering them
// after its retry budget; store and evaluator failures are 5xx so it retries.
var (
	WebhookSecretNotConfigured = NewStatusError(
		http.StatusInternalServerError,
		"webhook secret not configured",
	)
	WebhookSignatureMissing = NewStatusError(
		http.StatusBadRequest,
		"missing X-Hub-Signature-256 header",
	)
	WebhookSignatureInvalid = NewStatusError(
		http.StatusBadRequest,
		"invalid webhook signature",
	)
	WebhookInvalidPayload = NewStatusError(
		http.StatusBadRequest,
		"invalid webhook payload",
	)
	WebhookPusherMissing = NewStatusError(
		http.StatusBadRequest,
		"no GitHub username found in webhook payload",
	)
	WebhookCommitsNotStored = NewStatusError(
		http.StatusInternalServerError,
		"failed to store commits",
	)
	WebhookEvaluationFailed = NewStatusError(
		http.StatusInternalServerError,
		"failed to generate post summary",
	)
	WebhookPostNotCreated = NewStatusError(
		http.StatusInternalServerError,
		"failed to create post",
	)
)

// WebhookPusherUnknown reports an unresolvable pusher identity; the delivery
// is aborted before any rows are written.
func WebhookPusherUnknown(login string) StatusError {
	return NewStatusError(
		http.StatusNotFound,
		fmt.Sprintf("user not found for GitHub username: %s", login),
	)
}

type _WebhookSignatureMissing struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"missing X-Hub-Signature-256 header"`
}

type _WebhookSignatureInvalid struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"invalid webhook signature"`
}

type _WebhookInvalidPayload struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"invalid webhook payload"`
}

type _WebhookPusherUnknown struct {
	StatusCode int    `json:"statusCode" example:"404"`
	Message    string `json:"message" example:"user not found for GitHub username: octocat"`
}

type _WebhookEvaluationFailed struct {
	StatusCode int    `json:"statusCode" example:"500"`
	Message    string `json:"message" example:"failed to generate post summary: provider unavailable"`
}

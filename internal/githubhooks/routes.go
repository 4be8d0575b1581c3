// Package githubhooks turns signed GitHub push deliveries into stored
// commits and, when the evaluator approves, feed posts.
package githubhooks

import "github.com/gofiber/fiber/v3"

// Routes wires the webhook endpoints under /webhooks.
func Routes(app fiber.Router, h *Handler) {
	group := app.Group("/webhooks")

	// POST /webhooks/github ingests push notifications from GitHub.
	group.Post("/github", h.webhookHandler)
}

package projects

import (
	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/events"

	"github.com/gofiber/fiber/v3"
	"github.com/google/go-github/v60/github"
)

// Routes wires the project sync endpoint onto the admin router.
func Routes(admin fiber.Router, store *db.Store, emitter *events.Emitter, gh *github.Client) {
	h := &handlers{store: store, emitter: emitter, gh: gh}

	admin.Post("/projects/sync", h.syncHandler)
}

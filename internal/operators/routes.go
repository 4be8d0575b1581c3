package operators

import (
	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/events"

	"github.com/gofiber/fiber/v3"
)

type handlers struct {
	store   *db.Store
	emitter *events.Emitter
}

// Routes wires the operator auth endpoints under /operators.
func Routes(app fiber.Router, store *db.Store, emitter *events.Emitter) {
	h := &handlers{store: store, emitter: emitter}

	operators := app.Group("/operators")

	operators.Get("/ping", func(c fiber.Ctx) error {
		return c.SendString("PONG")
	})

	operators.Post("/login", h.loginHandler)
}

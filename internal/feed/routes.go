// Package feed is the read surface of the social feed: paginated posts,
// single-post detail with linked commits, and a live websocket stream of
// newly created posts.
package feed

import (
	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/models"
	"github.com/Crax-AI/crax.app/internal/pubsub"

	"github.com/gofiber/fiber/v3"
)

type handlers struct {
	store  *db.Store
	broker *pubsub.Broker[models.Post]
}

// Routes wires the feed endpoints under /feed plus the live stream at
// /ws/feed.
func Routes(app fiber.Router, store *db.Store, broker *pubsub.Broker[models.Post]) {
	h := &handlers{store: store, broker: broker}

	feed := app.Group("/feed")
	feed.Get("/posts", h.listPostsHandler)
	feed.Get("/posts/:id", h.getPostHandler)

	app.Get("/ws/feed", h.streamHandler)
}

package feed

import (
	"context"

	"github.com/Crax-AI/crax.app/internal/ws"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
)

// streamHandler upgrades to a websocket and pushes every post created while
// the client stays connected. Missed posts are not replayed; clients load
// history through the paginated feed.
func (h *handlers) streamHandler(c fiber.Ctx) error {
	return ws.Stream(c, func(ctx context.Context, conn *websocket.Conn) error {
		posts := h.broker.Subscribe(ctx)

		if err := ws.WriteStatus(conn, "info", "subscribed to feed"); err != nil {
			return err
		}

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case post, ok := <-posts:
				if !ok {
					return nil
				}
				if err := ws.WriteEvent(conn, "post.created", post); err != nil {
					return err
				}
			}
		}
	})
}

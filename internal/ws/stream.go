package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
)

// Stream upgrades to WebSocket and runs the streamer until it returns or the
// client goes away. The streamer's context is cancelled when the client
// closes the connection.
func Stream(c fiber.Ctx, streamer func(ctx context.Context, conn *websocket.Conn) error) error {
	type requestCtxProvider interface {
		RequestCtx() *fasthttp.RequestCtx
	}

	provider, ok := any(c).(requestCtxProvider)
	if !ok {
		return fiber.ErrInternalServerError
	}

	return Upgrader.Upgrade(provider.RequestCtx(), func(conn *websocket.Conn) {
		defer conn.Close()

		closed := make(chan struct{})
		var once sync.Once
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					once.Do(func() { close(closed) })
					return
				}
			}
		}()

		streamCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			<-closed
			cancel()
		}()

		err := streamer(streamCtx, conn)
		if err != nil && !errors.Is(err, context.Canceled) {
			_ = WriteStatus(conn, "error", "stream failed")
			return
		}

		_ = WriteStatus(conn, "info", "stream ended")
	})
}

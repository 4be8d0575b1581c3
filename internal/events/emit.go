package events

import (
	"context"
	"time"

	"github.com/Crax-AI/crax.app/internal/models"
)

const (
	ActorOperator = "operator"
	ActorSystem   = "system"
)

// Emit queues an event for batched insertion. When the buffer is full the
// event is written synchronously instead of dropped.
func (e *Emitter) Emit(evt models.Event) {
	evt.TimeStamp = time.Now().UTC()

	select {
	case e.buf <- evt:
	default:
		ctx, cancel := context.WithTimeout(
			context.Background(),
			2*time.Second,
		)
		defer cancel()

		_ = e.InsertOne(ctx, evt)
	}
}

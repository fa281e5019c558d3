package realtime

import (
	"context"

	"github.com/yungbote/blog-backend/internal/platform/logger"
)

// Emitter publishes a message to every subscriber of its channel.
type Emitter interface {
	Emit(ctx context.Context, msg SSEMessage)
}

// Publisher is the fan-out side of a message bus.
type Publisher interface {
	Publish(ctx context.Context, msg SSEMessage) error
}

type HubEmitter struct{ Hub *SSEHub }

func (e *HubEmitter) Emit(ctx context.Context, msg SSEMessage) {
	e.Hub.Broadcast(msg)
}

// BusEmitter publishes through a bus whose forwarder broadcasts on each instance.
type BusEmitter struct {
	Bus Publisher
	Log *logger.Logger
}

func (e *BusEmitter) Emit(ctx context.Context, msg SSEMessage) {
	if err := e.Bus.Publish(ctx, msg); err != nil && e.Log != nil {
		e.Log.Warn("SSE bus publish failed", "channel", msg.Channel, "event", msg.Event, "error", err)
	}
}

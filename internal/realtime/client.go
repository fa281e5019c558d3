package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/platform/logger"
)

// SSEClient is one open event stream. UserID is uuid.Nil for anonymous viewers.
type SSEClient struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Channels map[string]bool
	Outbound chan SSEMessage
	done     chan struct{}
	Logger   *logger.Logger

	closeOnce sync.Once
}

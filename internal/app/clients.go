package app

import (
	"errors"
	"fmt"

	"github.com/yungbote/blog-backend/internal/clients/contentapi"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/platform/neo4jdb"
	"github.com/yungbote/blog-backend/internal/realtime/bus"
)

// Clients are the outbound connections. Each one is nil when its
// environment is not configured.
type Clients struct {
	Content contentapi.Client
	Neo4j   *neo4jdb.Client
	SSEBus  bus.Bus
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	var out Clients
	switch c, err := contentapi.NewClient(log); {
	case errors.Is(err, contentapi.ErrNotConfigured):
		log.Warn("WORKER_API not set; auth and post routes will return 503")
	case err != nil:
		return Clients{}, fmt.Errorf("init content api: %w", err)
	default:
		out.Content = c
	}

	n4j, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init neo4j: %w", err)
	}
	out.Neo4j = n4j

	b, err := bus.NewSSEBus(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
	}
	out.SSEBus = b

	return out, nil
}

func (c Clients) close(log *logger.Logger) {
	if c.SSEBus != nil {
		if err := c.SSEBus.Close(); err != nil {
			log.Warn("close redis SSE bus failed", "error", err)
		}
	}
}

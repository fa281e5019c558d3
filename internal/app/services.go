package app

import (
	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime"
	"github.com/yungbote/blog-backend/internal/services"
)

type Services struct {
	Auth          services.AuthService
	Posts         services.PostService
	Markdown      services.MarkdownService
	Categories    services.CategoryService
	CategoryViews services.CategoryViewService
}

// wireEmitter publishes through the bus when one is configured and to the
// local hub otherwise.
func wireEmitter(log *logger.Logger, clients Clients, hub *realtime.SSEHub) realtime.Emitter {
	if clients.SSEBus != nil {
		return &realtime.BusEmitter{Bus: clients.SSEBus, Log: log}
	}
	return &realtime.HubEmitter{Hub: hub}
}

func wireServices(
	log *logger.Logger,
	cfg Config,
	clients Clients,
	tree taxonomy.Provider,
	emit realtime.Emitter,
	metrics *observability.Metrics,
) Services {
	log.Info("Wiring services...")
	categories := services.NewCategoryService(log, tree, clients.Neo4j)
	return Services{
		Auth:          services.NewAuthService(log, clients.Content),
		Posts:         services.NewPostService(log, clients.Content, services.NewPostNotifier(emit), categories),
		Markdown:      services.NewMarkdownService(),
		Categories:    categories,
		CategoryViews: services.NewCategoryViewService(log, tree, services.NewCategoryViewNotifier(emit), metrics, cfg.CategoryViews),
	}
}

package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	webhttp "github.com/yungbote/blog-backend/internal/http"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Clients  Clients
	Services Services
	SSEHub   *realtime.SSEHub
	Server   *webhttp.Server

	otelShutdown func(context.Context) error
}

func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tree, err := taxonomy.NewProvider(cfg.TaxonomyFile)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load category taxonomy: %w", err)
	}

	clients, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.Init()
	}
	shutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	hub := realtime.NewSSEHub(log)
	serviceset := wireServices(log, cfg, clients, tree, wireEmitter(log, clients, hub), metrics)
	handlerset := wireHandlers(log, cfg, serviceset, hub)
	mw, err := wireMiddleware(log, cfg)
	if err != nil {
		clients.close(log)
		log.Sync()
		return nil, err
	}

	server := webhttp.NewServer(cfg.Addr, webhttp.RouterConfig{
		Log:                 log,
		Metrics:             metrics,
		ServiceName:         cfg.ServiceName,
		AllowedOrigins:      cfg.AllowedOrigins,
		AuthHandler:         handlerset.Auth,
		AuthMiddleware:      mw.Auth,
		RealtimeHandler:     handlerset.Realtime,
		PostHandler:         handlerset.Post,
		CategoryHandler:     handlerset.Category,
		CategoryViewHandler: handlerset.CategoryView,
		HealthHandler:       handlerset.Health,
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Clients:      clients,
		Services:     serviceset,
		SSEHub:       hub,
		Server:       server,
		otelShutdown: shutdown,
	}, nil
}

// Run starts the bus forwarder, the category view janitor and the HTTP
// server, and returns once ctx is cancelled and all three have stopped.
func (a *App) Run(ctx context.Context) error {
	if a.Cfg.ExportOnStart && a.Clients.Neo4j != nil {
		if n, err := a.Services.Categories.Export(ctx); err != nil {
			a.Log.Warn("neo4j category export failed", "error", err)
		} else {
			a.Log.Info("neo4j category export done", "categories", n)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if a.Clients.SSEBus != nil {
		if err := a.Clients.SSEBus.StartForwarder(gctx, a.SSEHub.Broadcast); err != nil {
			return fmt.Errorf("start SSE forwarder: %w", err)
		}
	}
	g.Go(func() error {
		return a.Services.CategoryViews.RunJanitor(gctx)
	})
	g.Go(func() error {
		a.Log.Info("web server listening", "addr", a.Server.Addr())
		return a.Server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.otelShutdown != nil {
		_ = a.otelShutdown(ctx)
	}
	if a.Clients.Neo4j != nil {
		if err := a.Clients.Neo4j.Close(ctx); err != nil {
			a.Log.Warn("close neo4j failed", "error", err)
		}
	}
	a.Clients.close(a.Log)
	a.Log.Sync()
}

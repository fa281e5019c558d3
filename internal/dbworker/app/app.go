package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/blog-backend/internal/data/db"
	"github.com/yungbote/blog-backend/internal/data/repos"
	"github.com/yungbote/blog-backend/internal/dbworker/httpapi"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/authtoken"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/platform/openai"
)

type App struct {
	Log    *logger.Logger
	Cfg    Config
	DB     *db.Service
	Server *http.Server

	otelShutdown func(context.Context) error
}

func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tokens, err := authtoken.NewIssuer(cfg.JWTSecretKey, cfg.TokenTTL)
	if err != nil {
		log.Sync()
		return nil, err
	}

	dbs, err := db.NewService(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrateAll(dbs.DB()); err != nil {
		_ = dbs.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	var ai openai.Client
	switch c, err := openai.NewClient(log); {
	case errors.Is(err, openai.ErrNotConfigured):
		log.Warn("OPENAI_API_KEY not set; /ai/complete will return 503")
	case err != nil:
		_ = dbs.Close()
		log.Sync()
		return nil, fmt.Errorf("init openai: %w", err)
	default:
		ai = c
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.Init()
	}
	shutdown := observability.InitOTel(ctx, log, observability.OtelConfig{ServiceName: "blog-dbworker"})

	h := httpapi.New(httpapi.Deps{
		Log:    log,
		DB:     dbs.DB(),
		Repos:  repos.New(dbs.DB(), log),
		Tokens: tokens,
		AI:     ai,
	})

	return &App{
		Log: log,
		Cfg: cfg,
		DB:  dbs,
		Server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           httpapi.NewRouter(h, log, metrics),
			ReadHeaderTimeout: 10 * time.Second,
		},
		otelShutdown: shutdown,
	}, nil
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("db worker listening", "addr", a.Cfg.Addr, "driver", a.Cfg.DB.Driver)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
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
	if a.otelShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.otelShutdown(shutdownCtx)
		cancel()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Log.Warn("close database failed", "error", err)
		}
	}
	a.Log.Sync()
}

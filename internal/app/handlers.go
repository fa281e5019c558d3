package app

import (
	"github.com/yungbote/blog-backend/internal/http/handlers"
	"github.com/yungbote/blog-backend/internal/http/middleware"
	"github.com/yungbote/blog-backend/internal/modules/categories/render"
	"github.com/yungbote/blog-backend/internal/platform/authtoken"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Realtime     *handlers.RealtimeHandler
	Post         *handlers.PostHandler
	Category     *handlers.CategoryHandler
	CategoryView *handlers.CategoryViewHandler
	Health       *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, cfg Config, svcs Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	renderer := render.NewRendererFromEnv(log)
	rt := handlers.NewRealtimeHandler(log, hub)
	return Handlers{
		Auth:         handlers.NewAuthHandler(svcs.Auth, cfg.Cookies),
		Realtime:     rt,
		Post:         handlers.NewPostHandler(svcs.Posts, svcs.Markdown),
		Category:     handlers.NewCategoryHandler(svcs.Categories, renderer),
		CategoryView: handlers.NewCategoryViewHandler(svcs.CategoryViews, renderer, rt),
		Health:       handlers.NewHealthHandler(svcs.CategoryViews.Len),
	}
}

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

// wireMiddleware verifies token signatures when the worker's JWT secret is
// shared with this process. Without it the worker is the only verifier and
// the cookie pair is taken as is.
func wireMiddleware(log *logger.Logger, cfg Config) (Middleware, error) {
	log.Info("Wiring middleware...")
	var verifier middleware.TokenVerifier
	if cfg.JWTSecretKey != "" {
		issuer, err := authtoken.NewIssuer(cfg.JWTSecretKey, 0)
		if err != nil {
			return Middleware{}, err
		}
		verifier = issuer
	} else {
		log.Warn("JWT_SECRET_KEY not set; session cookies are not verified locally")
	}
	return Middleware{Auth: middleware.NewAuthMiddleware(log, verifier)}, nil
}

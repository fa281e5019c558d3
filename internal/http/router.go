package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/blog-backend/internal/http/handlers"
	httpMW "github.com/yungbote/blog-backend/internal/http/middleware"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	AuthHandler     *httpH.AuthHandler
	AuthMiddleware  *httpMW.AuthMiddleware
	RealtimeHandler *httpH.RealtimeHandler

	PostHandler         *httpH.PostHandler
	CategoryHandler     *httpH.CategoryHandler
	CategoryViewHandler *httpH.CategoryViewHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Posts (public)
		if cfg.PostHandler != nil {
			api.GET("/posts", cfg.PostHandler.ListPosts)
			api.POST("/posts/preview", cfg.PostHandler.Preview)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			api.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
		}

		// Categories
		if cfg.CategoryHandler != nil {
			api.GET("/categories", cfg.CategoryHandler.GetTree)
			api.GET("/categories/graph", cfg.CategoryHandler.GetGraph)
			api.GET("/categories/layout", cfg.CategoryHandler.GetLayout)
		}

		// Category views
		if h := cfg.CategoryViewHandler; h != nil {
			api.POST("/category-views", h.Create)
			cv := api.Group("/category-views/:id")
			cv.GET("", h.Get)
			cv.DELETE("", h.Delete)
			cv.POST("/expand/:node", h.Expand)
			cv.POST("/select/:node", h.Select)
			cv.POST("/click/:node", h.Click)
			cv.PUT("/mode", h.SetMode)
			cv.POST("/fullscreen", h.ToggleFullscreen)
			cv.DELETE("/fullscreen", h.CloseFullscreen)
			cv.POST("/resize", h.Resize)
			cv.POST("/zoom", h.Zoom)
			cv.POST("/drag/:node/start", h.DragStart)
			cv.POST("/drag/:node/move", h.DragMove)
			cv.POST("/drag/:node/end", h.DragEnd)
			cv.GET("/rows", h.Rows)
			cv.GET("/frame", h.Frame)
			cv.GET("/snapshot.png", h.Snapshot)
			cv.GET("/stream", h.Stream)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.PostHandler != nil {
			protected.POST("/posts", cfg.PostHandler.CreatePost)
			protected.POST("/ai/complete", cfg.PostHandler.Complete)
		}

		if cfg.CategoryHandler != nil {
			protected.POST("/categories/export", cfg.CategoryHandler.Export)
		}
	}

	return r
}

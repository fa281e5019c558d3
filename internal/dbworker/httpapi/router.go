package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/blog-backend/internal/http/middleware"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

func NewRouter(h *Handler, log *logger.Logger, metrics *observability.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("blog-dbworker"))
	r.Use(middleware.AttachTraceContext())
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.RequestLogger(log))

	r.GET("/healthcheck", h.HealthCheck)
	if metrics != nil {
		r.GET("/metrics", gin.WrapF(metrics.WriteHTTP))
	}

	r.POST("/users/add", h.Register)
	r.POST("/users/login", h.Login)
	r.GET("/posts", h.ListPosts)

	protected := r.Group("/")
	protected.Use(h.RequireBearer())
	{
		protected.POST("/posts", h.CreatePost)
		protected.POST("/ai/complete", h.Complete)
	}
	return r
}

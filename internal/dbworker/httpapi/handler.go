package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/blog-backend/internal/data/repos"
	"github.com/yungbote/blog-backend/internal/platform/authtoken"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/platform/openai"
)

const completionSystemPrompt = "You are a writing assistant for a technical blog. Continue the user's markdown draft in the same voice and language. Return only the continuation."

type Deps struct {
	Log    *logger.Logger
	DB     *gorm.DB
	Repos  repos.Repos
	Tokens *authtoken.Issuer
	// AI is nil when no completion backend is configured.
	AI openai.Client
}

type Handler struct {
	log    *logger.Logger
	db     *gorm.DB
	users  repos.UserRepo
	posts  repos.PostRepo
	tokens *authtoken.Issuer
	ai     openai.Client
	now    func() time.Time
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		log:    log.With("component", "WorkerAPI"),
		db:     d.DB,
		users:  d.Repos.Users,
		posts:  d.Repos.Posts,
		tokens: d.Tokens,
		ai:     d.AI,
		now:    time.Now,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// fail writes the worker's flat error shape, which the web server's
// content API client reads back as the upstream message.
func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

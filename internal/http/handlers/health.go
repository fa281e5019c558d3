package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	views func() int
}

// NewHealthHandler reports liveness. views, when set, adds the open
// category view count to the response.
func NewHealthHandler(views func() int) *HealthHandler { return &HealthHandler{views: views} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.views == nil {
		c.String(http.StatusOK, "ok")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "category_views": h.views()})
}

package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blog-backend/internal/clients/contentapi"
)

func (h *Handler) Complete(c *gin.Context) {
	if h.ai == nil {
		fail(c, http.StatusServiceUnavailable, "ai completion is not configured")
		return
	}
	var req contentapi.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusBadRequest, "content is required")
		return
	}
	text, err := h.ai.GenerateText(c.Request.Context(), completionSystemPrompt, req.Content)
	if err != nil {
		h.log.Warn("ai completion failed", "error", err)
		fail(c, http.StatusBadGateway, "ai completion failed: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, contentapi.CompleteResponse{Success: true, Completion: text})
}

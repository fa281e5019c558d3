package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blog-backend/internal/http/response"
	"github.com/yungbote/blog-backend/internal/modules/categories/render"
	"github.com/yungbote/blog-backend/internal/services"
)

type CategoryHandler struct {
	categories services.CategoryService
	renderer   *render.Renderer
}

func NewCategoryHandler(categories services.CategoryService, renderer *render.Renderer) *CategoryHandler {
	return &CategoryHandler{categories: categories, renderer: renderer}
}

func (h *CategoryHandler) GetTree(c *gin.Context) {
	response.RespondOK(c, h.categories.Tree())
}

func (h *CategoryHandler) GetGraph(c *gin.Context) {
	response.RespondOK(c, h.categories.Graph())
}

// GetLayout returns a settled layout. format=png returns the drawing instead of JSON.
func (h *CategoryHandler) GetLayout(c *gin.Context) {
	width, err := floatQuery(c, "width")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_width", err)
		return
	}
	height, err := floatQuery(c, "height")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_height", err)
		return
	}
	var selected []string
	if raw := strings.TrimSpace(c.Query("selected")); raw != "" {
		selected = strings.Split(raw, ",")
	}
	f, err := h.categories.Layout(c.Request.Context(), width, height, selected)
	if err != nil {
		response.RespondAPIError(c, err, "layout_failed")
		return
	}
	if c.Query("format") == "png" && h.renderer != nil {
		img, err := h.renderer.PNG(f)
		if err != nil {
			response.RespondError(c, http.StatusInternalServerError, "render_failed", err)
			return
		}
		c.Data(http.StatusOK, "image/png", img)
		return
	}
	response.RespondOK(c, f)
}

func (h *CategoryHandler) Export(c *gin.Context) {
	n, err := h.categories.Export(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "neo4j_export_failed")
		return
	}
	response.RespondOK(c, gin.H{"success": true, "categories": n})
}

func floatQuery(c *gin.Context, key string) (float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a finite number", key)
	}
	return v, nil
}

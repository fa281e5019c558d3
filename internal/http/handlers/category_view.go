package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/http/response"
	"github.com/yungbote/blog-backend/internal/modules/categories/render"
	"github.com/yungbote/blog-backend/internal/modules/categories/view"
	"github.com/yungbote/blog-backend/internal/realtime"
	"github.com/yungbote/blog-backend/internal/services"
)

type CategoryViewHandler struct {
	views    services.CategoryViewService
	renderer *render.Renderer
	realtime *RealtimeHandler
}

func NewCategoryViewHandler(views services.CategoryViewService, renderer *render.Renderer, rt *RealtimeHandler) *CategoryViewHandler {
	return &CategoryViewHandler{views: views, renderer: renderer, realtime: rt}
}

func viewID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid category view id: %w", err))
		return uuid.Nil, false
	}
	return id, true
}

// apply runs fn on the view named in the path and responds with its snapshot.
func (h *CategoryViewHandler) apply(c *gin.Context, fn func(*view.Controller) error) {
	id, ok := viewID(c)
	if !ok {
		return
	}
	snap, err := h.views.Do(c.Request.Context(), id, fn)
	if err != nil {
		response.RespondAPIError(c, err, "category_view_failed")
		return
	}
	response.RespondOK(c, snap)
}

func (h *CategoryViewHandler) Create(c *gin.Context) {
	var req services.CreateCategoryViewRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}
	snap, err := h.views.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "category_view_failed")
		return
	}
	response.RespondCreated(c, snap)
}

func (h *CategoryViewHandler) Get(c *gin.Context) {
	id, ok := viewID(c)
	if !ok {
		return
	}
	snap, err := h.views.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "category_view_failed")
		return
	}
	response.RespondOK(c, snap)
}

func (h *CategoryViewHandler) Delete(c *gin.Context) {
	id, ok := viewID(c)
	if !ok {
		return
	}
	if err := h.views.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err, "category_view_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CategoryViewHandler) Expand(c *gin.Context) {
	node := c.Param("node")
	h.apply(c, func(vc *view.Controller) error {
		_, err := vc.ToggleExpand(node)
		return err
	})
}

func (h *CategoryViewHandler) Select(c *gin.Context) {
	node := c.Param("node")
	h.apply(c, func(vc *view.Controller) error { return vc.Select(node) })
}

// Click is a row click in tree mode and a node click in graph mode.
func (h *CategoryViewHandler) Click(c *gin.Context) {
	node := c.Param("node")
	h.apply(c, func(vc *view.Controller) error {
		if vc.State().Mode == view.ModeGraph {
			return vc.ClickNode(node)
		}
		return vc.ClickRow(node)
	})
}

func (h *CategoryViewHandler) SetMode(c *gin.Context) {
	var req struct {
		Mode view.Mode `json:"mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_mode", err)
		return
	}
	h.apply(c, func(vc *view.Controller) error { return vc.SetViewMode(req.Mode) })
}

func (h *CategoryViewHandler) ToggleFullscreen(c *gin.Context) {
	h.apply(c, func(vc *view.Controller) error {
		_, err := vc.ToggleFullscreen()
		return err
	})
}

func (h *CategoryViewHandler) CloseFullscreen(c *gin.Context) {
	h.apply(c, func(vc *view.Controller) error { return vc.CloseFullscreen() })
}

func (h *CategoryViewHandler) Resize(c *gin.Context) {
	var req struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.apply(c, func(vc *view.Controller) error { return vc.Resize(req.Width, req.Height) })
}

func (h *CategoryViewHandler) Zoom(c *gin.Context) {
	var req struct {
		K *float64 `json:"k"`
		X float64  `json:"x"`
		Y float64  `json:"y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.K == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("k is required"))
		return
	}
	h.apply(c, func(vc *view.Controller) error {
		_, err := vc.Zoom(*req.K, req.X, req.Y)
		return err
	})
}

func (h *CategoryViewHandler) DragStart(c *gin.Context) {
	node := c.Param("node")
	h.apply(c, func(vc *view.Controller) error { return vc.DragStart(node) })
}

func (h *CategoryViewHandler) DragMove(c *gin.Context) {
	node := c.Param("node")
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.apply(c, func(vc *view.Controller) error { return vc.DragMove(node, req.X, req.Y) })
}

func (h *CategoryViewHandler) DragEnd(c *gin.Context) {
	node := c.Param("node")
	h.apply(c, func(vc *view.Controller) error { return vc.DragEnd(node) })
}

func (h *CategoryViewHandler) Rows(c *gin.Context) {
	id, ok := viewID(c)
	if !ok {
		return
	}
	snap, err := h.views.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "category_view_failed")
		return
	}
	response.RespondOK(c, gin.H{"rows": snap.Rows})
}

func (h *CategoryViewHandler) Frame(c *gin.Context) {
	id, ok := viewID(c)
	if !ok {
		return
	}
	f, err := h.views.Frame(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "category_view_failed")
		return
	}
	response.RespondOK(c, f)
}

func (h *CategoryViewHandler) Snapshot(c *gin.Context) {
	id, ok := viewID(c)
	if !ok {
		return
	}
	f, err := h.views.Frame(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "category_view_failed")
		return
	}
	img, err := h.renderer.PNG(f)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "render_failed", err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", img)
}

func (h *CategoryViewHandler) Stream(c *gin.Context) {
	id, ok := viewID(c)
	if !ok {
		return
	}
	if _, err := h.views.Get(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err, "category_view_failed")
		return
	}
	h.realtime.serve(c, realtime.CategoryViewChannel(id))
}

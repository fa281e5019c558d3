package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blog-backend/internal/http/response"
	"github.com/yungbote/blog-backend/internal/services"
)

type PostHandler struct {
	posts    services.PostService
	markdown services.MarkdownService
}

func NewPostHandler(posts services.PostService, markdown services.MarkdownService) *PostHandler {
	return &PostHandler{posts: posts, markdown: markdown}
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	posts, err := h.posts.ListPosts(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, err, "posts_unavailable")
		return
	}
	response.RespondOK(c, gin.H{"success": true, "posts": posts})
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var in services.CreatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	resp, err := h.posts.CreatePost(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err, "post_failed")
		return
	}
	response.RespondOK(c, resp)
}

func (h *PostHandler) Preview(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	preview, err := h.markdown.Preview(req.Content)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_markdown", err)
		return
	}
	response.RespondOK(c, preview)
}

func (h *PostHandler) Complete(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	resp, err := h.posts.Complete(c.Request.Context(), req.Content)
	if err != nil {
		response.RespondAPIError(c, err, "ai_failed")
		return
	}
	response.RespondOK(c, resp)
}

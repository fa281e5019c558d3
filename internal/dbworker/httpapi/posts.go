package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/clients/contentapi"
	types "github.com/yungbote/blog-backend/internal/domain"
	domainpost "github.com/yungbote/blog-backend/internal/domain/post"
	"github.com/yungbote/blog-backend/internal/platform/ctxutil"
)

// CreatePost reports every failure after authentication as a 500 with a
// "save post failed" message.
func (h *Handler) CreatePost(c *gin.Context) {
	var req contentapi.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusInternalServerError, "save post failed: invalid request body")
		return
	}
	p, err := h.newPost(c, req)
	if err != nil {
		fail(c, http.StatusInternalServerError, "save post failed: "+err.Error())
		return
	}
	if _, err := h.posts.Create(c.Request.Context(), nil, []*types.Post{p}); err != nil {
		h.log.Error("insert post failed", "error", err)
		fail(c, http.StatusInternalServerError, "save post failed: "+err.Error())
		return
	}
	h.log.Info("post created", "post_id", p.ID, "author_id", p.AuthorID, "category", p.Category)
	c.JSON(http.StatusOK, contentapi.CreatePostResponse{
		Success: true,
		Message: "post published",
		ID:      p.ID,
	})
}

func (h *Handler) newPost(c *gin.Context, req contentapi.CreatePostRequest) (*types.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, errors.New("content is required")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" && len(req.Categories) > 0 {
		category = req.Categories[0]
	}

	ad := ctxutil.GetAuthData(c.Request.Context())
	authorID, err := uuid.Parse(strings.TrimSpace(req.AuthorID))
	if err != nil && ad != nil {
		authorID, err = uuid.Parse(ad.UserID)
	}
	if err != nil {
		return nil, errors.New("authorId is not a valid user id")
	}

	return &types.Post{
		Title:      title,
		Content:    req.Content,
		Category:   category,
		Categories: domainpost.StringList(req.Categories),
		Tags:       domainpost.StringList(req.Tags),
		AuthorID:   authorID,
		CreatedAt:  h.now().UTC(),
	}, nil
}

func (h *Handler) ListPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	posts, err := h.posts.ListRecent(c.Request.Context(), nil, limit)
	if err != nil {
		h.log.Error("list posts failed", "error", err)
		fail(c, http.StatusInternalServerError, "list posts failed: "+err.Error())
		return
	}
	out := make([]contentapi.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, contentapi.Post{
			ID:         p.ID,
			Title:      p.Title,
			Content:    p.Content,
			Category:   p.Category,
			Categories: domainpost.DecodeStringList(p.Categories),
			Tags:       domainpost.DecodeStringList(p.Tags),
			AuthorID:   p.AuthorID,
			CreatedAt:  p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, contentapi.ListPostsResponse{Success: true, Posts: out})
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/blog-backend/internal/clients/contentapi"
	"github.com/yungbote/blog-backend/internal/platform/apierr"
	"github.com/yungbote/blog-backend/internal/platform/ctxutil"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

var (
	errWorkerUnavailable = errors.New("content api is not configured")
	errServer            = errors.New("server error")
)

type CreatePostInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Category   string   `json:"category"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

type PostService interface {
	CreatePost(ctx context.Context, in CreatePostInput) (*contentapi.CreatePostResponse, error)
	ListPosts(ctx context.Context, limit int) ([]contentapi.Post, error)
	Complete(ctx context.Context, content string) (*contentapi.CompleteResponse, error)
}

type postService struct {
	log      *logger.Logger
	content  contentapi.Client
	notifier PostNotifier
	tree     interface{ Has(id string) bool }
}

func NewPostService(log *logger.Logger, content contentapi.Client, notifier PostNotifier, tree CategoryService) PostService {
	serviceLog := log.With("service", "PostService")
	return &postService{log: serviceLog, content: content, notifier: notifier, tree: tree}
}

func authOf(ctx context.Context) (*ctxutil.AuthData, error) {
	ad := ctxutil.GetAuthData(ctx)
	if ad == nil || ad.Token == "" {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("not logged in"))
	}
	return ad, nil
}

// CreatePost forwards a post to the worker on behalf of the signed-in author.
// A post picked with the multi-select picker carries categories; the first
// one becomes the primary category.
func (ps *postService) CreatePost(ctx context.Context, in CreatePostInput) (*contentapi.CreatePostResponse, error) {
	ad, err := authOf(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, apierr.BadRequest("missing_fields", errors.New("title and content are required"))
	}
	category := strings.TrimSpace(in.Category)
	if category == "" && len(in.Categories) > 0 {
		category = in.Categories[0]
	}
	if ps.tree != nil {
		for _, id := range append([]string{category}, in.Categories...) {
			if id != "" && !ps.tree.Has(id) {
				return nil, apierr.BadRequest("unknown_category", fmt.Errorf("unknown category %q", id))
			}
		}
	}
	if ps.content == nil {
		return nil, apierr.New(http.StatusInternalServerError, "post_failed", errWorkerUnavailable)
	}

	resp, err := ps.content.CreatePost(ctx, ad.Token, contentapi.CreatePostRequest{
		Title:      in.Title,
		Content:    in.Content,
		Category:   category,
		Categories: in.Categories,
		Tags:       in.Tags,
		AuthorID:   ad.UserID,
	})
	if err != nil {
		ps.log.Error("create post forward failed", "author_id", ad.UserID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "post_failed", errServer)
	}
	ps.notifier.PostCreated(ctx, resp.ID, in.Title, category, ad.UserID)
	return resp, nil
}

func (ps *postService) ListPosts(ctx context.Context, limit int) ([]contentapi.Post, error) {
	if ps.content == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "posts_unavailable", errWorkerUnavailable)
	}
	posts, err := ps.content.ListPosts(ctx, limit)
	if err != nil {
		ps.log.Warn("list posts forward failed", "error", err)
		return nil, upstreamError(err, "posts_unavailable", http.StatusBadGateway, errServer)
	}
	return posts, nil
}

func (ps *postService) Complete(ctx context.Context, content string) (*contentapi.CompleteResponse, error) {
	ad, err := authOf(ctx)
	if err != nil {
		return nil, err
	}
	if ps.content == nil {
		return nil, apierr.New(http.StatusInternalServerError, "ai_failed", errWorkerUnavailable)
	}
	resp, err := ps.content.Complete(ctx, ad.Token, content)
	if err != nil {
		ps.log.Error("ai completion forward failed", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "ai_failed", errServer)
	}
	return resp, nil
}

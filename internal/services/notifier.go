package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/modules/categories/view"
	"github.com/yungbote/blog-backend/internal/realtime"
)

// =========================
// Category view notifier
// =========================

type CategoryViewNotifier interface {
	Frame(ctx context.Context, id uuid.UUID, f view.Frame)
	SelectionChanged(ctx context.Context, id uuid.UUID, selected []string)
	StateChanged(ctx context.Context, id uuid.UUID, st view.State)
	Closed(ctx context.Context, id uuid.UUID, reason string)
}

type categoryViewNotifier struct {
	emit realtime.Emitter
}

func NewCategoryViewNotifier(emit realtime.Emitter) CategoryViewNotifier {
	return &categoryViewNotifier{emit: emit}
}

func (n *categoryViewNotifier) send(ctx context.Context, id uuid.UUID, event realtime.SSEEvent, data any) {
	if n == nil || n.emit == nil || id == uuid.Nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.CategoryViewChannel(id),
		Event:   event,
		Data:    data,
	})
}

func (n *categoryViewNotifier) Frame(ctx context.Context, id uuid.UUID, f view.Frame) {
	n.send(ctx, id, realtime.SSEEventCategoryFrame, f)
}

func (n *categoryViewNotifier) SelectionChanged(ctx context.Context, id uuid.UUID, selected []string) {
	n.send(ctx, id, realtime.SSEEventCategorySelection, map[string]any{
		"category_view_id": id,
		"selected":         selected,
	})
}

func (n *categoryViewNotifier) StateChanged(ctx context.Context, id uuid.UUID, st view.State) {
	n.send(ctx, id, realtime.SSEEventCategoryState, st)
}

func (n *categoryViewNotifier) Closed(ctx context.Context, id uuid.UUID, reason string) {
	n.send(ctx, id, realtime.SSEEventCategoryClosed, map[string]any{
		"category_view_id": id,
		"reason":           reason,
	})
}

// =========================
// Post notifier
// =========================

const PostsChannel = "posts"

type PostNotifier interface {
	PostCreated(ctx context.Context, postID uuid.UUID, title, category, authorID string)
}

type postNotifier struct {
	emit realtime.Emitter
}

func NewPostNotifier(emit realtime.Emitter) PostNotifier {
	return &postNotifier{emit: emit}
}

func (n *postNotifier) PostCreated(ctx context.Context, postID uuid.UUID, title, category, authorID string) {
	if n == nil || n.emit == nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: PostsChannel,
		Event:   realtime.SSEEventPostCreated,
		Data: map[string]any{
			"post_id":   postID,
			"title":     title,
			"category":  category,
			"author_id": authorID,
		},
	})
}

package post

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/blog-backend/internal/domain"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type PostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, posts []*types.Post) ([]*types.Post, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Post, error)
}

type postRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	repoLog := baseLog.With("repo", "PostRepo")
	return &postRepo{db: db, log: repoLog}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func (pr *postRepo) Create(ctx context.Context, tx *gorm.DB, posts []*types.Post) ([]*types.Post, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(posts) == 0 {
		return []*types.Post{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListRecent returns the newest posts first.
func (pr *postRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Post, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Post{}
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

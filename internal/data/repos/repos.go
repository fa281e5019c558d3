package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/blog-backend/internal/data/repos/post"
	"github.com/yungbote/blog-backend/internal/data/repos/user"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type PostRepo = post.PostRepo

type Repos struct {
	Users UserRepo
	Posts PostRepo
}

func New(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Users: user.NewUserRepo(db, log),
		Posts: post.NewPostRepo(db, log),
	}
}

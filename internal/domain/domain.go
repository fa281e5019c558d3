package domain

import (
	"github.com/yungbote/blog-backend/internal/domain/post"
	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/domain/user"
)

type User = user.User
type Post = post.Post
type Category = taxonomy.Category

package contentapi

import (
	"time"

	"github.com/google/uuid"
)

type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	User    UserInfo `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

type CreatePostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Category   string   `json:"category,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	AuthorID   string   `json:"authorId"`
}

type CreatePostResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	ID      uuid.UUID `json:"id"`
}

type Post struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	AuthorID   uuid.UUID `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListPostsResponse struct {
	Success bool   `json:"success"`
	Posts   []Post `json:"posts"`
}

type CompleteRequest struct {
	Content string `json:"content"`
}

type CompleteResponse struct {
	Success    bool   `json:"success"`
	Completion string `json:"completion"`
}

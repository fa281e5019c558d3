package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/blog-backend/internal/clients/contentapi"
	types "github.com/yungbote/blog-backend/internal/domain"
)

var (
	errUsernameTaken = errors.New("username already taken")
	errEmailTaken    = errors.New("email already registered")
)

func userInfo(u *types.User) contentapi.UserInfo {
	return contentapi.UserInfo{ID: u.ID, Username: u.Username, Email: u.Email}
}

func validateRegistration(req *contentapi.RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return errors.New("username, email and password are required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	return nil
}

func (h *Handler) Register(c *gin.Context) {
	var req contentapi.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateRegistration(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("hash password failed", "error", err)
		fail(c, http.StatusInternalServerError, "register failed")
		return
	}

	user := &types.User{Username: req.Username, Email: req.Email, Password: string(hash)}
	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		return h.createUser(c.Request.Context(), tx, user)
	})
	switch {
	case errors.Is(err, errUsernameTaken), errors.Is(err, errEmailTaken):
		fail(c, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.log.Error("create user failed", "error", err)
		fail(c, http.StatusInternalServerError, "register failed: "+err.Error())
		return
	}

	h.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusCreated, contentapi.RegisterResponse{
		Success: true,
		Message: "registered",
		User:    userInfo(user),
	})
}

func (h *Handler) createUser(ctx context.Context, tx *gorm.DB, user *types.User) error {
	taken, err := h.users.UsernameExists(ctx, tx, user.Username)
	if err != nil {
		return err
	}
	if taken {
		return errUsernameTaken
	}
	if taken, err = h.users.EmailExists(ctx, tx, user.Email); err != nil {
		return err
	}
	if taken {
		return errEmailTaken
	}
	_, err = h.users.Create(ctx, tx, []*types.User{user})
	return err
}

func (h *Handler) Login(c *gin.Context) {
	var req contentapi.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "username and password are required")
		return
	}
	user, err := h.users.GetByUsername(c.Request.Context(), nil, username)
	if err != nil {
		h.log.Error("lookup user failed", "error", err)
		fail(c, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		fail(c, http.StatusUnauthorized, "invalid username or password")
		return
	}
	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.log.Error("issue token failed", "error", err)
		fail(c, http.StatusInternalServerError, "login failed")
		return
	}
	c.JSON(http.StatusOK, contentapi.LoginResponse{
		Success: true,
		Token:   token,
		User:    userInfo(user),
	})
}

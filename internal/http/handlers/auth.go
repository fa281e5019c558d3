package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blog-backend/internal/clients/contentapi"
	"github.com/yungbote/blog-backend/internal/http/middleware"
	"github.com/yungbote/blog-backend/internal/http/response"
	"github.com/yungbote/blog-backend/internal/services"
)

type CookieConfig struct {
	Domain string
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	authService services.AuthService
	cookies     CookieConfig
}

func NewAuthHandler(authService services.AuthService, cookies CookieConfig) *AuthHandler {
	if cookies.MaxAge <= 0 {
		cookies.MaxAge = 7 * 24 * time.Hour
	}
	return &AuthHandler{authService: authService, cookies: cookies}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req contentapi.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	resp, err := ah.authService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "registration_failed")
		return
	}
	response.RespondOK(c, gin.H{
		"success": true,
		"message": "registered",
		"user":    resp.User,
	})
}

// Login signs in through the worker and stores the session in the token
// and userInfo cookies. The page scripts read both, so neither is HttpOnly.
func (ah *AuthHandler) Login(c *gin.Context) {
	var req contentapi.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	resp, err := ah.authService.LoginUser(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "login_failed")
		return
	}
	maxAge := int(ah.cookies.MaxAge.Seconds())
	ah.setCookie(c, middleware.CookieToken, resp.Token, maxAge)
	ah.setCookie(c, middleware.CookieUserInfo, middleware.EncodeUserInfo(middleware.UserInfo{
		ID:       resp.User.ID.String(),
		Username: resp.User.Username,
	}), maxAge)
	response.RespondOK(c, gin.H{
		"success": true,
		"user":    resp.User,
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	ah.setCookie(c, middleware.CookieToken, "", -1)
	ah.setCookie(c, middleware.CookieUserInfo, "", -1)
	response.RespondOK(c, gin.H{"success": true})
}

func (ah *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", ah.cookies.Domain, ah.cookies.Secure, false)
}

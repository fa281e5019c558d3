package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blog-backend/internal/platform/authtoken"
	"github.com/yungbote/blog-backend/internal/platform/ctxutil"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

const (
	CookieToken    = "token"
	CookieUserInfo = "userInfo"
)

var errNotLoggedIn = errors.New("not logged in")

// UserInfo is the JSON stored in the userInfo cookie.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func EncodeUserInfo(ui UserInfo) string {
	raw, _ := json.Marshal(ui)
	return url.QueryEscape(string(raw))
}

func DecodeUserInfo(v string) (UserInfo, error) {
	var ui UserInfo
	if unescaped, err := url.QueryUnescape(v); err == nil {
		v = unescaped
	}
	if err := json.Unmarshal([]byte(v), &ui); err != nil {
		return UserInfo{}, err
	}
	return ui, nil
}

type TokenVerifier interface {
	Parse(token string) (*authtoken.Claims, error)
}

type AuthMiddleware struct {
	log      *logger.Logger
	verifier TokenVerifier
}

// NewAuthMiddleware builds the cookie check. A nil verifier accepts any
// non-empty token.
func NewAuthMiddleware(log *logger.Logger, verifier TokenVerifier) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, verifier: verifier}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ad, err := am.authenticate(c)
		if err != nil {
			am.log.Debug("auth rejected", "path", c.FullPath(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": err.Error(), "code": "unauthorized"},
			})
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithAuthData(c.Request.Context(), ad))
		c.Next()
	}
}

func (am *AuthMiddleware) authenticate(c *gin.Context) (*ctxutil.AuthData, error) {
	tokenString := extractToken(c)
	if tokenString == "" {
		return nil, errNotLoggedIn
	}
	raw, err := c.Cookie(CookieUserInfo)
	if err != nil || raw == "" {
		return nil, errNotLoggedIn
	}
	ui, err := DecodeUserInfo(raw)
	if err != nil {
		return nil, errNotLoggedIn
	}
	ad := &ctxutil.AuthData{UserID: ui.ID, Username: ui.Username, Token: tokenString}
	if am.verifier == nil {
		return ad, nil
	}
	claims, err := am.verifier.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if ad.UserID != "" && ad.UserID != claims.Subject {
		return nil, errors.New("token does not match user")
	}
	ad.UserID = claims.Subject
	if ad.Username == "" {
		ad.Username = claims.Username
	}
	return ad, nil
}

func extractToken(c *gin.Context) string {
	if v, err := c.Cookie(CookieToken); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return BearerToken(c)
}

func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

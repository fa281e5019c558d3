package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blog-backend/internal/http/middleware"
	"github.com/yungbote/blog-backend/internal/platform/ctxutil"
)

// RequireBearer accepts only tokens this worker issued.
func (h *Handler) RequireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middleware.BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing bearer token"})
			return
		}
		claims, err := h.tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
			return
		}
		ctx := ctxutil.WithAuthData(c.Request.Context(), &ctxutil.AuthData{
			UserID:   claims.Subject,
			Username: claims.Username,
			Token:    token,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

package response

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/blog-backend/internal/platform/apierr"
)

// RespondAPIError writes err using the status and code of a wrapped
// *apierr.Error, falling back to 500 with fallbackCode.
func RespondAPIError(c *gin.Context, err error, fallbackCode string) {
	ae := apierr.From(err, fallbackCode)
	RespondError(c, ae.Status, ae.Code, ae)
}

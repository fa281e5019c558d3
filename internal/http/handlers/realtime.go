package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/http/response"
	"github.com/yungbote/blog-backend/internal/platform/ctxutil"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime"
	"github.com/yungbote/blog-backend/internal/services"
)

const categoryViewChannelPrefix = "category-view:"

type RealtimeHandler struct {
	Log *logger.Logger
	Hub *realtime.SSEHub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{Log: log.With("handler", "RealtimeHandler"), Hub: hub}
}

func allowedChannel(ch string) bool {
	if ch == services.PostsChannel {
		return true
	}
	if rest, ok := strings.CutPrefix(ch, categoryViewChannelPrefix); ok {
		_, err := uuid.Parse(rest)
		return err == nil
	}
	return false
}

// SSEStream subscribes to the posts feed by default, or to the channels
// named by repeated channel query parameters.
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	channels := c.QueryArray("channel")
	if len(channels) == 0 {
		channels = []string{services.PostsChannel}
	}
	for _, ch := range channels {
		if !allowedChannel(ch) {
			response.RespondError(c, http.StatusBadRequest, "invalid_channel", fmt.Errorf("channel %q is not allowed", ch))
			return
		}
	}
	h.serve(c, channels...)
}

func (h *RealtimeHandler) serve(c *gin.Context, channels ...string) {
	userID := uuid.Nil
	if ad := ctxutil.GetAuthData(c.Request.Context()); ad != nil {
		if id, err := uuid.Parse(ad.UserID); err == nil {
			userID = id
		}
	}
	client := h.Hub.NewSSEClient(userID)
	for _, ch := range channels {
		h.Hub.AddChannel(client, ch)
	}
	h.Log.Debug("SSE stream open", "client_id", client.ID, "channels", channels)

	h.Hub.ServeHTTP(c.Writer, c.Request, client)

	h.Hub.CloseClient(client)
	h.Log.Debug("SSE stream closed", "client_id", client.ID)
}

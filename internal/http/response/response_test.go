package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/blog-backend/internal/platform/apierr"
)

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		err    error
		status int
		want   ErrorEnvelope
	}{
		{
			name:   "wrapped api error",
			err:    fmt.Errorf("expand: %w", apierr.NotFound("unknown_category", errors.New("unknown category \"x\""))),
			status: http.StatusNotFound,
			want:   ErrorEnvelope{Error: APIError{Message: `unknown category "x"`, Code: "unknown_category"}},
		},
		{
			name:   "plain error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			want:   ErrorEnvelope{Error: APIError{Message: "boom", Code: "internal"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondAPIError(c, tc.err, "internal")
			if rec.Code != tc.status {
				t.Fatalf("status=%d want %d", rec.Code, tc.status)
			}
			var got ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("envelope (-want +got):\n%s", diff)
			}
		})
	}
}

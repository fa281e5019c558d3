package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/modules/categories/render"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime"
	"github.com/yungbote/blog-backend/internal/services"
)

func TestAllowedChannel(t *testing.T) {
	tests := []struct {
		ch   string
		want bool
	}{
		{ch: services.PostsChannel, want: true},
		{ch: realtime.CategoryViewChannel(uuid.New()), want: true},
		{ch: "category-view:nope", want: false},
		{ch: "user:1", want: false},
		{ch: "", want: false},
	}
	for _, tc := range tests {
		if got := allowedChannel(tc.ch); got != tc.want {
			t.Fatalf("allowedChannel(%q)=%v want %v", tc.ch, got, tc.want)
		}
	}
}

func TestSSEStreamRejectsUnknownChannel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	h := NewRealtimeHandler(log, realtime.NewSSEHub(log))
	r := gin.New()
	r.GET("/sse", h.SSEStream)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sse?channel=posts&channel=admin", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", rec.Code)
	}
}

func TestHealthWithoutViews(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthcheck", NewHealthHandler(nil).HealthCheck)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("code=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestClickDispatchesOnMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	hub := realtime.NewSSEHub(log)
	views := services.NewCategoryViewService(log, taxonomy.Static(taxonomy.Default()),
		services.NewCategoryViewNotifier(&realtime.HubEmitter{Hub: hub}), nil,
		services.CategoryViewConfig{FrameInterval: -1})
	renderer, err := render.NewRenderer("", 0)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	h := NewCategoryViewHandler(views, renderer, NewRealtimeHandler(log, hub))

	snap, err := views.Create(t.Context(), services.CreateCategoryViewRequest{Kind: "selector", Mode: "graph", Width: 600})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = views.Delete(t.Context(), snap.ID) })

	r := gin.New()
	r.POST("/views/:id/click/:node", h.Click)
	r.PUT("/views/:id/mode", h.SetMode)
	click := func(node string) services.CategoryViewSnapshot {
		t.Helper()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/views/"+snap.ID.String()+"/click/"+node, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("click %s: code=%d body=%s", node, rec.Code, rec.Body.String())
		}
		var out services.CategoryViewSnapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return out
	}

	got := click("frontend")
	if slices.Contains(got.State.Expanded, "frontend") {
		t.Fatalf("graph click should not expand: %v", got.State.Expanded)
	}
	if !slices.Equal(got.State.Selected, []string{"frontend"}) {
		t.Fatalf("selected=%v", got.State.Selected)
	}

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"mode":"tree"}`)
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/views/"+snap.ID.String()+"/mode", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("mode: code=%d body=%s", rec.Code, rec.Body.String())
	}

	got = click("frontend")
	if !slices.Contains(got.State.Expanded, "frontend") || len(got.State.Selected) != 0 {
		t.Fatalf("tree click state=%+v", got.State)
	}
}

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/yungbote/blog-backend/internal/platform/logger"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, v any) *http.Response {
	b, _ := json.Marshal(v)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(b)),
	}
}

func TestGenerateText(t *testing.T) {
	hc := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("authorization=%q", got)
		}
		var in chatCompletionRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			t.Fatalf("decode req: %v", err)
		}
		if in.Model != "m1" || len(in.Messages) != 2 || in.Messages[1].Content != "hello" {
			t.Fatalf("unexpected request: %+v", in)
		}
		return jsonResponse(http.StatusOK, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": "hello world"}}},
		}), nil
	})}

	c, err := NewWithHTTPClient(logger.Nop(), Config{BaseURL: "http://upstream/", APIKey: "sk-test", Model: "m1"}, hc)
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	got, err := c.GenerateText(context.Background(), "be brief", "hello")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("got=%q", got)
	}
}

func TestGenerateTextUpstreamError(t *testing.T) {
	hc := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, map[string]any{"error": "slow down"}), nil
	})}
	c, err := NewWithHTTPClient(logger.Nop(), Config{APIKey: "k"}, hc)
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	_, err = c.GenerateText(context.Background(), "", "x")
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("err=%v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(logger.Nop(), Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err=%v", err)
	}
}

package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/envutil"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

var ErrNotConfigured = errors.New("contentapi: WORKER_API not set")

// Client talks to the database worker that owns users and posts.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	CreatePost(ctx context.Context, token string, req CreatePostRequest) (*CreatePostResponse, error)
	ListPosts(ctx context.Context, limit int) ([]Post, error)
	Complete(ctx context.Context, token string, content string) (*CompleteResponse, error)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		BaseURL: envutil.String("WORKER_API", ""),
		Timeout: envutil.Duration("WORKER_API_TIMEOUT", 30*time.Second),
	}
}

type client struct {
	log        *logger.Logger
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        50,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return NewWithHTTPClient(log, cfg, &http.Client{Transport: tr})
}

func NewWithHTTPClient(log *logger.Logger, cfg Config, httpClient *http.Client) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("contentapi: logger required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrNotConfigured
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("contentapi: invalid WORKER_API: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		log:        log.With("client", "ContentAPI"),
		baseURL:    baseURL,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
	}, nil
}

func (c *client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.doJSON(ctx, "register", http.MethodPost, "/users/add", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.doJSON(ctx, "login", http.MethodPost, "/users/login", "", req, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Token) == "" {
		return nil, errors.New("contentapi: login returned no token")
	}
	return &out, nil
}

func (c *client) CreatePost(ctx context.Context, token string, req CreatePostRequest) (*CreatePostResponse, error) {
	var out CreatePostResponse
	if err := c.doJSON(ctx, "create_post", http.MethodPost, "/posts", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) ListPosts(ctx context.Context, limit int) ([]Post, error) {
	path := "/posts"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out ListPostsResponse
	if err := c.doJSON(ctx, "list_posts", http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	if out.Posts == nil {
		out.Posts = []Post{}
	}
	return out.Posts, nil
}

func (c *client) Complete(ctx context.Context, token string, content string) (*CompleteResponse, error) {
	var out CompleteResponse
	if err := c.doJSON(ctx, "ai_complete", http.MethodPost, "/ai/complete", token, CompleteRequest{Content: content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) doJSON(ctx context.Context, op, method, path, token string, body any, out any) (err error) {
	ctx, span := observability.Tracer().Start(ctx, "contentapi."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", path),
	)

	start := time.Now()
	status := "error"
	defer func() {
		observability.Current().ObserveUpstream(op, status, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contentapi %s: %w", op, err)
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.log.Debug("content api request", "op", op, "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("contentapi %s: decode response: %w", op, err)
	}
	return nil
}

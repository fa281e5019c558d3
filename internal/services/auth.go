package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/yungbote/blog-backend/internal/clients/contentapi"
	"github.com/yungbote/blog-backend/internal/platform/apierr"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

var errAuthUnavailable = errors.New("registration service is temporarily unavailable, please retry later")

type AuthService interface {
	RegisterUser(ctx context.Context, req contentapi.RegisterRequest) (*contentapi.RegisterResponse, error)
	LoginUser(ctx context.Context, req contentapi.LoginRequest) (*contentapi.LoginResponse, error)
}

type authService struct {
	log     *logger.Logger
	content contentapi.Client
}

// NewAuthService forwards sign-up and sign-in to the database worker.
// A nil content client fails every call with 503.
func NewAuthService(log *logger.Logger, content contentapi.Client) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{log: serviceLog, content: content}
}

func (as *authService) RegisterUser(ctx context.Context, req contentapi.RegisterRequest) (*contentapi.RegisterResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apierr.BadRequest("missing_fields", errors.New("username, email and password are required"))
	}
	if as.content == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "registration_unavailable", errAuthUnavailable)
	}
	resp, err := as.content.Register(ctx, req)
	if err != nil {
		as.log.Warn("register forward failed", "username", req.Username, "error", err)
		return nil, upstreamError(err, "registration_failed", http.StatusServiceUnavailable, errAuthUnavailable)
	}
	return resp, nil
}

func (as *authService) LoginUser(ctx context.Context, req contentapi.LoginRequest) (*contentapi.LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, apierr.BadRequest("missing_fields", errors.New("username and password are required"))
	}
	if as.content == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "login_unavailable", errAuthUnavailable)
	}
	resp, err := as.content.Login(ctx, req)
	if err != nil {
		as.log.Warn("login forward failed", "username", req.Username, "error", err)
		return nil, upstreamError(err, "login_failed", http.StatusServiceUnavailable, errAuthUnavailable)
	}
	return resp, nil
}

// upstreamError keeps the worker's status and message when it answered,
// and falls back to fallbackStatus with fallbackErr when it did not.
func upstreamError(err error, code string, fallbackStatus int, fallbackErr error) error {
	var he *contentapi.HTTPError
	if errors.As(err, &he) {
		msg := he.Message()
		if msg == "" {
			msg = fallbackErr.Error()
		}
		return apierr.New(he.StatusCode, code, errors.New(msg))
	}
	return apierr.New(fallbackStatus, code, fallbackErr)
}

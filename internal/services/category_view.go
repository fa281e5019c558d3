package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/modules/categories"
	"github.com/yungbote/blog-backend/internal/modules/categories/forcelayout"
	"github.com/yungbote/blog-backend/internal/modules/categories/view"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/apierr"
	"github.com/yungbote/blog-backend/internal/platform/envutil"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime"
)

type CategoryViewKind string

const (
	CategoryViewKindView     CategoryViewKind = "view"
	CategoryViewKindSelector CategoryViewKind = "selector"
)

func ParseCategoryViewKind(s string) (CategoryViewKind, error) {
	switch CategoryViewKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", CategoryViewKindView:
		return CategoryViewKindView, nil
	case CategoryViewKindSelector:
		return CategoryViewKindSelector, nil
	default:
		return "", apierr.BadRequest("invalid_kind", fmt.Errorf("unknown category view kind %q", s))
	}
}

type CategoryViewConfig struct {
	TTL             time.Duration
	JanitorInterval time.Duration
	FrameInterval   time.Duration
	MaxSessions     int
}

func CategoryViewConfigFromEnv() CategoryViewConfig {
	return CategoryViewConfig{
		TTL:             envutil.Duration("CATEGORY_VIEW_TTL", 15*time.Minute),
		JanitorInterval: envutil.Duration("CATEGORY_VIEW_JANITOR_INTERVAL", time.Minute),
		FrameInterval:   envutil.Duration("CATEGORY_FRAME_INTERVAL", forcelayout.DefaultFrameInterval),
		MaxSessions:     envutil.Int("CATEGORY_VIEW_MAX", 256),
	}
}

type CreateCategoryViewRequest struct {
	Kind           string   `json:"kind"`
	Mode           string   `json:"mode"`
	Width          float64  `json:"width"`
	ViewportHeight float64  `json:"viewport_height"`
	Expanded       []string `json:"expanded"`
	Selected       []string `json:"selected"`
}

// CategoryViewSnapshot is what clients see after every event.
type CategoryViewSnapshot struct {
	ID      uuid.UUID        `json:"id"`
	Kind    CategoryViewKind `json:"kind"`
	Channel string           `json:"channel"`
	State   view.State       `json:"state"`
	Rows    []categories.Row `json:"rows"`
}

type CategoryViewService interface {
	Create(ctx context.Context, req CreateCategoryViewRequest) (*CategoryViewSnapshot, error)
	Get(ctx context.Context, id uuid.UUID) (*CategoryViewSnapshot, error)
	// Do runs fn against the session's controller and publishes the new state.
	Do(ctx context.Context, id uuid.UUID, fn func(*view.Controller) error) (*CategoryViewSnapshot, error)
	Frame(ctx context.Context, id uuid.UUID) (view.Frame, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Len() int
	// RunJanitor reaps idle sessions until ctx is done, then closes every session.
	RunJanitor(ctx context.Context) error
}

type categoryViewSession struct {
	id         uuid.UUID
	kind       CategoryViewKind
	controller *view.Controller

	mu       sync.Mutex
	lastUsed time.Time
}

func (s *categoryViewSession) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

func (s *categoryViewSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

type categoryViewService struct {
	log      *logger.Logger
	tree     taxonomy.Provider
	notifier CategoryViewNotifier
	metrics  *observability.Metrics
	cfg      CategoryViewConfig
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*categoryViewSession
}

func NewCategoryViewService(
	log *logger.Logger,
	tree taxonomy.Provider,
	notifier CategoryViewNotifier,
	metrics *observability.Metrics,
	cfg CategoryViewConfig,
) CategoryViewService {
	serviceLog := log.With("service", "CategoryViewService")
	if cfg.TTL <= 0 {
		cfg.TTL = 15 * time.Minute
	}
	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = time.Minute
	}
	return &categoryViewService{
		log:      serviceLog,
		tree:     tree,
		notifier: notifier,
		metrics:  metrics,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*categoryViewSession),
	}
}

func (s *categoryViewService) Create(ctx context.Context, req CreateCategoryViewRequest) (*CategoryViewSnapshot, error) {
	kind, err := ParseCategoryViewKind(req.Kind)
	if err != nil {
		return nil, err
	}
	mode, err := view.ParseMode(req.Mode)
	if err != nil {
		return nil, apierr.BadRequest("invalid_mode", err)
	}

	opts := view.ViewOptions()
	if kind == CategoryViewKindSelector {
		opts = view.SelectorOptions()
	}
	id := uuid.New()
	opts.Width = req.Width
	opts.ViewportHeight = req.ViewportHeight
	opts.InitialMode = mode
	opts.InitialExpanded = req.Expanded
	opts.InitialSelection = req.Selected
	opts.FrameInterval = s.cfg.FrameInterval
	opts.Log = s.log.With("category_view_id", id.String())
	opts.OnSelectionChange = func(ids []string) { s.notifier.SelectionChanged(context.Background(), id, ids) }
	opts.OnFrame = func(f view.Frame) { s.notifier.Frame(context.Background(), id, f) }

	c, err := view.New(s.tree.Tree(), opts)
	if err != nil {
		return nil, mapViewError(err)
	}
	sess := &categoryViewSession{id: id, kind: kind, controller: c, lastUsed: s.now()}

	s.mu.Lock()
	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		s.mu.Unlock()
		c.Close()
		return nil, apierr.New(http.StatusServiceUnavailable, "too_many_views", errors.New("too many open category views"))
	}
	s.sessions[id] = sess
	n := len(s.sessions)
	s.mu.Unlock()
	s.metrics.SetViewSessions(n)

	s.log.Info("category view opened", "category_view_id", id, "kind", kind, "mode", mode)
	return snapshotOf(sess), nil
}

func (s *categoryViewService) session(id uuid.UUID) (*categoryViewSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apierr.NotFound("category_view_not_found", fmt.Errorf("category view %s not found", id))
	}
	sess.touch(s.now())
	return sess, nil
}

func (s *categoryViewService) Get(ctx context.Context, id uuid.UUID) (*CategoryViewSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return snapshotOf(sess), nil
}

func (s *categoryViewService) Do(ctx context.Context, id uuid.UUID, fn func(*view.Controller) error) (*CategoryViewSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess.controller); err != nil {
		return nil, mapViewError(err)
	}
	snap := snapshotOf(sess)
	s.notifier.StateChanged(ctx, id, snap.State)
	return snap, nil
}

func (s *categoryViewService) Frame(ctx context.Context, id uuid.UUID) (view.Frame, error) {
	sess, err := s.session(id)
	if err != nil {
		return view.Frame{}, err
	}
	f, ok := sess.controller.Frame()
	if !ok {
		return view.Frame{}, mapViewError(view.ErrNoLayout)
	}
	return f, nil
}

func (s *categoryViewService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()
	if !ok {
		return apierr.NotFound("category_view_not_found", fmt.Errorf("category view %s not found", id))
	}
	s.metrics.SetViewSessions(n)
	s.closeSession(ctx, sess, "deleted")
	return nil
}

func (s *categoryViewService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *categoryViewService) closeSession(ctx context.Context, sess *categoryViewSession, reason string) {
	sess.controller.Close()
	s.notifier.Closed(ctx, sess.id, reason)
	s.log.Info("category view closed", "category_view_id", sess.id, "reason", reason)
}

func (s *categoryViewService) RunJanitor(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.JanitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return nil
		case <-ticker.C:
			s.reap(ctx)
		}
	}
}

// reap closes sessions idle for longer than the TTL.
func (s *categoryViewService) reap(ctx context.Context) int {
	cutoff := s.now().Add(-s.cfg.TTL)
	var expired []*categoryViewSession
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()
	if len(expired) == 0 {
		return 0
	}
	s.metrics.SetViewSessions(n)
	for _, sess := range expired {
		s.closeSession(ctx, sess, "expired")
	}
	return len(expired)
}

func (s *categoryViewService) closeAll() {
	s.mu.Lock()
	all := make([]*categoryViewSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.sessions = make(map[uuid.UUID]*categoryViewSession)
	s.mu.Unlock()
	s.metrics.SetViewSessions(0)
	for _, sess := range all {
		s.closeSession(context.Background(), sess, "shutdown")
	}
}

func snapshotOf(sess *categoryViewSession) *CategoryViewSnapshot {
	return &CategoryViewSnapshot{
		ID:      sess.id,
		Kind:    sess.kind,
		Channel: realtime.CategoryViewChannel(sess.id),
		State:   sess.controller.State(),
		Rows:    sess.controller.Rows(),
	}
}

// mapViewError gives controller errors HTTP semantics.
func mapViewError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, view.ErrUnknownCategory), errors.Is(err, forcelayout.ErrUnknownNode):
		return apierr.NotFound("unknown_category", err)
	case errors.Is(err, view.ErrInvalidSize):
		return apierr.BadRequest("invalid_size", err)
	case errors.Is(err, view.ErrNotSelectable):
		return apierr.New(http.StatusConflict, "not_selectable", err)
	case errors.Is(err, view.ErrFullscreenDisabled):
		return apierr.New(http.StatusConflict, "fullscreen_disabled", err)
	case errors.Is(err, forcelayout.ErrNotDragging):
		return apierr.New(http.StatusConflict, "not_dragging", err)
	case errors.Is(err, view.ErrNoLayout):
		return apierr.New(http.StatusConflict, "no_layout", err)
	case errors.Is(err, view.ErrClosed):
		return apierr.New(http.StatusGone, "category_view_closed", err)
	default:
		var ae *apierr.Error
		if errors.As(err, &ae) {
			return err
		}
		return apierr.BadRequest("invalid_request", err)
	}
}

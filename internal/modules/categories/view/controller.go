package view

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/modules/categories"
	"github.com/yungbote/blog-backend/internal/modules/categories/forcelayout"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

var (
	ErrClosed             = errors.New("view: controller closed")
	ErrUnknownCategory    = errors.New("view: unknown category")
	ErrNotSelectable      = errors.New("view: selection is disabled")
	ErrFullscreenDisabled = errors.New("view: fullscreen is disabled")
	ErrNoLayout           = errors.New("view: no graph layout is active")
	ErrInvalidSize        = errors.New("view: invalid size")
)

// The drawing group starts offset by the margin until the first zoom gesture.
var marginTransform = forcelayout.ZoomTransform{K: 1, X: Margin, Y: Margin}

// State is the externally visible UI state of a controller.
type State struct {
	Mode           Mode                      `json:"mode"`
	Fullscreen     bool                      `json:"fullscreen"`
	Selectable     bool                      `json:"selectable"`
	Expanded       []string                  `json:"expanded"`
	Selected       []string                  `json:"selected"`
	Width          float64                   `json:"width"`
	Height         float64                   `json:"height"`
	ViewportHeight float64                   `json:"viewport_height"`
	Transform      forcelayout.ZoomTransform `json:"transform"`
	LayoutActive   bool                      `json:"layout_active"`
	LayoutRunning  bool                      `json:"layout_running"`
}

// Controller owns one category view: tree expansion, selection, mode,
// fullscreen, viewport, zoom and the graph layout. Events and layout frames
// are serialized on one mutex.
//
// Callbacks run outside the lock. They must not call Close.
type Controller struct {
	mu   sync.Mutex
	opts Options
	log  *logger.Logger

	root     *taxonomy.Category
	expanded *categories.ExpansionSet
	selected *categories.Selection

	mode       Mode
	fullscreen bool
	width      float64
	viewportH  float64
	transform  forcelayout.ZoomTransform

	graph    categories.Graph
	sim      *forcelayout.Simulation
	runner   *forcelayout.Runner
	stopping []<-chan struct{}

	closed bool
}

func New(root *taxonomy.Category, opts Options) (*Controller, error) {
	if root == nil {
		return nil, fmt.Errorf("view: nil category tree")
	}
	opts = opts.withDefaults()
	if !ValidSide(opts.Width) || !ValidSide(opts.ViewportHeight) || opts.Height > MaxSide || math.IsInf(opts.Height, 0) {
		return nil, ErrInvalidSize
	}
	c := &Controller{
		opts:      opts,
		log:       opts.Log.With("component", "CategoryView"),
		root:      root,
		expanded:  categories.NewExpansionSet(opts.InitialExpanded...),
		selected:  categories.NewSelection(),
		mode:      ModeTree,
		width:     opts.Width,
		viewportH: opts.ViewportHeight,
		transform: marginTransform,
	}
	if len(opts.InitialSelection) > 0 && !opts.Selectable {
		return nil, ErrNotSelectable
	}
	for _, id := range opts.InitialSelection {
		if err := c.mustExist(id); err != nil {
			return nil, err
		}
		if !c.selected.Has(id) {
			c.selected.Toggle(id)
		}
	}
	switch opts.InitialMode {
	case ModeTree:
	case ModeGraph:
		c.mu.Lock()
		c.mode = ModeGraph
		err := c.initGraphLocked()
		c.mu.Unlock()
		if err != nil {
			c.Close()
			return nil, err
		}
	default:
		return nil, fmt.Errorf("view: invalid initial mode %d", int(opts.InitialMode))
	}
	return c, nil
}

func (c *Controller) mustExist(id string) error {
	if taxonomy.Find(c.root, id) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}
	return nil
}

// canvasSizeLocked is the drawing surface size for the current fullscreen state.
func (c *Controller) canvasSizeLocked() (float64, float64) {
	h := c.opts.Height
	if c.fullscreen {
		h = c.viewportH - c.opts.FullscreenInset
	}
	return c.width, h
}

// initGraphLocked builds the graph and a fresh simulation when graph mode is
// active and the surface has a size. Without a surface it does nothing and
// the next state change tries again.
func (c *Controller) initGraphLocked() error {
	if c.mode != ModeGraph || c.closed || c.sim != nil {
		return nil
	}
	w, h := c.canvasSizeLocked()
	if w <= 0 || h <= 0 {
		c.log.Debug("graph surface not ready", "width", w, "height", h)
		return nil
	}
	g := categories.ToGraph(c.root)
	links := make([]forcelayout.Link, len(g.Links))
	for i, l := range g.Links {
		links[i] = forcelayout.Link{Source: l.Source, Target: l.Target}
	}
	p := c.opts.Params
	p.Width, p.Height = w, h
	sim, err := forcelayout.New(g.NodeIDs(), links, p)
	if err != nil {
		return fmt.Errorf("view: build layout: %w", err)
	}
	c.graph, c.sim = g, sim
	c.transform = marginTransform
	if c.opts.FrameInterval >= 0 {
		c.runner = forcelayout.NewRunner(c.opts.FrameInterval, c.step)
		c.runner.Start()
	}
	c.log.Debug("graph layout started", "nodes", len(g.Nodes), "links", len(g.Links), "width", w, "height", h)
	return nil
}

// dropLayoutLocked stops the frame loop and releases the surface.
func (c *Controller) dropLayoutLocked() {
	if c.runner != nil {
		c.track(c.runner.Stop())
		c.runner = nil
	}
	c.sim = nil
	c.graph = categories.Graph{}
}

func (c *Controller) rebuildLocked() error {
	if c.mode != ModeGraph {
		return nil
	}
	c.dropLayoutLocked()
	return c.initGraphLocked()
}

// restartRunnerLocked replaces the frame loop after the simulation was reheated.
// The previous loop may already be on its way out after settling.
func (c *Controller) restartRunnerLocked() {
	if c.runner == nil {
		return
	}
	c.track(c.runner.Stop())
	c.runner.Start()
}

func (c *Controller) track(done <-chan struct{}) {
	kept := c.stopping[:0]
	for _, ch := range append(c.stopping, done) {
		select {
		case <-ch:
		default:
			kept = append(kept, ch)
		}
	}
	c.stopping = kept
}

func (c *Controller) step(ctx context.Context) bool {
	c.mu.Lock()
	if ctx.Err() != nil || c.sim == nil || c.closed {
		c.mu.Unlock()
		return false
	}
	more := c.sim.Step()
	f := buildFrame(c.graph, c.sim, c.selected, c.sim.Params().Width, c.sim.Params().Height, c.transform)
	c.mu.Unlock()

	observability.Current().IncLayoutTick(!more)
	c.emitFrame(f)
	return more
}

func (c *Controller) emitFrame(f Frame) {
	if c.opts.OnFrame != nil {
		c.opts.OnFrame(f)
	}
}

func (c *Controller) emitSelection(ids []string) {
	if c.opts.OnSelectionChange != nil {
		c.opts.OnSelectionChange(ids)
	}
}

func (c *Controller) frameLocked() (Frame, bool) {
	if c.sim == nil {
		return Frame{}, false
	}
	p := c.sim.Params()
	return buildFrame(c.graph, c.sim, c.selected, p.Width, p.Height, c.transform), true
}

// ToggleExpand flips the expansion of id and reports whether it is now expanded.
func (c *Controller) ToggleExpand(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false, ErrClosed
	}
	if err := c.mustExist(id); err != nil {
		return false, err
	}
	expanded := c.expanded.Toggle(id)
	return expanded, c.initGraphLocked()
}

// toggleSelectionLocked flips the selection of id. In graph mode the graph is
// rebuilt so node styles follow the new selection.
func (c *Controller) toggleSelectionLocked(id string) ([]string, error) {
	if !c.opts.Selectable {
		return nil, ErrNotSelectable
	}
	if err := c.mustExist(id); err != nil {
		return nil, err
	}
	c.selected.Toggle(id)
	ids := c.selected.IDs()
	if err := c.rebuildLocked(); err != nil {
		return ids, err
	}
	return ids, nil
}

// Select toggles id in the selection.
func (c *Controller) Select(id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	ids, err := c.toggleSelectionLocked(id)
	c.mu.Unlock()
	if ids != nil {
		c.emitSelection(ids)
	}
	return err
}

// ClickRow is a click on a tree row: rows with children toggle their
// expansion, then the row's selection toggles when selection is enabled.
func (c *Controller) ClickRow(id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	node := taxonomy.Find(c.root, id)
	if node == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}
	if node.HasChildren() {
		c.expanded.Toggle(id)
	}
	if !c.opts.Selectable {
		err := c.initGraphLocked()
		c.mu.Unlock()
		return err
	}
	ids, err := c.toggleSelectionLocked(id)
	c.mu.Unlock()
	if ids != nil {
		c.emitSelection(ids)
	}
	return err
}

// ClickNode is a click on a graph node: the node is pinned where it is and,
// when selection is enabled, its selection toggles.
func (c *Controller) ClickNode(id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.sim == nil {
		c.mu.Unlock()
		return ErrNoLayout
	}
	if err := c.sim.PinInPlace(id); err != nil {
		c.mu.Unlock()
		return err
	}
	if !c.opts.Selectable {
		c.mu.Unlock()
		return nil
	}
	ids, err := c.toggleSelectionLocked(id)
	c.mu.Unlock()
	if ids != nil {
		c.emitSelection(ids)
	}
	return err
}

// SetViewMode switches presentation. Leaving graph mode stops the layout and
// releases the surface before the tree is drawn.
func (c *Controller) SetViewMode(m Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if m == c.mode {
		return c.initGraphLocked()
	}
	switch m {
	case ModeTree:
		c.dropLayoutLocked()
		c.mode = ModeTree
		return nil
	case ModeGraph:
		c.mode = ModeGraph
		return c.initGraphLocked()
	default:
		return fmt.Errorf("view: invalid mode %d", int(m))
	}
}

// ToggleFullscreen flips fullscreen and reports the new state. In graph mode
// the layout restarts against the new canvas size.
func (c *Controller) ToggleFullscreen() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false, ErrClosed
	}
	if !c.opts.AllowFullscreen {
		return false, ErrFullscreenDisabled
	}
	c.fullscreen = !c.fullscreen
	return c.fullscreen, c.rebuildLocked()
}

// CloseFullscreen leaves fullscreen. It is a no-op outside fullscreen.
func (c *Controller) CloseFullscreen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if !c.fullscreen {
		return nil
	}
	c.fullscreen = false
	return c.rebuildLocked()
}

// Resize reports the container width and the window height. A running layout
// keeps its positions and is reheated toward the new center.
func (c *Controller) Resize(width, viewportHeight float64) error {
	if !ValidSide(width) || !ValidSide(viewportHeight) {
		return ErrInvalidSize
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.width, c.viewportH = width, viewportHeight
	if c.sim == nil {
		return c.initGraphLocked()
	}
	w, h := c.canvasSizeLocked()
	if w <= 0 || h <= 0 {
		return nil
	}
	c.sim.SetCenter(w, h)
	c.restartRunnerLocked()
	return nil
}

// Zoom sets the pan/zoom transform. The scale is clamped to the scale extent.
func (c *Controller) Zoom(k, x, y float64) (forcelayout.ZoomTransform, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return forcelayout.ZoomTransform{}, ErrClosed
	}
	if c.sim == nil {
		c.mu.Unlock()
		return forcelayout.ZoomTransform{}, ErrNoLayout
	}
	c.transform = forcelayout.ZoomTransform{K: k, X: x, Y: y}.Clamp(c.opts.ScaleExtent)
	zt := c.transform
	f, _ := c.frameLocked()
	c.mu.Unlock()
	c.emitFrame(f)
	return zt, nil
}

func (c *Controller) withSim(fn func(*forcelayout.Simulation) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.sim == nil {
		return ErrNoLayout
	}
	return fn(c.sim)
}

// DragStart pins id in place. The first active drag reheats the layout.
func (c *Controller) DragStart(id string) error {
	return c.withSim(func(sim *forcelayout.Simulation) error {
		first := sim.ActiveDrags() == 0
		if err := sim.DragStart(id); err != nil {
			return err
		}
		if first {
			c.restartRunnerLocked()
		}
		return nil
	})
}

// DragMove pins id at (x, y) in layout coordinates.
func (c *Controller) DragMove(id string, x, y float64) error {
	return c.withSim(func(sim *forcelayout.Simulation) error {
		return sim.DragMove(id, x, y)
	})
}

// DragEnd releases id. When the last drag ends the layout cools down.
func (c *Controller) DragEnd(id string) error {
	return c.withSim(func(sim *forcelayout.Simulation) error {
		return sim.DragEnd(id)
	})
}

// Tick advances the layout one frame by hand and returns the frame. A settled
// layout is returned unchanged.
func (c *Controller) Tick() (Frame, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Frame{}, ErrClosed
	}
	if c.sim == nil {
		c.mu.Unlock()
		return Frame{}, ErrNoLayout
	}
	stepped := c.sim.Running()
	more := c.sim.Step()
	f, _ := c.frameLocked()
	c.mu.Unlock()
	if stepped {
		observability.Current().IncLayoutTick(!more)
		c.emitFrame(f)
	}
	return f, nil
}

// Rows is the tree presentation for the current expansion and selection.
func (c *Controller) Rows() []categories.Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := categories.RenderState{Expanded: c.expanded}
	if c.opts.Selectable {
		st.Selected = c.selected
	}
	return categories.RenderTree(c.root, st)
}

// Frame draws the current layout. It reports false when no layout is active.
func (c *Controller) Frame() (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameLocked()
}

func (c *Controller) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected.IDs()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, h := c.canvasSizeLocked()
	st := State{
		Mode:           c.mode,
		Fullscreen:     c.fullscreen,
		Selectable:     c.opts.Selectable,
		Expanded:       c.expanded.IDs(),
		Selected:       c.selected.IDs(),
		Width:          w,
		Height:         h,
		ViewportHeight: c.viewportH,
		Transform:      c.transform,
		LayoutActive:   c.sim != nil,
	}
	if c.sim != nil {
		st.LayoutRunning = c.sim.Running()
	}
	return st
}

// Close stops the layout and waits for every frame loop to exit.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.dropLayoutLocked()
	waits := c.stopping
	c.stopping = nil
	c.mu.Unlock()
	for _, ch := range waits {
		<-ch
	}
}

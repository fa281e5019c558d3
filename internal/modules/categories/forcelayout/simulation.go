package forcelayout

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownNode   = errors.New("forcelayout: unknown node")
	ErrDuplicateNode = errors.New("forcelayout: duplicate node id")
	ErrNotDragging   = errors.New("forcelayout: node is not being dragged")
)

// UnknownNodeError names the id a link or event referred to.
type UnknownNodeError struct {
	ID string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("forcelayout: unknown node %q", e.ID)
}

func (e *UnknownNodeError) Is(target error) bool { return target == ErrUnknownNode }

// Node is the simulation's mutable record for one graph node.
// A non-nil FX/FY pins the node on that axis.
type Node struct {
	ID    string
	Index int
	X, Y  float64
	VX    float64
	VY    float64
	FX    *float64
	FY    *float64
}

func (n *Node) Pinned() bool { return n.FX != nil || n.FY != nil }

type Link struct {
	Source string
	Target string
}

// NodeState is a read-only copy of a Node.
type NodeState struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Pinned bool    `json:"pinned"`
}

// Simulation is a d3-force style layout: link springs, many-body charge,
// centering and collision, integrated with velocity decay while alpha cools.
// It is not safe for concurrent use; callers serialize Tick with events.
type Simulation struct {
	params Params
	nodes  []*Node
	byID   map[string]int
	links  []resolvedLink
	rand   *lcg

	alpha       float64
	alphaTarget float64
	running     bool
	ticks       int
	dragging    map[int]bool

	cx, cy float64
}

// New builds a simulation over ids. Every link endpoint must be one of ids.
func New(ids []string, links []Link, p Params) (*Simulation, error) {
	p = p.withDefaults()
	s := &Simulation{
		params:  p,
		nodes:   make([]*Node, len(ids)),
		byID:    make(map[string]int, len(ids)),
		rand:    newLCG(),
		alpha:   1,
		running: len(ids) > 0,
		cx:      p.Width / 2,
		cy:      p.Height / 2,
	}
	for i, id := range ids {
		if _, dup := s.byID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, id)
		}
		s.byID[id] = i
		radius := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		s.nodes[i] = &Node{
			ID:    id,
			Index: i,
			X:     radius * math.Cos(angle),
			Y:     radius * math.Sin(angle),
		}
	}
	resolved, err := resolveLinks(s.byID, len(ids), links)
	if err != nil {
		return nil, err
	}
	s.links = resolved
	return s, nil
}

func (s *Simulation) Params() Params { return s.params }

func (s *Simulation) Len() int { return len(s.nodes) }

func (s *Simulation) Alpha() float64 { return s.alpha }

func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

func (s *Simulation) SetAlpha(a float64) { s.alpha = a }

func (s *Simulation) SetAlphaTarget(a float64) { s.alphaTarget = a }

// Running reports whether the simulation is in the Simulating state.
func (s *Simulation) Running() bool { return s.running }

// Ticks is the number of ticks computed so far.
func (s *Simulation) Ticks() int { return s.ticks }

func (s *Simulation) Restart() {
	if len(s.nodes) > 0 {
		s.running = true
	}
}

func (s *Simulation) Stop() { s.running = false }

// Tick advances the layout one step, whether or not the simulation is running.
// Every node is updated before Tick returns.
func (s *Simulation) Tick() {
	s.alpha += (s.alphaTarget - s.alpha) * s.params.AlphaDecay
	alpha := s.alpha

	s.applyLink(alpha)
	s.applyManyBody(alpha)
	s.applyCenter()
	s.applyCollide()

	keep := 1 - s.params.VelocityDecay
	for _, n := range s.nodes {
		if n.FX == nil {
			n.VX *= keep
			n.X += n.VX
		} else {
			n.X = *n.FX
			n.VX = 0
		}
		if n.FY == nil {
			n.VY *= keep
			n.Y += n.VY
		} else {
			n.Y = *n.FY
			n.VY = 0
		}
	}
	s.ticks++
}

// Step is one scheduled frame: it ticks while running and stops once alpha
// falls below AlphaMin. It reports whether more frames should be scheduled.
func (s *Simulation) Step() bool {
	if !s.running {
		return false
	}
	s.Tick()
	if s.alpha < s.params.AlphaMin {
		s.running = false
	}
	return s.running
}

// Settle steps until the simulation stops or maxTicks is reached and returns the ticks taken.
func (s *Simulation) Settle(maxTicks int) int {
	n := 0
	for s.running && (maxTicks <= 0 || n < maxTicks) {
		s.Step()
		n++
	}
	return n
}

func (s *Simulation) node(id string) (*Node, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, &UnknownNodeError{ID: id}
	}
	return s.nodes[i], nil
}

// Node returns a copy of the named node.
func (s *Simulation) Node(id string) (NodeState, bool) {
	n, err := s.node(id)
	if err != nil {
		return NodeState{}, false
	}
	return n.state(), true
}

// Nodes returns copies of all nodes in index order.
func (s *Simulation) Nodes() []NodeState {
	out := make([]NodeState, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = n.state()
	}
	return out
}

// LinkEndpoints returns (x1, y1, x2, y2) for each link in input order.
func (s *Simulation) LinkEndpoints() [][4]float64 {
	out := make([][4]float64, len(s.links))
	for i, l := range s.links {
		a, b := s.nodes[l.source], s.nodes[l.target]
		out[i] = [4]float64{a.X, a.Y, b.X, b.Y}
	}
	return out
}

func (n *Node) state() NodeState {
	return NodeState{ID: n.ID, X: n.X, Y: n.Y, VX: n.VX, VY: n.VY, Pinned: n.Pinned()}
}

// Pin fixes the node at (x, y) until Unpin.
func (s *Simulation) Pin(id string, x, y float64) error {
	n, err := s.node(id)
	if err != nil {
		return err
	}
	n.FX, n.FY = &x, &y
	return nil
}

// PinInPlace fixes the node at its current position.
func (s *Simulation) PinInPlace(id string) error {
	n, err := s.node(id)
	if err != nil {
		return err
	}
	return s.Pin(id, n.X, n.Y)
}

func (s *Simulation) Unpin(id string) error {
	n, err := s.node(id)
	if err != nil {
		return err
	}
	n.FX, n.FY = nil, nil
	return nil
}

// DragStart pins the node where it is. The first concurrent drag reheats the
// simulation. Starting a drag on a node already being dragged is a no-op.
func (s *Simulation) DragStart(id string) error {
	n, err := s.node(id)
	if err != nil {
		return err
	}
	if s.dragging[n.Index] {
		return nil
	}
	if err := s.PinInPlace(id); err != nil {
		return err
	}
	if len(s.dragging) == 0 {
		s.alphaTarget = s.params.DragAlphaTarget
		s.Restart()
	}
	if s.dragging == nil {
		s.dragging = make(map[int]bool)
	}
	s.dragging[n.Index] = true
	return nil
}

func (s *Simulation) DragMove(id string, x, y float64) error {
	return s.Pin(id, x, y)
}

// DragEnd releases a node that is being dragged. When the last drag ends the
// simulation cools again.
func (s *Simulation) DragEnd(id string) error {
	n, err := s.node(id)
	if err != nil {
		return err
	}
	if !s.dragging[n.Index] {
		return fmt.Errorf("%w: %q", ErrNotDragging, id)
	}
	delete(s.dragging, n.Index)
	n.FX, n.FY = nil, nil
	if len(s.dragging) == 0 {
		s.alphaTarget = 0
	}
	return nil
}

// ActiveDrags is the number of drags in progress.
func (s *Simulation) ActiveDrags() int { return len(s.dragging) }

// Dragging reports whether id is being dragged.
func (s *Simulation) Dragging(id string) bool {
	i, ok := s.byID[id]
	return ok && s.dragging[i]
}

// SetCenter moves the centering target to the middle of a width x height canvas.
// Positions are kept; the simulation is reheated so nodes drift to the new center.
func (s *Simulation) SetCenter(width, height float64) {
	s.params.Width, s.params.Height = width, height
	s.cx, s.cy = width/2, height/2
	if s.alpha < s.params.ReheatAlpha {
		s.alpha = s.params.ReheatAlpha
	}
	s.Restart()
}

// Center returns the current centering target.
func (s *Simulation) Center() (float64, float64) { return s.cx, s.cy }

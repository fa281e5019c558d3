package forcelayout

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	testIDs   = []string{"root", "a", "a1", "a2", "b", "b1", "c"}
	testLinks = []Link{
		{Source: "root", Target: "a"},
		{Source: "a", Target: "a1"},
		{Source: "a", Target: "a2"},
		{Source: "root", Target: "b"},
		{Source: "b", Target: "b1"},
		{Source: "root", Target: "c"},
	}
)

func mustSim(t *testing.T) *Simulation {
	t.Helper()
	s, err := New(testIDs, testLinks, DefaultParams(800, 500))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestInitialPhyllotaxis(t *testing.T) {
	s := mustSim(t)
	nodes := s.Nodes()
	if nodes[0].X != initialRadius*math.Sqrt(0.5) || nodes[0].Y != 0 {
		t.Fatalf("node 0 at (%v,%v)", nodes[0].X, nodes[0].Y)
	}
	r := initialRadius * math.Sqrt(1.5)
	if math.Abs(nodes[1].X-r*math.Cos(initialAngle)) > 1e-12 || math.Abs(nodes[1].Y-r*math.Sin(initialAngle)) > 1e-12 {
		t.Fatalf("node 1 at (%v,%v)", nodes[1].X, nodes[1].Y)
	}
	if !s.Running() || s.Alpha() != 1 {
		t.Fatalf("fresh simulation should be running at alpha 1")
	}
}

func TestLayoutIsDeterministic(t *testing.T) {
	a, b := mustSim(t), mustSim(t)
	for i := 0; i < 120; i++ {
		a.Tick()
		b.Tick()
	}
	if diff := cmp.Diff(a.Nodes(), b.Nodes()); diff != "" {
		t.Fatalf("layouts diverged (-a +b):\n%s", diff)
	}
}

func TestSimulationSettles(t *testing.T) {
	s := mustSim(t)
	ticks := s.Settle(1000)
	if s.Running() {
		t.Fatalf("simulation still running after %d ticks", ticks)
	}
	if ticks < 250 || ticks > 310 {
		t.Fatalf("settled after %d ticks, want about 300", ticks)
	}
	if s.Alpha() >= s.Params().AlphaMin {
		t.Fatalf("alpha=%v not below alphaMin", s.Alpha())
	}

	before := s.Nodes()
	for i := 0; i < 2; i++ {
		if s.Step() {
			t.Fatalf("Step after settle should report done")
		}
	}
	if diff := cmp.Diff(before, s.Nodes()); diff != "" {
		t.Fatalf("positions moved after settle (-before +after):\n%s", diff)
	}

	for _, n := range s.Nodes() {
		if math.IsNaN(n.X) || math.IsNaN(n.Y) {
			t.Fatalf("node %s has NaN position", n.ID)
		}
	}
}

func TestSettledLayoutIsCenteredAndSeparated(t *testing.T) {
	s := mustSim(t)
	s.Settle(0)
	var mx, my float64
	nodes := s.Nodes()
	for _, n := range nodes {
		mx += n.X
		my += n.Y
	}
	mx /= float64(len(nodes))
	my /= float64(len(nodes))
	if math.Abs(mx-400) > 20 || math.Abs(my-250) > 20 {
		t.Fatalf("centroid=(%.1f,%.1f) want near (400,250)", mx, my)
	}
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			d := math.Hypot(nodes[i].X-nodes[j].X, nodes[i].Y-nodes[j].Y)
			if d < 50 {
				t.Fatalf("%s and %s overlap: distance %.1f", nodes[i].ID, nodes[j].ID, d)
			}
		}
	}
}

func TestPinnedNodeHoldsPosition(t *testing.T) {
	s := mustSim(t)
	if err := s.Pin("a1", 123.5, -42); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	for i := 0; i < 5; i++ {
		s.Tick()
		n, _ := s.Node("a1")
		if n.X != 123.5 || n.Y != -42 || n.VX != 0 || n.VY != 0 || !n.Pinned {
			t.Fatalf("tick %d: pinned node=%+v", i, n)
		}
	}
	if err := s.Unpin("a1"); err != nil {
		t.Fatalf("Unpin: %v", err)
	}
	s.Tick()
	if n, _ := s.Node("a1"); n.Pinned {
		t.Fatalf("node still pinned after Unpin")
	}
}

func TestDragLifecycle(t *testing.T) {
	s := mustSim(t)
	s.Settle(0)
	if s.Running() {
		t.Fatalf("expected settled simulation")
	}

	if err := s.DragStart("b1"); err != nil {
		t.Fatalf("DragStart: %v", err)
	}
	if !s.Running() || s.AlphaTarget() != 0.3 {
		t.Fatalf("drag should reheat: running=%v target=%v", s.Running(), s.AlphaTarget())
	}
	if err := s.DragStart("c"); err != nil {
		t.Fatalf("second DragStart: %v", err)
	}
	if err := s.DragMove("b1", 10, 20); err != nil {
		t.Fatalf("DragMove: %v", err)
	}
	for i := 0; i < 50; i++ {
		if !s.Step() {
			t.Fatalf("simulation stopped while dragging at tick %d", i)
		}
	}
	if n, _ := s.Node("b1"); n.X != 10 || n.Y != 20 {
		t.Fatalf("dragged node at (%v,%v)", n.X, n.Y)
	}

	if err := s.DragEnd("c"); err != nil {
		t.Fatalf("DragEnd: %v", err)
	}
	if s.AlphaTarget() != 0.3 {
		t.Fatalf("alpha target dropped while a drag is still active")
	}
	if err := s.DragEnd("b1"); err != nil {
		t.Fatalf("DragEnd: %v", err)
	}
	if s.AlphaTarget() != 0 || s.ActiveDrags() != 0 {
		t.Fatalf("target=%v drags=%d after last drag", s.AlphaTarget(), s.ActiveDrags())
	}
	if n, _ := s.Node("b1"); n.Pinned {
		t.Fatalf("drag end should clear the pin")
	}
	s.Settle(0)
	if s.Running() {
		t.Fatalf("simulation should settle again after drag")
	}
}

func TestDragsAreTrackedPerNode(t *testing.T) {
	s := mustSim(t)
	s.Settle(0)
	if err := s.Pin("c", 5, 5); err != nil {
		t.Fatalf("Pin: %v", err)
	}

	if err := s.DragStart("b1"); err != nil {
		t.Fatalf("DragStart: %v", err)
	}
	if err := s.DragStart("b1"); err != nil {
		t.Fatalf("repeated DragStart: %v", err)
	}
	if s.ActiveDrags() != 1 || !s.Dragging("b1") {
		t.Fatalf("drags=%d dragging=%v", s.ActiveDrags(), s.Dragging("b1"))
	}

	if err := s.DragEnd("c"); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("err=%v want ErrNotDragging", err)
	}
	if n, _ := s.Node("c"); !n.Pinned {
		t.Fatalf("stray drag end cleared a pin")
	}
	if s.AlphaTarget() != 0.3 || s.ActiveDrags() != 1 {
		t.Fatalf("target=%v drags=%d after stray drag end", s.AlphaTarget(), s.ActiveDrags())
	}
	for i := 0; i < 500; i++ {
		if !s.Step() {
			t.Fatalf("simulation cooled while b1 is dragged at tick %d", i)
		}
	}

	if err := s.DragEnd("b1"); err != nil {
		t.Fatalf("DragEnd: %v", err)
	}
	if err := s.DragEnd("b1"); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("second DragEnd err=%v", err)
	}
	s.Settle(0)
	if s.Running() {
		t.Fatalf("single drag counted twice; simulation never cooled")
	}
}

func TestUnknownAndDuplicateNodes(t *testing.T) {
	_, err := New([]string{"root"}, []Link{{Source: "root", Target: "ghost"}}, Params{})
	if !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("err=%v want ErrUnknownNode", err)
	}
	var une *UnknownNodeError
	if !errors.As(err, &une) || une.ID != "ghost" {
		t.Fatalf("err=%v", err)
	}
	if _, err := New([]string{"a", "a"}, nil, Params{}); !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("err=%v want ErrDuplicateNode", err)
	}
	s := mustSim(t)
	if err := s.DragStart("ghost"); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("DragStart err=%v", err)
	}
	if s.ActiveDrags() != 0 {
		t.Fatalf("failed drag should not count")
	}
}

func TestEmptySimulation(t *testing.T) {
	s, err := New(nil, nil, DefaultParams(100, 100))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Running() || s.Step() {
		t.Fatalf("empty simulation must not run")
	}
	s.Tick()
	if len(s.Nodes()) != 0 || len(s.LinkEndpoints()) != 0 {
		t.Fatalf("empty simulation produced output")
	}
}

func TestSetCenterKeepsPositionsAndReheats(t *testing.T) {
	s := mustSim(t)
	s.Settle(0)
	before := s.Nodes()
	s.SetCenter(1200, 900)
	if diff := cmp.Diff(before, s.Nodes()); diff != "" {
		t.Fatalf("SetCenter moved nodes (-before +after):\n%s", diff)
	}
	if !s.Running() || s.Alpha() < 0.3 {
		t.Fatalf("SetCenter should reheat: running=%v alpha=%v", s.Running(), s.Alpha())
	}
	if cx, cy := s.Center(); cx != 600 || cy != 450 {
		t.Fatalf("center=(%v,%v)", cx, cy)
	}
}

func TestLinkEndpointsFollowNodes(t *testing.T) {
	s := mustSim(t)
	s.Tick()
	ends := s.LinkEndpoints()
	root, _ := s.Node("root")
	a, _ := s.Node("a")
	if ends[0] != [4]float64{root.X, root.Y, a.X, a.Y} {
		t.Fatalf("endpoints=%v", ends[0])
	}
}

func TestResolveLinksStrengthAndBias(t *testing.T) {
	byID := map[string]int{"root": 0, "a": 1, "b": 2, "a1": 3}
	links, err := resolveLinks(byID, 4, []Link{{"root", "a"}, {"root", "b"}, {"a", "a1"}})
	if err != nil {
		t.Fatalf("resolveLinks: %v", err)
	}
	// degrees: root=2, a=2, b=1, a1=1
	if links[0].bias != 0.5 || links[0].strength != 0.5 {
		t.Fatalf("root-a=%+v", links[0])
	}
	if math.Abs(links[1].bias-2.0/3) > 1e-12 || links[1].strength != 1 {
		t.Fatalf("root-b=%+v", links[1])
	}
}

func TestLCGSequence(t *testing.T) {
	r := newLCG()
	want := float64((lcgA*1+lcgC)%lcgM) / lcgM
	if got := r.next(); got != want {
		t.Fatalf("first=%v want=%v", got, want)
	}
	for i := 0; i < 1000; i++ {
		v := r.next()
		if v < 0 || v >= 1 {
			t.Fatalf("out of range: %v", v)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		in, want ZoomTransform
	}{
		{ZoomTransform{K: 3, X: 5}, ZoomTransform{K: 2, X: 5}},
		{ZoomTransform{K: 0.1}, ZoomTransform{K: 0.5}},
		{ZoomTransform{K: 1.25, Y: -3}, ZoomTransform{K: 1.25, Y: -3}},
		{ZoomTransform{}, ZoomTransform{K: 1}},
	}
	for _, tc := range tests {
		if got := tc.in.Clamp(DefaultScaleExtent); got != tc.want {
			t.Fatalf("Clamp(%+v)=%+v want %+v", tc.in, got, tc.want)
		}
	}
	z := ZoomTransform{K: 2, X: 10, Y: 20}
	x, y := z.Apply(5, 5)
	if x != 20 || y != 30 {
		t.Fatalf("Apply=(%v,%v)", x, y)
	}
	if ix, iy := z.Invert(x, y); ix != 5 || iy != 5 {
		t.Fatalf("Invert=(%v,%v)", ix, iy)
	}
}

func TestQuadtreeCoverExtent(t *testing.T) {
	at := func(pts ...[2]float64) []*Node {
		out := make([]*Node, len(pts))
		for i, p := range pts {
			out[i] = &Node{Index: i, X: p[0], Y: p[1]}
		}
		return out
	}
	tests := []struct {
		nodes          []*Node
		x0, y0, size   float64
		wantStrengthOf int
	}{
		{at([2]float64{0.5, 0.5}), 0, 0, 1, 1},
		{at([2]float64{0.5, 0.5}, [2]float64{3.2, 1}), 0, 0, 4, 2},
		{at([2]float64{-2.5, 0.2}, [2]float64{1, 1}), -3, 0, 8, 2},
		{at([2]float64{2, 2}, [2]float64{2, 2}, [2]float64{-1.5, 2}), -2, 2, 8, 3},
	}
	for i, tc := range tests {
		q := buildQuadtree(tc.nodes, -30)
		if q.x0 != tc.x0 || q.y0 != tc.y0 || q.size != tc.size {
			t.Fatalf("case %d root=(%v,%v) size=%v want (%v,%v) size=%v", i, q.x0, q.y0, q.size, tc.x0, tc.y0, tc.size)
		}
		if q.strength != -30*float64(tc.wantStrengthOf) {
			t.Fatalf("case %d strength=%v", i, q.strength)
		}
	}
}

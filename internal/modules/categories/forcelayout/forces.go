package forcelayout

import "math"

type resolvedLink struct {
	source, target int
	strength       float64
	bias           float64
}

// resolveLinks maps ids to indices and derives per-link strength and bias
// from node degrees the way d3.forceLink does.
func resolveLinks(byID map[string]int, n int, links []Link) ([]resolvedLink, error) {
	count := make([]int, n)
	out := make([]resolvedLink, 0, len(links))
	for _, l := range links {
		s, ok := byID[l.Source]
		if !ok {
			return nil, &UnknownNodeError{ID: l.Source}
		}
		t, ok := byID[l.Target]
		if !ok {
			return nil, &UnknownNodeError{ID: l.Target}
		}
		count[s]++
		count[t]++
		out = append(out, resolvedLink{source: s, target: t})
	}
	for i := range out {
		cs, ct := count[out[i].source], count[out[i].target]
		out[i].bias = float64(cs) / float64(cs+ct)
		out[i].strength = 1 / float64(min(cs, ct))
	}
	return out, nil
}

func (s *Simulation) applyLink(alpha float64) {
	for k := 0; k < s.params.LinkIterations; k++ {
		for _, l := range s.links {
			src, tgt := s.nodes[l.source], s.nodes[l.target]
			x := tgt.X + tgt.VX - src.X - src.VX
			if x == 0 {
				x = s.rand.jiggle()
			}
			y := tgt.Y + tgt.VY - src.Y - src.VY
			if y == 0 {
				y = s.rand.jiggle()
			}
			d := math.Sqrt(x*x + y*y)
			d = (d - s.params.LinkDistance) / d * alpha * l.strength
			x *= d
			y *= d
			tgt.VX -= x * l.bias
			tgt.VY -= y * l.bias
			src.VX += x * (1 - l.bias)
			src.VY += y * (1 - l.bias)
		}
	}
}

func (s *Simulation) applyManyBody(alpha float64) {
	tree := buildQuadtree(s.nodes, s.params.Charge)
	if tree == nil {
		return
	}
	theta2 := s.params.Theta * s.params.Theta
	dmin2 := s.params.DistanceMin * s.params.DistanceMin
	for i, n := range s.nodes {
		s.visitCharge(tree, i, n, alpha, theta2, dmin2)
	}
}

// visitCharge applies the charge of cell q to node i. Any cell, leaves
// included, that is far enough away acts as one body at its centroid.
func (s *Simulation) visitCharge(q *quad, i int, n *Node, alpha, theta2, dmin2 float64) {
	if q == nil || q.strength == 0 {
		return
	}
	dx, dy := q.cx-n.X, q.cy-n.Y
	l := dx*dx + dy*dy
	if q.size*q.size/theta2 < l {
		dx, dy, l = s.separate(dx, dy, l, dmin2)
		n.VX += dx * q.strength * alpha / l
		n.VY += dy * q.strength * alpha / l
		return
	}
	if !q.leaf {
		for _, c := range q.children {
			s.visitCharge(c, i, n, alpha, theta2, dmin2)
		}
		return
	}
	if len(q.bodies) == 1 && q.bodies[0] == i {
		return
	}
	dx, dy, l = s.separate(dx, dy, l, dmin2)
	for _, j := range q.bodies {
		if j == i {
			continue
		}
		w := s.params.Charge * alpha / l
		n.VX += dx * w
		n.VY += dy * w
	}
}

// separate jiggles exactly coincident axes and clamps the squared distance below at dmin2.
func (s *Simulation) separate(dx, dy, l, dmin2 float64) (float64, float64, float64) {
	if dx == 0 {
		dx = s.rand.jiggle()
		l += dx * dx
	}
	if dy == 0 {
		dy = s.rand.jiggle()
		l += dy * dy
	}
	if l < dmin2 {
		l = math.Sqrt(dmin2 * l)
	}
	return dx, dy, l
}

func (s *Simulation) applyCenter() {
	n := len(s.nodes)
	if n == 0 {
		return
	}
	var sx, sy float64
	for _, node := range s.nodes {
		sx += node.X
		sy += node.Y
	}
	sx = sx/float64(n) - s.cx
	sy = sy/float64(n) - s.cy
	for _, node := range s.nodes {
		node.X -= sx
		node.Y -= sy
	}
}

// applyCollide resolves overlaps between pairs using predicted positions (x+vx).
// Taxonomies are small, so pairs are checked directly.
func (s *Simulation) applyCollide() {
	r := s.params.CollideRadius
	if r <= 0 {
		return
	}
	ri2 := r * r
	rr := r + r
	share := ri2 / (ri2 + ri2)
	for k := 0; k < s.params.CollideIterations; k++ {
		for i, a := range s.nodes {
			xi, yi := a.X+a.VX, a.Y+a.VY
			for _, b := range s.nodes[i+1:] {
				x := xi - b.X - b.VX
				y := yi - b.Y - b.VY
				l := x*x + y*y
				if l >= rr*rr {
					continue
				}
				if x == 0 {
					x = s.rand.jiggle()
					l += x * x
				}
				if y == 0 {
					y = s.rand.jiggle()
					l += y * y
				}
				d := math.Sqrt(l)
				d = (rr - d) / d * s.params.CollideStrength
				x *= d
				y *= d
				a.VX += x * share
				a.VY += y * share
				b.VX -= x * (1 - share)
				b.VY -= y * (1 - share)
			}
		}
	}
}

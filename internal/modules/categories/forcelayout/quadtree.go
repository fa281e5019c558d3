package forcelayout

import "math"

const maxQuadDepth = 32

// quad is a Barnes-Hut cell. strength is the summed charge of the bodies
// below it and (cx, cy) their charge-weighted centroid. A leaf sits at its
// first body.
type quad struct {
	x0, y0, size float64

	cx, cy   float64
	strength float64

	leaf     bool
	bodies   []int
	children [4]*quad
}

func newQuad(x0, y0, size float64) *quad {
	return &quad{x0: x0, y0: y0, size: size, leaf: true}
}

// buildQuadtree indexes nodes by position and accumulates charge per cell.
// The root cell is grown from the unit square at the floored minimum corner,
// doubling until it covers every node.
func buildQuadtree(nodes []*Node, strength float64) *quad {
	if len(nodes) == 0 {
		return nil
	}
	minX, maxX := nodes[0].X, nodes[0].X
	minY, maxY := nodes[0].Y, nodes[0].Y
	for _, n := range nodes[1:] {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minY = math.Min(minY, n.Y)
		maxY = math.Max(maxY, n.Y)
	}
	x0, y0 := math.Floor(minX), math.Floor(minY)
	x0, y0, size := cover(x0, y0, 1, maxX, maxY)
	root := newQuad(x0, y0, size)
	for i, n := range nodes {
		root.insert(nodes, i, n.X, n.Y, 0)
	}
	root.accumulate(nodes, strength)
	return root
}

// cover doubles the square at (x0, y0) with side size until (x, y) lies
// inside it. The square grows away from the point's side on each axis.
func cover(x0, y0, size, x, y float64) (float64, float64, float64) {
	for x0 > x || x >= x0+size || y0 > y || y >= y0+size {
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(size, 0) {
			break
		}
		if x < x0 {
			x0 -= size
		}
		if y < y0 {
			y0 -= size
		}
		size *= 2
	}
	return x0, y0, size
}

func (q *quad) insert(nodes []*Node, i int, px, py float64, depth int) {
	if q.leaf {
		if len(q.bodies) == 0 || depth >= maxQuadDepth || q.coincident(nodes, px, py) {
			q.bodies = append(q.bodies, i)
			return
		}
		q.leaf = false
		old := q.bodies
		q.bodies = nil
		for _, j := range old {
			q.child(nodes[j].X, nodes[j].Y).insert(nodes, j, nodes[j].X, nodes[j].Y, depth+1)
		}
	}
	q.child(px, py).insert(nodes, i, px, py, depth+1)
}

func (q *quad) coincident(nodes []*Node, px, py float64) bool {
	first := nodes[q.bodies[0]]
	return first.X == px && first.Y == py
}

func (q *quad) child(px, py float64) *quad {
	half := q.size / 2
	idx := 0
	x0, y0 := q.x0, q.y0
	if px >= q.x0+half {
		idx |= 1
		x0 += half
	}
	if py >= q.y0+half {
		idx |= 2
		y0 += half
	}
	if q.children[idx] == nil {
		q.children[idx] = newQuad(x0, y0, half)
	}
	return q.children[idx]
}

func (q *quad) accumulate(nodes []*Node, strength float64) {
	var sx, sy, weight float64
	if q.leaf {
		if len(q.bodies) > 0 {
			first := nodes[q.bodies[0]]
			q.cx, q.cy = first.X, first.Y
		}
		q.strength = strength * float64(len(q.bodies))
		return
	}
	for _, c := range q.children {
		if c == nil {
			continue
		}
		c.accumulate(nodes, strength)
		w := math.Abs(c.strength)
		q.strength += c.strength
		sx += c.cx * w
		sy += c.cy * w
		weight += w
	}
	if weight > 0 {
		q.cx = sx / weight
		q.cy = sy / weight
	}
}

package forcelayout

// lcg is the linear congruential generator d3-force seeds its jiggle with,
// so two simulations over the same input produce the same layout.
type lcg struct {
	s uint64
}

const (
	lcgA = 1664525
	lcgC = 1013904223
	lcgM = 1 << 32
)

func newLCG() *lcg { return &lcg{s: 1} }

// next returns a value in [0, 1).
func (r *lcg) next() float64 {
	r.s = (lcgA*r.s + lcgC) % lcgM
	return float64(r.s) / lcgM
}

func (r *lcg) jiggle() float64 {
	return (r.next() - 0.5) * jiggleScale
}

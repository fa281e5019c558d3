package forcelayout

import (
	"fmt"
	"math"
)

// ScaleExtent bounds the zoom factor.
type ScaleExtent struct {
	Min float64
	Max float64
}

var DefaultScaleExtent = ScaleExtent{Min: 0.5, Max: 2}

// ZoomTransform is the pan/zoom applied to the whole drawing. It never
// touches node positions.
type ZoomTransform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var Identity = ZoomTransform{K: 1}

// Clamp limits K to the extent. A zero extent is treated as DefaultScaleExtent.
func (t ZoomTransform) Clamp(ext ScaleExtent) ZoomTransform {
	if ext.Min <= 0 || ext.Max <= 0 || ext.Min > ext.Max {
		ext = DefaultScaleExtent
	}
	if t.K <= 0 || math.IsNaN(t.K) {
		t.K = 1
	}
	t.K = math.Min(math.Max(t.K, ext.Min), ext.Max)
	return t
}

// Apply maps a layout point to screen space.
func (t ZoomTransform) Apply(x, y float64) (float64, float64) {
	return x*t.K + t.X, y*t.K + t.Y
}

// Invert maps a screen point back to layout space.
func (t ZoomTransform) Invert(x, y float64) (float64, float64) {
	return (x - t.X) / t.K, (y - t.Y) / t.K
}

func (t ZoomTransform) String() string {
	return fmt.Sprintf("translate(%g,%g) scale(%g)", t.X, t.Y, t.K)
}

package view

import (
	"fmt"
	"unicode/utf8"

	"github.com/yungbote/blog-backend/internal/modules/categories"
	"github.com/yungbote/blog-backend/internal/modules/categories/forcelayout"
)

// Drawing constants for graph frames.
const (
	BoxHeight   = 28.0
	Margin      = 20.0
	LinkStroke  = "#999"
	LinkOpacity = 0.3
	LinkWidth   = 1.0

	SelectedStroke      = "#3b82f6"
	SelectedStrokeWidth = 3.0
	SelectedFontWeight  = 600
	StrokeWidth         = 2.0
	FontWeight          = 400
)

// BoxWidth is the width of the label box drawn for name.
func BoxWidth(name string) float64 {
	return float64(utf8.RuneCountInString(name))*14 + 20
}

// FrameNode is one drawn node: a rounded label box centred at (X, Y).
type FrameNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Translate   string  `json:"translate"`
	BoxWidth    float64 `json:"box_width"`
	BoxHeight   float64 `json:"box_height"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
	FontWeight  int     `json:"font_weight"`
	Selected    bool    `json:"selected"`
	Pinned      bool    `json:"pinned"`
}

type FrameLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
}

// Frame is a snapshot of the graph drawing after a tick.
type Frame struct {
	Tick      int                       `json:"tick"`
	Alpha     float64                   `json:"alpha"`
	Settled   bool                      `json:"settled"`
	Width     float64                   `json:"width"`
	Height    float64                   `json:"height"`
	Transform forcelayout.ZoomTransform `json:"transform"`
	Attr      string                    `json:"transform_attr"`
	Nodes     []FrameNode               `json:"nodes"`
	Links     []FrameLink               `json:"links"`
}

// StyleFor returns the stroke, stroke width and font weight of a node box.
func StyleFor(color string, selected bool) (string, float64, int) {
	if selected {
		return SelectedStroke, SelectedStrokeWidth, SelectedFontWeight
	}
	return color, StrokeWidth, FontWeight
}

func buildFrame(g categories.Graph, sim *forcelayout.Simulation, sel *categories.Selection, w, h float64, zt forcelayout.ZoomTransform) Frame {
	f := Frame{
		Tick:      sim.Ticks(),
		Alpha:     sim.Alpha(),
		Settled:   !sim.Running(),
		Width:     w,
		Height:    h,
		Transform: zt,
		Attr:      zt.String(),
		Nodes:     make([]FrameNode, len(g.Nodes)),
		Links:     make([]FrameLink, len(g.Links)),
	}
	states := sim.Nodes()
	for i, gn := range g.Nodes {
		st := states[i]
		selected := sel.Has(gn.ID)
		stroke, width, weight := StyleFor(gn.Color, selected)
		f.Nodes[i] = FrameNode{
			ID:          gn.ID,
			Name:        gn.Name,
			X:           st.X,
			Y:           st.Y,
			Translate:   fmt.Sprintf("translate(%g,%g)", st.X, st.Y),
			BoxWidth:    BoxWidth(gn.Name),
			BoxHeight:   BoxHeight,
			Stroke:      stroke,
			StrokeWidth: width,
			FontWeight:  weight,
			Selected:    selected,
			Pinned:      st.Pinned,
		}
	}
	for i, ep := range sim.LinkEndpoints() {
		l := g.Links[i]
		f.Links[i] = FrameLink{Source: l.Source, Target: l.Target, X1: ep[0], Y1: ep[1], X2: ep[2], Y2: ep[3]}
	}
	return f
}

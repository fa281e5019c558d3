package view

import (
	"math"
	"time"

	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/modules/categories/forcelayout"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

const (
	ViewHeight      = 400.0
	SelectorHeight  = 500.0
	FullscreenInset = 100.0
	// MaxSide bounds every canvas and viewport dimension.
	MaxSide = 8192.0
)

// ValidSide reports whether v is a usable canvas or viewport dimension.
// Zero is valid and means no surface yet.
func ValidSide(v float64) bool {
	return v >= 0 && v <= MaxSide && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Options configures a Controller.
type Options struct {
	// Selectable enables selection on row and node clicks.
	Selectable bool
	// AllowFullscreen enables ToggleFullscreen.
	AllowFullscreen bool
	// Height is the canvas height outside fullscreen.
	Height float64
	// FullscreenInset is subtracted from the viewport height in fullscreen.
	FullscreenInset float64

	// Width and ViewportHeight are the initial container width and window height.
	// A zero width leaves graph mode without a surface until Resize.
	Width          float64
	ViewportHeight float64

	InitialMode      Mode
	InitialExpanded  []string
	InitialSelection []string

	// Params tunes the layout. Width and Height are replaced by the canvas size.
	Params      forcelayout.Params
	ScaleExtent forcelayout.ScaleExtent
	// FrameInterval is the layout frame period. Zero uses the default; a
	// negative interval disables the frame loop and frames advance only on Tick.
	FrameInterval time.Duration

	OnSelectionChange func(ids []string)
	OnFrame           func(Frame)

	Log *logger.Logger
}

// ViewOptions is the read-only category view.
func ViewOptions() Options {
	return Options{
		Height:          ViewHeight,
		FullscreenInset: FullscreenInset,
	}
}

// SelectorOptions is the multi-select category picker.
func SelectorOptions() Options {
	return Options{
		Selectable:      true,
		AllowFullscreen: true,
		Height:          SelectorHeight,
		FullscreenInset: FullscreenInset,
	}
}

func (o Options) withDefaults() Options {
	if o.Height <= 0 || math.IsNaN(o.Height) {
		o.Height = ViewHeight
	}
	if o.FullscreenInset <= 0 {
		o.FullscreenInset = FullscreenInset
	}
	if o.ScaleExtent.Min <= 0 || o.ScaleExtent.Max < o.ScaleExtent.Min {
		o.ScaleExtent = forcelayout.DefaultScaleExtent
	}
	if len(o.InitialExpanded) == 0 {
		o.InitialExpanded = []string{taxonomy.RootID}
	}
	if o.Log == nil {
		o.Log = logger.Nop()
	}
	return o
}

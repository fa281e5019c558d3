package render

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/yungbote/blog-backend/internal/modules/categories/view"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

const (
	DefaultFontSize = 14.0
	cornerRadius    = 4.0
)

var (
	background = color.White
	labelColor = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	fallback   = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
)

// Renderer rasterizes graph frames. Font faces are not safe for concurrent
// use, so drawing is serialized.
type Renderer struct {
	mu   sync.Mutex
	face font.Face
}

// NewRenderer loads a TrueType font from fontPath. An empty path uses the
// built-in bitmap face, which only covers ASCII.
func NewRenderer(fontPath string, size float64) (*Renderer, error) {
	if strings.TrimSpace(fontPath) == "" {
		return &Renderer{face: basicfont.Face7x13}, nil
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	face, err := loadFontFace(fontPath, size)
	if err != nil {
		return nil, err
	}
	return &Renderer{face: face}, nil
}

// NewRendererFromEnv reads CATEGORY_FONT. A font that fails to load is
// logged and the bitmap face is used instead.
func NewRendererFromEnv(log *logger.Logger) *Renderer {
	path := strings.TrimSpace(os.Getenv("CATEGORY_FONT"))
	r, err := NewRenderer(path, DefaultFontSize)
	if err != nil {
		if log != nil {
			log.Warn("category font unavailable, using bitmap face", "font", path, "error", err)
		}
		return &Renderer{face: basicfont.Face7x13}
	}
	if log != nil && path != "" {
		log.Info("Loaded category font", "font", path)
	}
	return r
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// PNG draws f and returns the encoded image.
func (r *Renderer) PNG(f view.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) Encode(w io.Writer, f view.Frame) error {
	if !view.ValidSide(f.Width) || !view.ValidSide(f.Height) {
		return fmt.Errorf("render: canvas %gx%g out of range", f.Width, f.Height)
	}
	width, height := int(f.Width), int(f.Height)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: empty canvas %dx%d", width, height)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()

	k := f.Transform.K
	if k <= 0 {
		k = 1
	}
	dc.Translate(f.Transform.X, f.Transform.Y)
	dc.Scale(k, k)

	link := parseColor(view.LinkStroke)
	link.A = uint8(math.Round(view.LinkOpacity * 255))
	dc.SetColor(link)
	dc.SetLineWidth(view.LinkWidth)
	for _, l := range f.Links {
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}

	dc.SetFontFace(r.face)
	for _, n := range f.Nodes {
		x := n.X - n.BoxWidth/2
		y := n.Y - n.BoxHeight/2
		dc.DrawRoundedRectangle(x, y, n.BoxWidth, n.BoxHeight, cornerRadius)
		dc.SetColor(color.White)
		dc.FillPreserve()
		dc.SetColor(parseColor(n.Stroke))
		dc.SetLineWidth(n.StrokeWidth)
		dc.Stroke()

		dc.SetColor(labelColor)
		dc.DrawStringAnchored(n.Name, n.X, n.Y, 0.5, 0.35)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// parseColor accepts #rgb and #rrggbb. Anything else maps to the default node color.
func parseColor(s string) color.NRGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}
}

package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/modules/categories/view"
)

func TestParseColor(t *testing.T) {
	tests := map[string]color.NRGBA{
		"#999":    {R: 0x99, G: 0x99, B: 0x99, A: 0xff},
		"#3b82f6": {R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
		"61dafb":  {R: 0x61, G: 0xda, B: 0xfb, A: 0xff},
		"":        fallback,
		"#zzzzzz": fallback,
	}
	for in, want := range tests {
		if got := parseColor(in); got != want {
			t.Fatalf("parseColor(%q)=%v want %v", in, got, want)
		}
	}
}

func TestPNGDrawsFrame(t *testing.T) {
	opts := view.SelectorOptions()
	opts.Width = 640
	opts.FrameInterval = -1
	opts.InitialMode = view.ModeGraph
	c, err := view.New(taxonomy.Default(), opts)
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	defer c.Close()
	for i := 0; i < 400; i++ {
		if f, _ := c.Tick(); f.Settled {
			break
		}
	}
	f, ok := c.Frame()
	if !ok {
		t.Fatalf("no frame")
	}

	r, err := NewRenderer("", 0)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	raw, err := r.PNG(f)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != int(view.SelectorHeight) {
		t.Fatalf("bounds=%v", b)
	}

	var inked int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, g, bl, _ := img.At(x, y).RGBA(); r != 0xffff || g != 0xffff || bl != 0xffff {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatalf("frame drew nothing")
	}
}

func TestPNGRejectsEmptyCanvas(t *testing.T) {
	r, _ := NewRenderer("", 0)
	if _, err := r.PNG(view.Frame{}); err == nil {
		t.Fatalf("expected error for empty canvas")
	}
	for _, f := range []view.Frame{
		{Width: 1e18, Height: 400},
		{Width: 640, Height: view.MaxSide + 1},
		{Width: math.Inf(1), Height: 400},
		{Width: math.NaN(), Height: 400},
	} {
		if _, err := r.PNG(f); err == nil {
			t.Fatalf("expected error for %vx%v canvas", f.Width, f.Height)
		}
	}
	if _, err := NewRenderer("testdata/missing.ttf", 12); err == nil {
		t.Fatalf("expected error for missing font")
	}
}

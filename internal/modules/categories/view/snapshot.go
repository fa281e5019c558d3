package view

import (
	"fmt"

	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/modules/categories"
	"github.com/yungbote/blog-backend/internal/modules/categories/forcelayout"
)

// MaxSnapshotTicks bounds Snapshot for parameter sets that never cool.
const MaxSnapshotTicks = 2000

// Snapshot lays out root on a width x height canvas, runs the simulation
// to rest and returns the final frame with the default margin transform.
func Snapshot(root *taxonomy.Category, width, height float64, p forcelayout.Params, selected []string) (Frame, error) {
	if width <= 0 || height <= 0 || !ValidSide(width) || !ValidSide(height) {
		return Frame{}, fmt.Errorf("%w: %gx%g", ErrInvalidSize, width, height)
	}
	g := categories.ToGraph(root)
	links := make([]forcelayout.Link, len(g.Links))
	for i, l := range g.Links {
		links[i] = forcelayout.Link{Source: l.Source, Target: l.Target}
	}
	p.Width, p.Height = width, height
	sim, err := forcelayout.New(g.NodeIDs(), links, p)
	if err != nil {
		return Frame{}, fmt.Errorf("view: build layout: %w", err)
	}
	sim.Settle(MaxSnapshotTicks)
	return buildFrame(g, sim, categories.NewSelection(selected...), width, height, marginTransform), nil
}

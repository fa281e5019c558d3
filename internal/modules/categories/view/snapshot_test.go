package view

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/modules/categories/forcelayout"
)

func TestSnapshotSettles(t *testing.T) {
	f, err := Snapshot(taxonomy.Default(), 800, 500, forcelayout.Params{}, []string{"react"})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !f.Settled || len(f.Nodes) != 11 || len(f.Links) != 10 {
		t.Fatalf("settled=%v nodes=%d links=%d", f.Settled, len(f.Nodes), len(f.Links))
	}
	if f.Attr != "translate(20,20) scale(1)" {
		t.Fatalf("attr=%q", f.Attr)
	}
	if n := nodeByID(t, f, "react"); !n.Selected || n.Stroke != SelectedStroke {
		t.Fatalf("react=%+v", n)
	}

	again, _ := Snapshot(taxonomy.Default(), 800, 500, forcelayout.Params{}, []string{"react"})
	if diff := cmp.Diff(f, again); diff != "" {
		t.Fatalf("snapshot not deterministic (-first +second):\n%s", diff)
	}
}

func TestSnapshotRejectsEmptyCanvas(t *testing.T) {
	if _, err := Snapshot(taxonomy.Default(), 0, 500, forcelayout.Params{}, nil); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("err=%v", err)
	}
}

package taxonomy

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultTreeShape(t *testing.T) {
	root := Default()
	if root.ID != RootID {
		t.Fatalf("root id=%q", root.ID)
	}
	if err := Validate(root); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	var order []string
	Walk(root, func(n, _ *Category, _ int) bool {
		order = append(order, n.ID)
		return true
	})
	want := []string{
		"root",
		"frontend", "react", "vue", "typescript",
		"backend", "nodejs", "python",
		"engineering", "devops", "testing",
	}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("walk order (-want +got):\n%s", diff)
	}
	if got := Size(root); got != len(want) {
		t.Fatalf("size=%d want=%d", got, len(want))
	}
}

func TestWeightAndColorDefaults(t *testing.T) {
	root := Default()
	if root.Weight() != DefaultCount || root.DrawColor() != DefaultColor {
		t.Fatalf("root weight=%d color=%q", root.Weight(), root.DrawColor())
	}
	react := Find(root, "react")
	if react == nil || react.Weight() != 8 || react.DrawColor() != "#61dafb" {
		t.Fatalf("react=%+v", react)
	}
	if Find(root, "missing") != nil {
		t.Fatalf("Find should return nil for unknown ids")
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	var depths []int
	Walk(Default(), func(n, parent *Category, depth int) bool {
		depths = append(depths, depth)
		return depth < 1
	})
	// root plus its three direct children.
	if diff := cmp.Diff([]int{0, 1, 1, 1}, depths); diff != "" {
		t.Fatalf("depths (-want +got):\n%s", diff)
	}
}

func TestStaticProviderReturnsCopies(t *testing.T) {
	p := Static(Default())
	a := p.Tree()
	a.Children[0].Name = "mutated"
	b := p.Tree()
	if b.Children[0].Name == "mutated" {
		t.Fatalf("provider leaked a shared tree")
	}
}

func TestValidate(t *testing.T) {
	shared := &Category{ID: "x", Name: "X"}
	tests := []struct {
		name string
		root *Category
		want string
	}{
		{name: "nil", root: nil, want: "missing root"},
		{name: "wrong root", root: &Category{ID: "top"}, want: `root id must be "root"`},
		{name: "duplicate", root: &Category{ID: "root", Children: []*Category{{ID: "a"}, {ID: "a"}}}, want: `duplicate id "a"`},
		{name: "empty id", root: &Category{ID: "root", Children: []*Category{{ID: " "}}}, want: "empty id"},
		{name: "shared node", root: &Category{ID: "root", Children: []*Category{shared, shared}}, want: "reachable more than once"},
		{name: "negative count", root: &Category{ID: "root", Children: []*Category{{ID: "a", Count: -1}}}, want: "negative count"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.root)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err=%v want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err=%q want substring %q", err.Error(), tc.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	root, err := LoadFile(filepath.Join("testdata", "valid.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := &Category{
		ID:   "root",
		Name: "All",
		Children: []*Category{
			{ID: "go", Name: "Go", Color: "#00add8", Count: 3, Children: []*Category{{ID: "gin", Name: "Gin"}}},
			{ID: "rust", Name: "Rust"},
		},
	}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("tree (-want +got):\n%s", diff)
	}
}

func TestParseRejectsUnknownFieldsAndInvalidTrees(t *testing.T) {
	if _, err := Parse([]byte("id: root\nname: All\ncolour: red\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := Parse([]byte("id: top\nname: All\n")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err=%v want ErrInvalid", err)
	}
}

func TestNewProviderDefault(t *testing.T) {
	p, err := NewProvider("")
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if Size(p.Tree()) != Size(Default()) {
		t.Fatalf("empty path should serve the default tree")
	}
	if _, err := NewProvider(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

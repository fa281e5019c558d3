package taxonomy

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider supplies the category tree.
type Provider interface {
	Tree() *Category
}

type staticProvider struct {
	root *Category
}

// Static wraps a fixed tree. Tree returns a copy, so callers may not mutate the source.
func Static(root *Category) Provider {
	return &staticProvider{root: root}
}

func (p *staticProvider) Tree() *Category {
	return p.root.Clone()
}

// Parse decodes a YAML (or JSON) tree and validates it.
func Parse(raw []byte) (*Category, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var root Category
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	if err := Validate(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

func LoadFile(path string) (*Category, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	return Parse(raw)
}

// NewProvider loads path when set and falls back to Default otherwise.
func NewProvider(path string) (Provider, error) {
	if path == "" {
		return Static(Default()), nil
	}
	root, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Static(root), nil
}

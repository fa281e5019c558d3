package view

import (
	"fmt"
	"strings"
)

// Mode is the presentation a controller draws: the indented tree or the force graph.
type Mode int

const (
	ModeTree Mode = iota
	ModeGraph
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tree", "":
		return ModeTree, nil
	case "graph":
		return ModeGraph, nil
	default:
		return ModeTree, fmt.Errorf("unknown view mode %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeTree:
		return "tree"
	case ModeGraph:
		return "graph"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeTree, ModeGraph:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("invalid view mode %d", int(m))
	}
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

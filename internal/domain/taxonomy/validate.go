package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid taxonomy")

// ValidationError lists every problem found in a tree.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid taxonomy: %s", strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// Validate checks the root id, that every id is non-empty and unique,
// and that no node is reachable twice.
func Validate(root *Category) error {
	if root == nil {
		return &ValidationError{Problems: []string{"missing root"}}
	}
	var problems []string
	if root.ID != RootID {
		problems = append(problems, fmt.Sprintf("root id must be %q, got %q", RootID, root.ID))
	}
	seenIDs := map[string]bool{}
	seenNodes := map[*Category]bool{}
	var visit func(node *Category, path string)
	visit = func(node *Category, path string) {
		if node == nil {
			problems = append(problems, fmt.Sprintf("nil child under %s", path))
			return
		}
		if seenNodes[node] {
			problems = append(problems, fmt.Sprintf("node %q reachable more than once", node.ID))
			return
		}
		seenNodes[node] = true
		id := strings.TrimSpace(node.ID)
		switch {
		case id == "":
			problems = append(problems, fmt.Sprintf("empty id under %s", path))
		case seenIDs[id]:
			problems = append(problems, fmt.Sprintf("duplicate id %q", id))
		default:
			seenIDs[id] = true
		}
		if node.Count < 0 {
			problems = append(problems, fmt.Sprintf("negative count on %q", id))
		}
		for _, ch := range node.Children {
			visit(ch, path+"/"+id)
		}
	}
	visit(root, "")
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

package taxonomy

// RootID is the id every taxonomy root must carry.
const RootID = "root"

const (
	DefaultCount = 10
	DefaultColor = "#666"
)

// Category is one node of the category tree. Count and Color are optional;
// a zero Count or empty Color means "not set".
type Category struct {
	ID       string      `json:"id" yaml:"id"`
	Name     string      `json:"name" yaml:"name"`
	Count    int         `json:"count,omitempty" yaml:"count,omitempty"`
	Color    string      `json:"color,omitempty" yaml:"color,omitempty"`
	Children []*Category `json:"children,omitempty" yaml:"children,omitempty"`
}

func (c *Category) HasChildren() bool {
	return c != nil && len(c.Children) > 0
}

// Weight is Count, or DefaultCount when unset.
func (c *Category) Weight() int {
	if c.Count != 0 {
		return c.Count
	}
	return DefaultCount
}

// DrawColor is Color, or DefaultColor when unset.
func (c *Category) DrawColor() string {
	if c.Color != "" {
		return c.Color
	}
	return DefaultColor
}

// Clone returns a deep copy.
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	out := &Category{ID: c.ID, Name: c.Name, Count: c.Count, Color: c.Color}
	if len(c.Children) > 0 {
		out.Children = make([]*Category, 0, len(c.Children))
		for _, ch := range c.Children {
			out.Children = append(out.Children, ch.Clone())
		}
	}
	return out
}

// WalkFunc is called for every node in pre-order. parent is nil for the root.
// Returning false skips the node's children.
type WalkFunc func(node, parent *Category, depth int) bool

// Walk visits root and its descendants in pre-order, children in declaration order.
func Walk(root *Category, fn WalkFunc) {
	walk(root, nil, 0, fn)
}

func walk(node, parent *Category, depth int, fn WalkFunc) {
	if node == nil {
		return
	}
	if !fn(node, parent, depth) {
		return
	}
	for _, ch := range node.Children {
		walk(ch, node, depth+1, fn)
	}
}

func Size(root *Category) int {
	n := 0
	Walk(root, func(*Category, *Category, int) bool {
		n++
		return true
	})
	return n
}

func Find(root *Category, id string) *Category {
	var found *Category
	Walk(root, func(node, _ *Category, _ int) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

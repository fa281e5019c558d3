package categories

import "github.com/yungbote/blog-backend/internal/domain/taxonomy"

// Row is one visible line of the tree presentation.
type Row struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color,omitempty"`
	Count       int     `json:"count,omitempty"`
	Depth       int     `json:"depth"`
	IndentRem   float64 `json:"indent_rem"`
	HasChildren bool    `json:"has_children"`
	Expanded    bool    `json:"expanded"`
	Selected    bool    `json:"selected"`
}

// RenderState is the UI state the tree is drawn against. Nil members mean empty.
type RenderState struct {
	Expanded *ExpansionSet
	Selected *Selection
}

// Indent is the left padding, in rem, of a row at depth.
func Indent(depth int) float64 {
	return float64(depth)*1.5 + 0.5
}

// RenderTree lists the visible rows in pre-order. Children of a node are
// only listed while the node is expanded.
func RenderTree(root *taxonomy.Category, st RenderState) []Row {
	rows := []Row{}
	taxonomy.Walk(root, func(node, _ *taxonomy.Category, depth int) bool {
		expanded := st.Expanded.Has(node.ID)
		rows = append(rows, Row{
			ID:          node.ID,
			Name:        node.Name,
			Color:       node.Color,
			Count:       node.Count,
			Depth:       depth,
			IndentRem:   Indent(depth),
			HasChildren: node.HasChildren(),
			Expanded:    expanded,
			Selected:    st.Selected.Has(node.ID),
		})
		return expanded
	})
	return rows
}

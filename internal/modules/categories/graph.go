package categories

import "github.com/yungbote/blog-backend/internal/domain/taxonomy"

type GraphNode struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Color  string `json:"color"`
}

// GraphLink points from a parent category to one of its children.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// ToGraph flattens the tree in pre-order. Every non-root node yields one link to its parent.
func ToGraph(root *taxonomy.Category) Graph {
	g := Graph{Nodes: []GraphNode{}, Links: []GraphLink{}}
	taxonomy.Walk(root, func(node, parent *taxonomy.Category, _ int) bool {
		g.Nodes = append(g.Nodes, GraphNode{
			ID:     node.ID,
			Name:   node.Name,
			Weight: node.Weight(),
			Color:  node.DrawColor(),
		})
		if parent != nil {
			g.Links = append(g.Links, GraphLink{Source: parent.ID, Target: node.ID})
		}
		return true
	})
	return g
}

func (g Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

package taxonomy

// Default returns a fresh copy of the built-in blog taxonomy.
func Default() *Category {
	return &Category{
		ID:   RootID,
		Name: "全部分类",
		Children: []*Category{
			{
				ID:    "frontend",
				Name:  "前端开发",
				Color: "#3b82f6",
				Children: []*Category{
					{ID: "react", Name: "React", Count: 8, Color: "#61dafb"},
					{ID: "vue", Name: "Vue", Count: 6, Color: "#42b883"},
					{ID: "typescript", Name: "TypeScript", Count: 4, Color: "#3178c6"},
				},
			},
			{
				ID:    "backend",
				Name:  "后端技术",
				Color: "#8b5cf6",
				Children: []*Category{
					{ID: "nodejs", Name: "Node.js", Count: 5, Color: "#68a063"},
					{ID: "python", Name: "Python", Count: 3, Color: "#ffd43b"},
				},
			},
			{
				ID:    "engineering",
				Name:  "工程实践",
				Color: "#f97316",
				Children: []*Category{
					{ID: "devops", Name: "DevOps", Count: 7, Color: "#fc6d26"},
					{ID: "testing", Name: "Testing", Count: 4, Color: "#8bc34a"},
				},
			},
		},
	}
}

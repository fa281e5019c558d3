package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/blog-backend/internal/data/graph"
	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/modules/categories"
	"github.com/yungbote/blog-backend/internal/modules/categories/forcelayout"
	"github.com/yungbote/blog-backend/internal/modules/categories/render"
	"github.com/yungbote/blog-backend/internal/modules/categories/view"
	"github.com/yungbote/blog-backend/internal/platform/neo4jdb"
)

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a taxonomy file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.taxonomyFile
			if len(args) == 1 {
				path = args[0]
			}
			p, err := taxonomy.NewProvider(path)
			out := cmd.OutOrStdout()
			if err != nil {
				fmt.Fprintf(out, "%s %v\n", statusIcon(false), err)
				return err
			}
			root := p.Tree()
			if opts.jsonOutput {
				return writeJSON(out, map[string]any{"valid": true, "categories": taxonomy.Size(root)})
			}
			name := path
			if name == "" {
				name = "built-in taxonomy"
			}
			fmt.Fprintf(out, "%s %s: %d categories\n", statusIcon(true), name, taxonomy.Size(root))
			return nil
		},
	}
}

func newTreeCommand(opts *options) *cobra.Command {
	var expanded, selected []string
	var all bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the category tree rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.load()
			if err != nil {
				return err
			}
			exp := categories.NewExpansionSet(append([]string{taxonomy.RootID}, expanded...)...)
			if all {
				taxonomy.Walk(root, func(n, _ *taxonomy.Category, _ int) bool {
					if n.HasChildren() && !exp.Has(n.ID) {
						exp.Toggle(n.ID)
					}
					return true
				})
			}
			rows := categories.RenderTree(root, categories.RenderState{
				Expanded: exp,
				Selected: categories.NewSelection(selected...),
			})
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, rows)
			}
			fmt.Fprintln(out, brand.Sprint("Categories"))
			for _, row := range rows {
				marker := " "
				switch {
				case row.HasChildren && row.Expanded:
					marker = "▾"
				case row.HasChildren:
					marker = "▸"
				}
				name := row.Name
				if row.Selected {
					name = good.Sprint(name)
				}
				fmt.Fprintf(out, "%s%s %s", strings.Repeat("  ", row.Depth), marker, name)
				if row.Count > 0 {
					fmt.Fprint(out, subtle.Sprintf(" (%d)", row.Count))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&expanded, "expand", nil, "category ids to expand")
	cmd.Flags().StringSliceVar(&selected, "select", nil, "category ids to mark selected")
	cmd.Flags().BoolVar(&all, "all", false, "expand every category")
	return cmd
}

func newGraphCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the category graph nodes and links",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.load()
			if err != nil {
				return err
			}
			g := categories.ToGraph(root)
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, g)
			}
			parents := make(map[string]string, len(g.Links))
			for _, l := range g.Links {
				parents[l.Target] = l.Source
			}
			rows := make([][]string, 0, len(g.Nodes))
			for _, n := range g.Nodes {
				rows = append(rows, []string{n.ID, n.Name, strconv.Itoa(n.Weight), swatch(n.Color), parents[n.ID]})
			}
			fmt.Fprintf(out, "%s %d nodes, %d links\n", brand.Sprint("Graph"), len(g.Nodes), len(g.Links))
			table(out, []string{"ID", "NAME", "WEIGHT", "COLOR", "PARENT"}, rows)
			return nil
		},
	}
}

func newLayoutCommand(opts *options) *cobra.Command {
	var (
		width, height float64
		selected      []string
		pngPath       string
		fontPath      string
		charge        float64
		linkDistance  float64
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Run the force layout to rest and print or draw it",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.load()
			if err != nil {
				return err
			}
			p := forcelayout.DefaultParams(width, height)
			if cmd.Flags().Changed("charge") {
				p.Charge = charge
			}
			if cmd.Flags().Changed("link-distance") {
				p.LinkDistance = linkDistance
			}
			f, err := view.Snapshot(root, width, height, p, selected)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if pngPath != "" {
				r, err := render.NewRenderer(fontPath, render.DefaultFontSize)
				if err != nil {
					return err
				}
				img, err := r.PNG(f)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pngPath, img, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", pngPath, err)
				}
				fmt.Fprintf(out, "%s wrote %s (%dx%d, %d ticks)\n", statusIcon(true), pngPath, int(f.Width), int(f.Height), f.Tick)
				return nil
			}
			if opts.jsonOutput {
				return writeJSON(out, f)
			}
			rows := make([][]string, 0, len(f.Nodes))
			for _, n := range f.Nodes {
				rows = append(rows, []string{n.ID, fmt.Sprintf("%.1f", n.X), fmt.Sprintf("%.1f", n.Y)})
			}
			fmt.Fprintf(out, "%s settled=%v after %d ticks\n", brand.Sprint("Layout"), f.Settled, f.Tick)
			table(out, []string{"ID", "X", "Y"}, rows)
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 800, "canvas width")
	cmd.Flags().Float64Var(&height, "height", view.ViewHeight, "canvas height")
	cmd.Flags().StringSliceVar(&selected, "select", nil, "category ids to highlight")
	cmd.Flags().StringVar(&pngPath, "png", "", "write the drawing to this PNG file")
	cmd.Flags().StringVar(&fontPath, "font", envVarOr("CATEGORY_FONT"), "TrueType font for labels")
	cmd.Flags().Float64Var(&charge, "charge", -200, "many-body strength")
	cmd.Flags().Float64Var(&linkDistance, "link-distance", 80, "link rest length")
	return cmd
}

func newExportCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export-neo4j",
		Short: "Mirror the taxonomy into Neo4j",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.load()
			if err != nil {
				return err
			}
			log := opts.logger()
			defer log.Sync()
			client, err := neo4jdb.NewFromEnv(log)
			if err != nil {
				return err
			}
			if client == nil {
				return errors.New("NEO4J_URI is not set")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			defer client.Close(context.Background())
			n, err := graph.UpsertCategoryTaxonomy(ctx, client, log, root)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s exported %d categories\n", statusIcon(true), n)
			return nil
		},
	}
}

func envVarOr(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

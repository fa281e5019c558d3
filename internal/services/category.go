package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yungbote/blog-backend/internal/data/graph"
	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/modules/categories"
	"github.com/yungbote/blog-backend/internal/modules/categories/forcelayout"
	"github.com/yungbote/blog-backend/internal/modules/categories/view"
	"github.com/yungbote/blog-backend/internal/platform/apierr"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/platform/neo4jdb"
)

const (
	DefaultLayoutWidth  = 800.0
	DefaultLayoutHeight = view.ViewHeight
)

type CategoryService interface {
	Tree() *taxonomy.Category
	Graph() categories.Graph
	Has(id string) bool
	// Layout runs a fresh layout to rest on a width x height canvas.
	Layout(ctx context.Context, width, height float64, selected []string) (view.Frame, error)
	// Export mirrors the taxonomy into Neo4j. It is a no-op without a client.
	Export(ctx context.Context) (int, error)
}

type categoryService struct {
	log    *logger.Logger
	tree   taxonomy.Provider
	neo4j  *neo4jdb.Client
	params forcelayout.Params
}

func NewCategoryService(log *logger.Logger, tree taxonomy.Provider, neo4j *neo4jdb.Client) CategoryService {
	serviceLog := log.With("service", "CategoryService")
	return &categoryService{log: serviceLog, tree: tree, neo4j: neo4j}
}

func (cs *categoryService) Tree() *taxonomy.Category { return cs.tree.Tree() }

func (cs *categoryService) Graph() categories.Graph { return categories.ToGraph(cs.tree.Tree()) }

func (cs *categoryService) Has(id string) bool { return taxonomy.Find(cs.tree.Tree(), id) != nil }

func (cs *categoryService) Layout(ctx context.Context, width, height float64, selected []string) (view.Frame, error) {
	if width == 0 {
		width = DefaultLayoutWidth
	}
	if height == 0 {
		height = DefaultLayoutHeight
	}
	if !view.ValidSide(width) || !view.ValidSide(height) {
		return view.Frame{}, mapViewError(view.ErrInvalidSize)
	}
	for _, id := range selected {
		if !cs.Has(id) {
			return view.Frame{}, mapViewError(fmt.Errorf("%w: %q", view.ErrUnknownCategory, id))
		}
	}
	if err := ctx.Err(); err != nil {
		return view.Frame{}, err
	}
	f, err := view.Snapshot(cs.tree.Tree(), width, height, cs.params, selected)
	if err != nil {
		return view.Frame{}, mapViewError(err)
	}
	return f, nil
}

func (cs *categoryService) Export(ctx context.Context) (int, error) {
	n, err := graph.UpsertCategoryTaxonomy(ctx, cs.neo4j, cs.log, cs.tree.Tree())
	if err != nil {
		return 0, apierr.New(http.StatusBadGateway, "neo4j_export_failed", err)
	}
	return n, nil
}

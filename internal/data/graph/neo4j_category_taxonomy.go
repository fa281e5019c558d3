package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/platform/neo4jdb"
)

type categoryRecords struct {
	nodes []map[string]any
	rels  []map[string]any
	ids   []string
}

func buildCategoryRecords(root *taxonomy.Category, now time.Time) categoryRecords {
	synced := now.UTC().Format(time.RFC3339Nano)
	var out categoryRecords
	taxonomy.Walk(root, func(n, parent *taxonomy.Category, depth int) bool {
		out.ids = append(out.ids, n.ID)
		out.nodes = append(out.nodes, map[string]any{
			"id":        n.ID,
			"name":      n.Name,
			"count":     int64(n.Weight()),
			"color":     n.DrawColor(),
			"depth":     int64(depth),
			"synced_at": synced,
		})
		if parent != nil {
			out.rels = append(out.rels, map[string]any{
				"parent_id": parent.ID,
				"child_id":  n.ID,
				"synced_at": synced,
			})
		}
		return true
	})
	return out
}

// UpsertCategoryTaxonomy mirrors the category tree into Neo4j as
// (:BlogCategory)-[:HAS_SUBCATEGORY]->(:BlogCategory). Categories no longer in
// the tree are removed. A nil client is a no-op.
func UpsertCategoryTaxonomy(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, root *taxonomy.Category) (int, error) {
	if client == nil || client.Driver == nil || root == nil {
		return 0, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	recs := buildCategoryRecords(root, time.Now())

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	// Best-effort schema init.
	if res, err := session.Run(ctx, `CREATE CONSTRAINT blog_category_id_unique IF NOT EXISTS FOR (c:BlogCategory) REQUIRE c.id IS UNIQUE`, nil); err != nil {
		if log != nil {
			log.Warn("neo4j schema init failed (continuing)", "error", err)
		}
	} else {
		_, _ = res.Consume(ctx)
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		steps := []struct {
			query  string
			params map[string]any
		}{
			{`
UNWIND $nodes AS n
MERGE (c:BlogCategory {id: n.id})
SET c += n
`, map[string]any{"nodes": recs.nodes}},
			{`
MATCH (:BlogCategory)-[e:HAS_SUBCATEGORY]->(:BlogCategory)
DELETE e
`, nil},
			{`
UNWIND $rels AS r
MATCH (p:BlogCategory {id: r.parent_id})
MATCH (c:BlogCategory {id: r.child_id})
MERGE (p)-[e:HAS_SUBCATEGORY]->(c)
SET e.synced_at = r.synced_at
`, map[string]any{"rels": recs.rels}},
			{`
MATCH (c:BlogCategory)
WHERE NOT c.id IN $ids
DETACH DELETE c
`, map[string]any{"ids": recs.ids}},
		}
		for _, s := range steps {
			res, err := tx.Run(ctx, s.query, s.params)
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return 0, err
	}
	if log != nil {
		log.Info("category taxonomy synced to neo4j", "categories", len(recs.nodes), "edges", len(recs.rels))
	}
	return len(recs.nodes), nil
}

package builder

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mkoster/codeatlas/internal/config"
	"github.com/mkoster/codeatlas/internal/graph"
	"github.com/mkoster/codeatlas/internal/layout"
	"github.com/mkoster/codeatlas/internal/raster"
	"github.com/mkoster/codeatlas/internal/store"
)

// BuildStructural walks the project tree once and persists the
// directory/file containment graph: full tier with layout, simple tier as
// the top-degree induced subgraph. Rebuilds replace both tiers wholesale.
func (b *Builder) BuildStructural(ctx context.Context, cb Progress) (*graph.Graph, error) {
	root, err := filepath.Abs(b.Root)
	if err != nil {
		return nil, err
	}

	g := graph.New()
	rootName := filepath.Base(root)
	g.AddNode(&graph.Node{ID: rootName, Kind: graph.KindDir, Label: rootName})

	count := 0
	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if info.IsDir() {
			if config.IgnoreDirs[info.Name()] {
				return filepath.SkipDir
			}
			g.AddNode(&graph.Node{ID: rel, Kind: graph.KindDir, Label: info.Name()})
		} else {
			g.AddNode(&graph.Node{ID: rel, Kind: graph.KindFile, Label: info.Name()})
			count++
		}
		g.AddEdge(&graph.Edge{From: parentID(rel, rootName), To: rel, Kind: graph.EdgeContains})
		return nil
	})
	if err != nil {
		return nil, err
	}
	report(cb, count, count, "file scan complete")

	graph.ApplyVisualStyles(g)

	slog.Info("structural.layout", "nodes", g.Len())
	positions := layout.Spring(g, layout.InteractiveIterations)

	full := &store.Snapshot{Root: root, Graph: g, Positions: positions}
	if g.Len() > b.Cfg.StaticRenderThreshold {
		full.StaticImage = raster.Generate(g, graphName(store.Structural, store.Full), b.Cfg.GraphsDir(), positions)
	}
	if err := b.Store.Save(store.Structural, store.Full, full); err != nil {
		return nil, err
	}

	// The simple tier reuses the styled nodes; its edges are exactly the
	// full tier's edges induced on the kept node set.
	simple := g
	if g.Len() > b.Cfg.SimpleTierLimit {
		simple = g.Subgraph(g.TopByDegree(b.Cfg.SimpleTierLimit))
	}
	if err := b.Store.Save(store.Structural, store.Simple, &store.Snapshot{Root: root, Graph: simple}); err != nil {
		return nil, err
	}

	slog.Info("structural.built", "nodes", g.Len(), "edges", len(g.Edges))
	return g, nil
}

// parentID maps a relative path to its containing node: the parent
// directory, or the project root node for top-level entries.
func parentID(rel, rootName string) string {
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." || dir == "" {
		return rootName
	}
	return dir
}

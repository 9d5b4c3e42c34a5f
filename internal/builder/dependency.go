package builder

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mkoster/codeatlas/internal/graph"
	"github.com/mkoster/codeatlas/internal/raster"
	"github.com/mkoster/codeatlas/internal/resolve"
	"github.com/mkoster/codeatlas/internal/scan"
	"github.com/mkoster/codeatlas/internal/store"
)

// BuildDependency parses every eligible source file concurrently and
// derives both dependency graph tiers from the structural snapshot:
// same nodes and layout, containment edges replaced by resolved imports.
func (b *Builder) BuildDependency(ctx context.Context, cb Progress) error {
	report(cb, 0, 1, "scanning project structure")

	files, err := scan.Discover(ctx, b.Root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		slog.Warn("dependency.no_targets", "root", b.Root)
		return nil
	}

	parsed := scan.ParseAll(ctx, b.Parser, files, b.Cfg.Workers, b.Cfg.ProgressEvery, scan.Progress(cb))

	for _, tier := range []store.Tier{store.Full, store.Simple} {
		if err := b.buildDependencyTier(ctx, tier, parsed, cb); err != nil {
			return err
		}
	}
	report(cb, len(files), len(files), "dependency analysis complete")
	return nil
}

func (b *Builder) buildDependencyTier(ctx context.Context, tier store.Tier, parsed map[string]*scan.FileParse, cb Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	report(cb, 0, 1, "constructing "+string(tier)+" dependency graph")

	base, ok := b.Store.Load(store.Structural, tier)
	if !ok {
		// Missing base graph: build the smaller dependency on demand.
		if _, err := b.BuildStructural(ctx, nil); err != nil {
			return err
		}
		base, _ = b.Store.Load(store.Structural, tier)
	}

	g := base.Graph
	g.ClearEdges()

	universe := make([]string, 0, g.Len())
	for _, n := range g.Nodes {
		universe = append(universe, n.ID)
	}
	resolver := resolve.New(universe)

	// Deterministic edge insertion order: sources sorted, imports in
	// extraction order.
	sources := make([]string, 0, len(parsed))
	for rel := range parsed {
		sources = append(sources, rel)
	}
	sort.Strings(sources)

	edges, rawImports := 0, 0
	for _, source := range sources {
		info := parsed[source]
		if info.Err != "" || !g.HasNode(source) {
			continue
		}
		rawImports += len(info.Imports)
		for _, imp := range info.Imports {
			target, ok := resolver.Resolve(source, imp)
			if !ok || target == source || !g.HasNode(target) {
				continue
			}
			if g.AddEdge(&graph.Edge{From: source, To: target, Kind: graph.EdgeInclude}) {
				edges++
			}
		}
	}
	slog.Info("dependency.built", "tier", tier, "edges", edges, "raw_imports", rawImports)

	snap := &store.Snapshot{
		Root:      base.Root,
		Graph:     g,
		Positions: base.Positions,
		Metadata:  parsed,
	}
	if tier == store.Full && g.Len() > b.Cfg.StaticRenderThreshold {
		// Reuse the inherited layout: repeated renders of related graphs
		// must agree on node placement.
		snap.StaticImage = raster.Generate(g, graphName(store.Dependency, store.Full), b.Cfg.GraphsDir(), base.Positions)
	}
	return b.Store.Save(store.Dependency, tier, snap)
}

package builder

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/mkoster/codeatlas/internal/graph"
	"github.com/mkoster/codeatlas/internal/layout"
	"github.com/mkoster/codeatlas/internal/raster"
	"github.com/mkoster/codeatlas/internal/scopeset"
	"github.com/mkoster/codeatlas/internal/store"
)

const scopeDefinitionSize = 10

// scopeDef is one definition node in insertion order, kept around for the
// call-linking pass.
type scopeDef struct {
	id    string
	file  string
	calls []string
}

// BuildScope rebuilds the symbol-level graph over the persisted scope set.
// File-to-file edges come from dependency-graph reachability; definition
// and call edges come from a detailed parse of each scoped file. The
// whole graph is rebuilt from scratch on every invocation.
func (b *Builder) BuildScope(ctx context.Context, cb Progress) error {
	root, err := filepath.Abs(b.Root)
	if err != nil {
		return err
	}

	dep, _ := b.Store.Load(store.Dependency, store.Full)

	scope, err := scopeset.Load(b.Cfg.OutputsDir())
	if err != nil {
		return err
	}
	files := scope.Files()
	if len(files) == 0 {
		slog.Info("scope.empty")
		for _, tier := range []store.Tier{store.Full, store.Simple} {
			if err := b.Store.Save(store.Scope, tier, &store.Snapshot{Root: root, Graph: graph.New()}); err != nil {
				return err
			}
		}
		return nil
	}

	g := graph.New()
	for _, f := range files {
		n := &graph.Node{ID: f, Kind: graph.KindFile, Label: path.Base(f)}
		if prior := dep.Graph.Node(f); prior != nil {
			n.Group = prior.Group
			n.Size = prior.Size
		} else {
			n.Group = graph.GroupFor(f)
			n.Size = scopeDefaultFileSize
		}
		g.AddNode(n)
	}

	// Reachability, not just adjacency: a transitive dependency between
	// two scoped files is still relevant inside the small subset.
	// Quadratic over the scope set, which is intentionally tiny.
	for _, from := range files {
		for _, to := range files {
			if from == to {
				continue
			}
			if dep.Graph.HasEdge(from, to) || dep.Graph.HasPath(from, to) {
				g.AddEdge(&graph.Edge{
					From:  from,
					To:    to,
					Kind:  graph.EdgeDependency,
					Style: "dashed",
					Color: "#555",
				})
			}
		}
	}

	var defs []scopeDef
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		report(cb, i, len(files), "analyzing "+f)

		res := b.Parser.ParseFile(filepath.Join(root, filepath.FromSlash(f)), true)
		if res.Err != "" {
			slog.Warn("scope.parse_failed", "file", f, "error", res.Err)
			g.Node(f).Title = fileTooltip(f, nil, b.Cfg.TooltipMaxRows)
			continue
		}

		for _, d := range res.Definitions {
			id := f + "::" + d.Name
			g.AddNode(&graph.Node{
				ID:    id,
				Kind:  graph.KindDefinition,
				Label: d.Name,
				Group: g.Node(f).Group,
				Size:  scopeDefinitionSize,
				Title: fmt.Sprintf("<b>%s</b><br><pre>%s</pre>", htmlEscape(d.Name), htmlEscape(d.Signature)),
				Calls: d.Calls,
			})
			g.AddEdge(&graph.Edge{From: f, To: id, Kind: graph.EdgeDefines, Color: "#61afef", Width: 2})
			defs = append(defs, scopeDef{id: id, file: f, calls: d.Calls})
		}
		g.Node(f).Title = fileTooltip(f, res.Definitions, b.Cfg.TooltipMaxRows)
	}

	linkCalls(g, defs)

	report(cb, len(files), len(files), "scope graph complete")
	slog.Info("scope.built", "files", len(files), "nodes", g.Len(), "edges", len(g.Edges))

	positions := layout.Spring(g, layout.InteractiveIterations)
	full := &store.Snapshot{
		Root:      root,
		Graph:     g,
		Positions: positions,
		// Always pre-rasterized: the static-fallback path must have an
		// image ready even for small scope graphs.
		StaticImage: raster.Generate(g, graphName(store.Scope, store.Full), b.Cfg.GraphsDir(), positions),
	}
	if err := b.Store.Save(store.Scope, store.Full, full); err != nil {
		return err
	}

	simple := g.Subgraph(files)
	return b.Store.Save(store.Scope, store.Simple, &store.Snapshot{Root: root, Graph: simple})
}

// linkCalls adds heuristic call edges. A called name resolves to a
// definition in the caller's own file when one exists, otherwise to the
// first definition registered under that name. Unmatched names and
// self-calls are skipped.
func linkCalls(g *graph.Graph, defs []scopeDef) {
	byName := make(map[string][]string)
	for _, d := range defs {
		name := d.id[strings.LastIndex(d.id, "::")+2:]
		byName[name] = append(byName[name], d.id)
	}

	for _, d := range defs {
		for _, called := range d.calls {
			candidates := byName[called]
			if len(candidates) == 0 {
				continue
			}
			target := candidates[0]
			for _, c := range candidates {
				if strings.HasPrefix(c, d.file+"::") {
					target = c
					break
				}
			}
			if target == d.id {
				continue
			}
			g.AddEdge(&graph.Edge{From: d.id, To: target, Kind: graph.EdgeCalls, Color: "#e5c07b"})
		}
	}
}

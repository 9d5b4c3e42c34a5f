// Package render decides how a graph snapshot is presented: fully
// interactive, as a pre-rendered static image, or interactively with
// progressive chunked delivery of the long tail.
package render

import (
	"log/slog"

	"github.com/mkoster/codeatlas/internal/config"
	"github.com/mkoster/codeatlas/internal/graph"
	"github.com/mkoster/codeatlas/internal/store"
)

// interactiveCeiling is the node count at or below which interactive mode
// is forced regardless of the requested tier. Tooltips only earn their
// keep at small scale.
const interactiveCeiling = 50

type Mode string

const (
	Interactive Mode = "interactive"
	Static      Mode = "static"
)

// Plan is the outcome of strategy selection for one load request. In
// static mode only StaticImage is set. In interactive mode Nodes/Edges
// hold the initial paint; Stream is non-nil when the remainder is to be
// delivered progressively.
type Plan struct {
	Mode        Mode
	StaticImage string
	Nodes       []*graph.Node
	Edges       []*graph.Edge
	Stream      *Stream
}

// Select applies the render-strategy decision to a loaded snapshot.
// fullDetail distinguishes a full-tier request from a simple-tier one;
// only full-detail loads are ever chunked.
func Select(snap *store.Snapshot, tier store.Tier, fullDetail bool, cfg *config.Config) *Plan {
	g := snap.Graph
	n := g.Len()

	switch {
	case n > 0 && n <= interactiveCeiling:
		// Small enough to always animate; drop any stale raster pointer.
		snap.StaticImage = ""
	case tier == store.Full && snap.StaticImage != "":
		slog.Info("render.static", "nodes", n, "image", snap.StaticImage)
		return &Plan{Mode: Static, StaticImage: snap.StaticImage}
	}

	if fullDetail && n > cfg.InitialLoadSize {
		sorted := make([]*graph.Node, 0, n)
		for _, id := range g.SortedByDegree() {
			sorted = append(sorted, g.Node(id))
		}
		initial := sorted[:cfg.InitialLoadSize]
		plan := &Plan{
			Mode:   Interactive,
			Nodes:  initial,
			Edges:  inducedEdges(g, initial),
			Stream: newStream(g, initial, sorted[cfg.InitialLoadSize:], cfg.ChunkSize),
		}
		slog.Info("render.progressive", "nodes", n, "initial", len(initial), "chunk_size", cfg.ChunkSize)
		return plan
	}

	return &Plan{Mode: Interactive, Nodes: g.Nodes, Edges: g.Edges}
}

// inducedEdges returns the edges of g with both endpoints in nodes.
func inducedEdges(g *graph.Graph, nodes []*graph.Node) []*graph.Edge {
	in := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		in[n.ID] = true
	}
	var edges []*graph.Edge
	for _, e := range g.Edges {
		if in[e.From] && in[e.To] {
			edges = append(edges, e)
		}
	}
	return edges
}

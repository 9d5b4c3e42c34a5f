// Package layout computes force-directed 2-D positions for graph nodes.
// The repulsion constant shrinks with sqrt(node count) so dense graphs
// spread instead of collapsing into one cluster.
package layout

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/mkoster/codeatlas/internal/graph"
)

const (
	// InteractiveIterations is the default pass count for layouts that
	// accompany interactive graphs.
	InteractiveIterations = 40
	// StaticIterations is used when rendering a raster image; that path
	// runs once per build so it can afford more passes.
	StaticIterations = 60

	seed           = 42
	repulsionScale = 10.0
)

// Point is a 2-D node position.
type Point struct {
	X float64
	Y float64
}

// Positions maps node id to its computed position.
type Positions map[string]Point

// Spring computes a force-directed layout for g with a fixed seed. The
// node/edge topology fully determines the result.
func Spring(g *graph.Graph, iterations int) Positions {
	pos := make(Positions, g.Len())
	if g.Len() == 0 {
		return pos
	}
	if iterations < 1 {
		iterations = InteractiveIterations
	}

	dg := simple.NewDirectedGraph()
	ids := make(map[string]int64, g.Len())
	for i, n := range g.Nodes {
		id := int64(i)
		ids[n.ID] = id
		dg.AddNode(simple.Node(id))
	}
	for _, e := range g.Edges {
		from, to := ids[e.From], ids[e.To]
		if from == to {
			continue
		}
		dg.SetEdge(dg.NewEdge(simple.Node(from), simple.Node(to)))
	}

	eades := layout.EadesR2{
		Updates:   iterations * g.Len(),
		Repulsion: repulsionScale / math.Sqrt(float64(g.Len())),
		Rate:      0.05,
		Theta:     0.1,
		Src:       rand.NewSource(seed),
	}
	opt := layout.NewOptimizerR2(dg, eades.Update)
	for opt.Update() {
	}

	for _, n := range g.Nodes {
		c := opt.Coord2(ids[n.ID])
		pos[n.ID] = Point{X: c.X, Y: c.Y}
	}
	return pos
}

// Normalized rescales positions into the unit square, preserving aspect.
// Rasterization maps these onto the canvas.
func Normalized(pos Positions) Positions {
	if len(pos) == 0 {
		return pos
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pos {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	out := make(Positions, len(pos))
	for id, p := range pos {
		out[id] = Point{X: (p.X - minX) / span, Y: (p.Y - minY) / span}
	}
	return out
}

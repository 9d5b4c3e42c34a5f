// Package graph holds the directed graph model shared by the structural,
// dependency, and scope builders. Nodes keep insertion order so degree
// sorts and candidate picks are reproducible across rebuilds.
package graph

import "sort"

// Node kinds.
const (
	KindFile       = "file"
	KindDir        = "dir"
	KindDefinition = "definition"
)

// Edge kinds.
const (
	EdgeContains   = "contains"
	EdgeInclude    = "include"
	EdgeDependency = "dependency"
	EdgeDefines    = "defines"
	EdgeCalls      = "calls"
)

// Node is a graph node. File and directory nodes are keyed by
// slash-normalized project-relative path; definition nodes by "path::name".
type Node struct {
	ID    string
	Kind  string
	Label string
	Group string
	Size  float64
	// Title is the HTML tooltip shown by the interactive front-end.
	Title string
	// Calls records raw callee names for definition nodes.
	Calls []string
}

// Edge is a directed edge. Style "dashed" is the only style hint in use.
type Edge struct {
	From  string
	To    string
	Kind  string
	Style string
	Color string
	Width float64
}

// Graph is a directed graph with string node ids. All exported fields are
// gob-encodable; the lookup indexes are rebuilt lazily after decode.
type Graph struct {
	Nodes []*Node
	Edges []*Edge

	index     map[string]int
	edgeIndex map[string]int
	out       map[string][]string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

func edgeKey(from, to string) string {
	return from + "\x00" + to
}

func (g *Graph) reindex() {
	g.index = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		g.index[n.ID] = i
	}
	g.edgeIndex = make(map[string]int, len(g.Edges))
	g.out = make(map[string][]string)
	for i, e := range g.Edges {
		g.edgeIndex[edgeKey(e.From, e.To)] = i
		g.out[e.From] = append(g.out[e.From], e.To)
	}
}

func (g *Graph) ensureIndex() {
	if g.index == nil {
		g.reindex()
	}
}

// Len returns the node count.
func (g *Graph) Len() int { return len(g.Nodes) }

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	g.ensureIndex()
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.Nodes[i]
}

// HasNode reports whether id exists in the graph.
func (g *Graph) HasNode(id string) bool { return g.Node(id) != nil }

// AddNode inserts a node. If the id already exists the stored node is
// replaced in place and insertion order is preserved.
func (g *Graph) AddNode(n *Node) {
	g.ensureIndex()
	if i, ok := g.index[n.ID]; ok {
		g.Nodes[i] = n
		return
	}
	g.index[n.ID] = len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
}

// AddEdge inserts a directed edge. Both endpoints must already exist;
// edges to unknown nodes are dropped. Repeated (from, to) pairs replace
// the stored edge rather than multiplying.
func (g *Graph) AddEdge(e *Edge) bool {
	g.ensureIndex()
	if _, ok := g.index[e.From]; !ok {
		return false
	}
	if _, ok := g.index[e.To]; !ok {
		return false
	}
	key := edgeKey(e.From, e.To)
	if i, ok := g.edgeIndex[key]; ok {
		g.Edges[i] = e
		return true
	}
	g.edgeIndex[key] = len(g.Edges)
	g.Edges = append(g.Edges, e)
	g.out[e.From] = append(g.out[e.From], e.To)
	return true
}

// HasEdge reports whether a directed edge from → to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.ensureIndex()
	_, ok := g.edgeIndex[edgeKey(from, to)]
	return ok
}

// Edge returns the edge from → to, or nil.
func (g *Graph) Edge(from, to string) *Edge {
	g.ensureIndex()
	i, ok := g.edgeIndex[edgeKey(from, to)]
	if !ok {
		return nil
	}
	return g.Edges[i]
}

// ClearEdges removes every edge, keeping all nodes.
func (g *Graph) ClearEdges() {
	g.Edges = nil
	g.edgeIndex = map[string]int{}
	g.out = map[string][]string{}
	if g.index == nil {
		g.reindex()
	}
}

// Degrees returns total degree (in + out) per node id.
func (g *Graph) Degrees() map[string]int {
	deg := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		deg[n.ID] = 0
	}
	for _, e := range g.Edges {
		deg[e.From]++
		deg[e.To]++
	}
	return deg
}

// TopByDegree returns up to limit node ids sorted by degree descending,
// ties broken by node insertion order.
func (g *Graph) TopByDegree(limit int) []string {
	ids := g.SortedByDegree()
	if limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}

// SortedByDegree returns every node id sorted by degree descending with a
// stable tie-break on insertion order.
func (g *Graph) SortedByDegree() []string {
	deg := g.Degrees()
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return deg[ids[i]] > deg[ids[j]]
	})
	return ids
}

// Subgraph returns the subgraph induced by keep: the kept nodes plus every
// edge of g whose endpoints are both kept. Nodes and edges are shared, not
// copied; insertion order follows g.
func (g *Graph) Subgraph(keep []string) *Graph {
	kept := make(map[string]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}
	sub := New()
	for _, n := range g.Nodes {
		if kept[n.ID] {
			sub.AddNode(n)
		}
	}
	for _, e := range g.Edges {
		if kept[e.From] && kept[e.To] {
			sub.AddEdge(e)
		}
	}
	return sub
}

// Successors returns the out-neighbors of id in edge insertion order.
func (g *Graph) Successors(id string) []string {
	g.ensureIndex()
	return g.out[id]
}

// HasPath reports whether any directed path from → to of length >= 1
// exists.
func (g *Graph) HasPath(from, to string) bool {
	g.ensureIndex()
	if _, ok := g.index[from]; !ok {
		return false
	}
	if _, ok := g.index[to]; !ok {
		return false
	}
	seen := map[string]bool{}
	queue := append([]string(nil), g.out[from]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		queue = append(queue, g.out[cur]...)
	}
	return false
}

package render

import (
	"sync/atomic"

	"github.com/mkoster/codeatlas/internal/graph"
)

// Stream yields the degree-ordered remainder of a progressively loaded
// graph in fixed-size chunks. Each chunk carries its own nodes plus every
// edge connecting a new node to anything already displayed. Streams are
// single-consumer and not safe for concurrent use.
type Stream struct {
	g         *graph.Graph
	displayed map[string]bool
	pending   []*graph.Node
	chunkSize int
	sent      int
	total     int
}

func newStream(g *graph.Graph, initial, pending []*graph.Node, chunkSize int) *Stream {
	displayed := make(map[string]bool, len(initial))
	for _, n := range initial {
		displayed[n.ID] = true
	}
	return &Stream{
		g:         g,
		displayed: displayed,
		pending:   pending,
		chunkSize: chunkSize,
		total:     len(pending),
	}
}

// Chunk is one progressive-delivery increment plus its progress counters.
type Chunk struct {
	Nodes   []*graph.Node
	Edges   []*graph.Edge
	Current int
	Total   int
}

// Next returns the next chunk, or ok=false once the remainder is
// exhausted.
func (s *Stream) Next() (chunk *Chunk, ok bool) {
	if len(s.pending) == 0 {
		return nil, false
	}

	size := s.chunkSize
	if size > len(s.pending) {
		size = len(s.pending)
	}
	nodes := s.pending[:size]
	s.pending = s.pending[size:]

	fresh := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		s.displayed[n.ID] = true
		fresh[n.ID] = true
	}

	var edges []*graph.Edge
	for _, e := range s.g.Edges {
		if !fresh[e.From] && !fresh[e.To] {
			continue
		}
		if s.displayed[e.From] && s.displayed[e.To] {
			edges = append(edges, e)
		}
	}

	s.sent += size
	return &Chunk{Nodes: nodes, Edges: edges, Current: s.sent, Total: s.total}, true
}

// Remaining reports how many nodes have not been emitted yet.
func (s *Stream) Remaining() int { return len(s.pending) }

// Generations hands out monotonically increasing render generations.
// Chunks produced for a generation that is no longer current must be
// dropped, never displayed over a newer graph.
type Generations struct {
	n atomic.Uint64
}

// Next activates a new generation and returns its id.
func (g *Generations) Next() uint64 { return g.n.Add(1) }

// Current reports whether gen is still the active generation.
func (g *Generations) Current(gen uint64) bool { return g.n.Load() == gen }

package graph

import (
	"bytes"
	"encoding/gob"
	"testing"
)

func fileNode(id string) *Node {
	return &Node{ID: id, Kind: KindFile, Label: id}
}

func TestAddEdgeRequiresEndpoints(t *testing.T) {
	g := New()
	g.AddNode(fileNode("a.py"))

	if g.AddEdge(&Edge{From: "a.py", To: "missing", Kind: EdgeInclude}) {
		t.Fatal("edge to unknown node should be dropped")
	}
	g.AddNode(fileNode("b.py"))
	if !g.AddEdge(&Edge{From: "a.py", To: "b.py", Kind: EdgeInclude}) {
		t.Fatal("edge between known nodes should be accepted")
	}
	if !g.HasEdge("a.py", "b.py") {
		t.Fatal("expected edge a.py -> b.py")
	}
}

func TestAddEdgeIdempotent(t *testing.T) {
	g := New()
	g.AddNode(fileNode("a.py"))
	g.AddNode(fileNode("b.py"))

	g.AddEdge(&Edge{From: "a.py", To: "b.py", Kind: EdgeInclude})
	g.AddEdge(&Edge{From: "a.py", To: "b.py", Kind: EdgeInclude})

	if len(g.Edges) != 1 {
		t.Fatalf("expected 1 edge after duplicate add, got %d", len(g.Edges))
	}
}

func TestSubgraphInduced(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(fileNode(id))
	}
	g.AddEdge(&Edge{From: "a", To: "b", Kind: EdgeInclude})
	g.AddEdge(&Edge{From: "b", To: "c", Kind: EdgeInclude})
	g.AddEdge(&Edge{From: "a", To: "c", Kind: EdgeInclude})

	sub := g.Subgraph([]string{"a", "b"})
	if sub.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", sub.Len())
	}
	if !sub.HasEdge("a", "b") {
		t.Fatal("induced edge a->b missing")
	}
	if sub.HasEdge("b", "c") || sub.HasEdge("a", "c") {
		t.Fatal("subgraph contains edges with excluded endpoints")
	}
	// Every simple-tier edge must also exist in the full graph.
	for _, e := range sub.Edges {
		if !g.HasEdge(e.From, e.To) {
			t.Fatalf("edge %s->%s not present in full graph", e.From, e.To)
		}
	}
}

func TestHasPath(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddNode(fileNode(id))
	}
	g.AddEdge(&Edge{From: "a", To: "b", Kind: EdgeInclude})
	g.AddEdge(&Edge{From: "b", To: "c", Kind: EdgeInclude})

	if !g.HasPath("a", "c") {
		t.Fatal("expected transitive path a->c")
	}
	if g.HasPath("c", "a") {
		t.Fatal("unexpected reverse path c->a")
	}
	if g.HasPath("a", "d") {
		t.Fatal("unexpected path to isolated node")
	}
	if g.HasPath("a", "a") {
		t.Fatal("no self path without a cycle")
	}
}

func TestSortedByDegreeStable(t *testing.T) {
	g := New()
	for _, id := range []string{"hub", "x", "y", "z"} {
		g.AddNode(fileNode(id))
	}
	g.AddEdge(&Edge{From: "hub", To: "x", Kind: EdgeInclude})
	g.AddEdge(&Edge{From: "hub", To: "y", Kind: EdgeInclude})

	ids := g.SortedByDegree()
	if ids[0] != "hub" {
		t.Fatalf("expected hub first, got %s", ids[0])
	}
	// x and y tie at degree 1, z at 0; insertion order must hold.
	if ids[1] != "x" || ids[2] != "y" || ids[3] != "z" {
		t.Fatalf("tie-break not stable: %v", ids)
	}
}

func TestGobRoundTrip(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "src/a.py", Kind: KindFile, Label: "a.py", Group: "src", Size: 12})
	g.AddNode(&Node{ID: "src/a.py::main", Kind: KindDefinition, Label: "main", Calls: []string{"helper"}})
	g.AddEdge(&Edge{From: "src/a.py", To: "src/a.py::main", Kind: EdgeDefines})

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		t.Fatal(err)
	}
	var got Graph
	if err := gob.NewDecoder(&buf).Decode(&got); err != nil {
		t.Fatal(err)
	}
	// Indexes rebuild lazily; lookups must work post-decode.
	if !got.HasEdge("src/a.py", "src/a.py::main") {
		t.Fatal("edge lost in gob round trip")
	}
	n := got.Node("src/a.py::main")
	if n == nil || len(n.Calls) != 1 || n.Calls[0] != "helper" {
		t.Fatalf("definition node not restored: %+v", n)
	}
}

func TestApplyVisualStyles(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "src/hub.c", Kind: KindFile})
	g.AddNode(&Node{ID: "src/leaf.c", Kind: KindFile})
	g.AddNode(&Node{ID: "other.c", Kind: KindFile})
	g.AddEdge(&Edge{From: "src/hub.c", To: "src/leaf.c", Kind: EdgeInclude})
	g.AddEdge(&Edge{From: "src/hub.c", To: "other.c", Kind: EdgeInclude})

	ApplyVisualStyles(g)

	if got := g.Node("src/hub.c").Group; got != "src" {
		t.Fatalf("group = %q, want src", got)
	}
	if got := g.Node("other.c").Group; got != "Root" {
		t.Fatalf("root-level group = %q, want Root", got)
	}
	hub := g.Node("src/hub.c").Size
	leaf := g.Node("src/leaf.c").Size
	if hub != 50 {
		t.Fatalf("max-degree size = %v, want 50", hub)
	}
	if leaf >= hub || leaf < 5 {
		t.Fatalf("leaf size %v out of range", leaf)
	}
}

func TestApplyVisualStylesUniformDegree(t *testing.T) {
	g := New()
	g.AddNode(fileNode("a"))
	g.AddNode(fileNode("b"))
	ApplyVisualStyles(g)
	for _, n := range g.Nodes {
		if n.Size != 27.5 {
			t.Fatalf("uniform-degree size = %v, want midpoint 27.5", n.Size)
		}
	}
}

func TestGroupForDefinition(t *testing.T) {
	if got := GroupFor("src/a.py::main"); got != "src/a.py" {
		t.Fatalf("GroupFor definition = %q", got)
	}
}

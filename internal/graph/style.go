package graph

import (
	"path"
	"strings"
)

const (
	sizeBase  = 5.0
	sizeRange = 45.0
)

// GroupFor derives the visual cluster for a node id: the owning file for
// definition ids, else the parent directory, else "Root".
func GroupFor(id string) string {
	if i := strings.Index(id, "::"); i >= 0 {
		return id[:i]
	}
	dir := path.Dir(id)
	if dir == "." || dir == "" {
		return "Root"
	}
	return dir
}

// ApplyVisualStyles annotates every node in place with a group (parent
// directory, for cluster coloring) and a size scaled linearly from degree
// into [5, 50]. When all degrees are equal every node lands on the range
// midpoint. Shared by all three graph kinds.
func ApplyVisualStyles(g *Graph) {
	if g.Len() == 0 {
		return
	}
	deg := g.Degrees()
	minDeg, maxDeg := -1, -1
	for _, d := range deg {
		if minDeg < 0 || d < minDeg {
			minDeg = d
		}
		if d > maxDeg {
			maxDeg = d
		}
	}
	for _, n := range g.Nodes {
		n.Group = GroupFor(n.ID)
		if maxDeg > minDeg {
			norm := float64(deg[n.ID]-minDeg) / float64(maxDeg-minDeg)
			n.Size = sizeBase + norm*sizeRange
		} else {
			n.Size = sizeBase + sizeRange/2
		}
	}
}

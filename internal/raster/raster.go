// Package raster renders a graph to a static PNG: the non-interactive
// fallback for graphs too large to animate. Rendering failures degrade to
// an empty path; the caller simply proceeds without a static image.
package raster

import (
	"fmt"
	"image/color"
	"log/slog"
	"path"
	"path/filepath"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/mkoster/codeatlas/internal/graph"
	"github.com/mkoster/codeatlas/internal/layout"
)

const (
	canvasSize = 6000
	margin     = 200.0
	edgeAlpha  = 0.35
	labelAlpha = 0.85
)

// palette holds the group colors; groups wrap around when there are more
// groups than entries.
var palette = []color.NRGBA{
	{R: 0x61, G: 0xaf, B: 0xef, A: 0xff},
	{R: 0xe0, G: 0x6c, B: 0x75, A: 0xff},
	{R: 0x98, G: 0xc3, B: 0x79, A: 0xff},
	{R: 0xe5, G: 0xc0, B: 0x7b, A: 0xff},
	{R: 0xc6, G: 0x78, B: 0xdd, A: 0xff},
	{R: 0x56, G: 0xb6, B: 0xc2, A: 0xff},
	{R: 0xd1, G: 0x9a, B: 0x66, A: 0xff},
	{R: 0xab, G: 0xb2, B: 0xbf, A: 0xff},
	{R: 0x7f, G: 0x84, B: 0x8e, A: 0xff},
	{R: 0x8c, G: 0xcc, B: 0xa4, A: 0xff},
	{R: 0xbe, G: 0x89, B: 0x5f, A: 0xff},
	{R: 0x6a, G: 0x8f, B: 0xd8, A: 0xff},
}

// ImagePath returns the deterministic raster location for a graph name.
func ImagePath(outputDir, graphName string) string {
	return filepath.Join(outputDir, fmt.Sprintf("static_%s.png", graphName))
}

// groupColors assigns palette entries over the sorted group set so the
// same groups always get the same colors.
func groupColors(g *graph.Graph) map[string]color.NRGBA {
	groups := map[string]bool{}
	for _, n := range g.Nodes {
		groups[n.Group] = true
	}
	sorted := make([]string, 0, len(groups))
	for grp := range groups {
		sorted = append(sorted, grp)
	}
	sort.Strings(sorted)

	colors := make(map[string]color.NRGBA, len(sorted))
	for i, grp := range sorted {
		colors[grp] = palette[i%len(palette)]
	}
	return colors
}

// Generate renders g into outputDir and returns the image path. A nil
// fixedPos computes a fresh layout at the static iteration count;
// builders that already own a layout pass it through so repeated renders
// stay consistent. Any failure returns "".
func Generate(g *graph.Graph, graphName, outputDir string, fixedPos layout.Positions) (imagePath string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("raster.render_panic", "graph", graphName, "err", r)
			imagePath = ""
		}
	}()

	if g == nil || g.Len() == 0 {
		return ""
	}
	slog.Info("raster.render", "graph", graphName, "nodes", g.Len())

	pos := fixedPos
	if pos == nil {
		pos = layout.Spring(g, layout.StaticIterations)
	}
	pos = layout.Normalized(pos)

	dc := gg.NewContext(canvasSize, canvasSize)
	dc.SetRGB(0.10, 0.11, 0.13)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	scale := float64(canvasSize) - 2*margin
	at := func(id string) (float64, float64, bool) {
		p, ok := pos[id]
		if !ok {
			return 0, 0, false
		}
		return margin + p.X*scale, margin + p.Y*scale, true
	}

	// Edges first, underneath the nodes.
	dc.SetLineWidth(1)
	for _, e := range g.Edges {
		x1, y1, ok1 := at(e.From)
		x2, y2, ok2 := at(e.To)
		if !ok1 || !ok2 {
			continue
		}
		dc.SetRGBA(0.6, 0.6, 0.6, edgeAlpha)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	colors := groupColors(g)
	for _, n := range g.Nodes {
		x, y, ok := at(n.ID)
		if !ok {
			continue
		}
		c := colors[n.Group]
		size := n.Size
		if size <= 0 {
			size = 5
		}
		dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, 0.9)
		dc.DrawCircle(x, y, size/2)
		dc.Fill()

		dc.SetRGBA(0.88, 0.88, 0.88, labelAlpha)
		dc.DrawStringAnchored(path.Base(n.ID), x, y+size/2+8, 0.5, 0.5)
	}

	dc.SetRGBA(0.4, 0.4, 0.4, 1)
	dc.DrawString(fmt.Sprintf("%s (%d nodes)", graphName, g.Len()), margin/2, margin/2)

	out := ImagePath(outputDir, graphName)
	if err := dc.SavePNG(out); err != nil {
		slog.Error("raster.save_failed", "graph", graphName, "err", err)
		return ""
	}
	return out
}

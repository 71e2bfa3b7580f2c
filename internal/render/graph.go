package render

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/shynneri-source/markdocx/internal/geometry"
)

const (
	graphWidth  = 800
	graphHeight = 600
	nodeRadius  = 26.0
)

// graphPNG draws nodes on a circle with straight edges between them.
// Directed graphs get arrowheads clipped to the node boundary; edge labels
// sit at the midpoint over a white backing box.
func graphPNG(s *geometry.GraphSpec) ([]byte, error) {
	if len(s.Nodes) == 0 {
		return nil, ErrEmptySpec
	}

	dc := newCanvas(graphWidth, graphHeight)

	dc.SetHexColor("#000000")
	if s.Title != "" {
		dc.DrawStringAnchored(s.Title, graphWidth/2, 24, 0.5, 0.5)
	}

	pos := circularLayout(s.Nodes)

	for _, e := range s.Edges {
		from, okF := pos[e.From]
		to, okT := pos[e.To]
		if !okF || !okT {
			continue
		}
		x1, y1 := trimToCircle(from, to)
		x2, y2 := trimToCircle(to, from)
		if s.Directed {
			drawArrow(dc, x1, y1, x2, y2, "#555555")
		} else {
			dc.SetHexColor("#555555")
			dc.SetLineWidth(2)
			dc.DrawLine(x1, y1, x2, y2)
			dc.Stroke()
		}
		if e.Label != "" {
			drawEdgeLabel(dc, e.Label, (from.x+to.x)/2, (from.y+to.y)/2)
		}
	}

	for i, name := range s.Nodes {
		p := pos[name]
		dc.SetHexColor(paletteColor(i))
		dc.DrawCircle(p.x, p.y, nodeRadius)
		dc.Fill()
		dc.SetHexColor("#FFFFFF")
		dc.DrawStringAnchored(name, p.x, p.y, 0.5, 0.5)
	}

	return encode(dc)
}

type point struct{ x, y float64 }

// circularLayout places nodes evenly on a circle, first node at twelve
// o'clock, proceeding clockwise in declaration order.
func circularLayout(nodes []string) map[string]point {
	cx, cy := float64(graphWidth)/2, float64(graphHeight)/2+10
	radius := math.Min(graphWidth, graphHeight)/2 - 80.0
	if len(nodes) == 1 {
		return map[string]point{nodes[0]: {cx, cy}}
	}

	pos := make(map[string]point, len(nodes))
	for i, name := range nodes {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(len(nodes))
		pos[name] = point{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)}
	}
	return pos
}

// trimToCircle moves the endpoint at from toward to by the node radius so
// edges start and end at circle boundaries.
func trimToCircle(from, to point) (float64, float64) {
	dx, dy := to.x-from.x, to.y-from.y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return from.x, from.y
	}
	return from.x + dx/dist*nodeRadius, from.y + dy/dist*nodeRadius
}

func drawEdgeLabel(dc *gg.Context, label string, x, y float64) {
	w, h := dc.MeasureString(label)
	dc.SetHexColor("#FFFFFF")
	dc.DrawRectangle(x-w/2-3, y-h/2-2, w+6, h+4)
	dc.Fill()
	dc.SetHexColor("#CC0000")
	dc.DrawStringAnchored(label, x, y, 0.5, 0.5)
}

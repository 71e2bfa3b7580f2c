package render

import (
	"github.com/fogleman/gg"

	"github.com/shynneri-source/markdocx/internal/geometry"
)

const (
	stepW      = 220.0
	stepH      = 64.0
	stepGap    = 56.0
	wfMargin   = 60.0
	maxPerRow  = 4
	lineHeight = 15.0
)

// workflowPNG draws the step sequence as a flowchart. Vertical direction is
// a single centered column; horizontal lays steps out in zigzag rows of at
// most four, alternating left-to-right and right-to-left so consecutive
// steps stay adjacent.
func workflowPNG(s *geometry.WorkflowSpec) ([]byte, error) {
	n := len(s.Steps)
	if n == 0 {
		return nil, ErrEmptySpec
	}

	vertical := s.Direction != geometry.DirectionHorizontal

	var width, height int
	var positions []point
	if vertical {
		width = int(stepW + 2*wfMargin + 120)
		height = int(wfMargin*2 + float64(n)*stepH + float64(n-1)*stepGap + 30)
		cx := float64(width) / 2
		for i := 0; i < n; i++ {
			y := wfMargin + 30 + float64(i)*(stepH+stepGap) + stepH/2
			positions = append(positions, point{cx, y})
		}
	} else {
		cols := n
		if cols > maxPerRow {
			cols = (n + 1) / 2
			if cols > maxPerRow {
				cols = maxPerRow
			}
		}
		rows := (n + cols - 1) / cols
		width = int(wfMargin*2 + float64(cols)*stepW + float64(cols-1)*60)
		height = int(wfMargin*2 + float64(rows)*stepH + float64(rows-1)*stepGap + 30)
		for i := 0; i < n; i++ {
			row := i / cols
			col := i % cols
			if row%2 == 1 {
				col = cols - 1 - col
			}
			x := wfMargin + float64(col)*(stepW+60) + stepW/2
			y := wfMargin + 30 + float64(row)*(stepH+stepGap) + stepH/2
			positions = append(positions, point{x, y})
		}
	}

	dc := newCanvas(width, height)

	dc.SetHexColor("#000000")
	if s.Title != "" {
		dc.DrawStringAnchored(s.Title, float64(width)/2, 24, 0.5, 0.5)
	}

	for i := 0; i < n-1; i++ {
		drawStepArrow(dc, positions[i], positions[i+1])
	}
	for i, step := range s.Steps {
		drawStep(dc, step, positions[i], i == 0, i == n-1)
	}

	return encode(dc)
}

// stepColors returns fill and text colors for a step. Terminals split by
// position: the opening terminal is green, a closing one red.
func stepColors(step geometry.Step, first, last bool) (string, string) {
	switch step.Shape {
	case geometry.ShapeTerminal:
		if last && !first {
			return "#EA4335", "#FFFFFF"
		}
		return "#34A853", "#FFFFFF"
	case geometry.ShapeDecision:
		return "#FBBC04", "#000000"
	case geometry.ShapeIO:
		return "#7B61FF", "#FFFFFF"
	default:
		return "#4285F4", "#FFFFFF"
	}
}

func drawStep(dc *gg.Context, step geometry.Step, p point, first, last bool) {
	fill, text := stepColors(step, first, last)
	dc.SetHexColor(fill)

	switch step.Shape {
	case geometry.ShapeDecision:
		dc.MoveTo(p.x, p.y-stepH*0.75)
		dc.LineTo(p.x+stepW*0.45, p.y)
		dc.LineTo(p.x, p.y+stepH*0.75)
		dc.LineTo(p.x-stepW*0.45, p.y)
		dc.ClosePath()
	case geometry.ShapeIO:
		const skew = 18.0
		dc.MoveTo(p.x-stepW/2+skew, p.y-stepH/2)
		dc.LineTo(p.x+stepW/2+skew, p.y-stepH/2)
		dc.LineTo(p.x+stepW/2-skew, p.y+stepH/2)
		dc.LineTo(p.x-stepW/2-skew, p.y+stepH/2)
		dc.ClosePath()
	case geometry.ShapeTerminal:
		dc.DrawRoundedRectangle(p.x-stepW/2, p.y-stepH/2, stepW, stepH, stepH/2)
	default:
		dc.DrawRectangle(p.x-stepW/2, p.y-stepH/2, stepW, stepH)
	}
	dc.FillPreserve()
	dc.SetHexColor("#333333")
	dc.SetLineWidth(1.5)
	dc.Stroke()

	dc.SetHexColor(text)
	lines := dc.WordWrap(step.Text, stepW-30)
	if len(lines) > 3 {
		lines = lines[:3]
	}
	drawCenteredLines(dc, lines, p.x, p.y, lineHeight)
}

// drawStepArrow connects two step centers, stopping short of the shapes.
func drawStepArrow(dc *gg.Context, from, to point) {
	x1, y1 := from.x, from.y
	x2, y2 := to.x, to.y
	switch {
	case y2 > y1+1: // downward
		y1 += stepH/2 + 4
		y2 -= stepH/2 + 6
	case x2 > x1+1: // rightward
		x1 += stepW/2 + 4
		x2 -= stepW/2 + 6
	case x2 < x1-1: // leftward
		x1 -= stepW/2 + 4
		x2 += stepW/2 + 6
	}
	drawArrow(dc, x1, y1, x2, y2, "#555555")
}

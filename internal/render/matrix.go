package render

import (
	"github.com/shynneri-source/markdocx/internal/geometry"
)

// matrixPNG draws a bracketed grid of cell values, with the matrix name and
// an equals sign on the left when present.
func matrixPNG(s *geometry.MatrixSpec) ([]byte, error) {
	rows := len(s.Rows)
	cols := s.Cols()
	if rows == 0 || cols == 0 {
		return nil, ErrEmptySpec
	}

	const (
		cellW   = 90.0
		cellH   = 42.0
		bracket = 14.0
		margin  = 30.0
	)

	nameW := 0.0
	if s.Name != "" {
		nameW = float64(len(s.Name))*9 + 40
	}

	width := int(margin*2 + nameW + bracket*2 + float64(cols)*cellW)
	height := int(margin*2 + float64(rows)*cellH)
	dc := newCanvas(width, height)

	left := margin + nameW
	top := margin
	bottom := top + float64(rows)*cellH
	right := left + bracket*2 + float64(cols)*cellW

	dc.SetHexColor("#000000")
	if s.Name != "" {
		dc.DrawStringAnchored(s.Name+" =", margin+nameW/2-10, (top+bottom)/2, 0.5, 0.5)
	}

	// Square brackets: a vertical stroke with short horizontal ticks.
	dc.SetLineWidth(2)
	dc.DrawLine(left, top, left, bottom)
	dc.DrawLine(left, top, left+bracket*0.7, top)
	dc.DrawLine(left, bottom, left+bracket*0.7, bottom)
	dc.DrawLine(right, top, right, bottom)
	dc.DrawLine(right, top, right-bracket*0.7, top)
	dc.DrawLine(right, bottom, right-bracket*0.7, bottom)
	dc.Stroke()

	for r, row := range s.Rows {
		for c, cell := range row {
			x := left + bracket + (float64(c)+0.5)*cellW
			y := top + (float64(r)+0.5)*cellH
			dc.DrawStringAnchored(cell, x, y, 0.5, 0.5)
		}
	}

	return encode(dc)
}

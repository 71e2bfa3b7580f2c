// Package render rasterizes geometry specs into PNG images for embedding
// in the DOCX output. Drawing is done with gg on a fixed pixel grid; the
// bitmap font keeps the renderer free of external font files.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/shynneri-source/markdocx/internal/geometry"
)

// ErrEmptySpec marks a spec with nothing to draw.
var ErrEmptySpec = errors.New("render: empty spec")

// palette cycles through series, node, and bar colors.
var palette = []string{
	"#4285F4", "#EA4335", "#FBBC04", "#34A853",
	"#FF6D01", "#46BDC6", "#7B61FF", "#F538A0",
	"#185ABC", "#B31412", "#E37400", "#0D652D",
}

func paletteColor(i int) string {
	return palette[i%len(palette)]
}

// PNG renders a diagram spec to a PNG image.
func PNG(spec geometry.Spec) ([]byte, error) {
	if spec == nil {
		return nil, ErrEmptySpec
	}
	switch s := spec.(type) {
	case *geometry.MatrixSpec:
		return matrixPNG(s)
	case *geometry.ChartSpec:
		return chartPNG(s)
	case *geometry.GraphSpec:
		return graphPNG(s)
	case *geometry.WorkflowSpec:
		return workflowPNG(s)
	default:
		return nil, fmt.Errorf("render: unsupported spec %T", spec)
	}
}

// newCanvas creates a white drawing context.
func newCanvas(w, h int) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetHexColor("#FFFFFF")
	dc.Clear()
	return dc
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawArrow draws a line from (x1,y1) to (x2,y2) with a filled arrowhead
// at the destination.
func drawArrow(dc *gg.Context, x1, y1, x2, y2 float64, color string) {
	dc.SetHexColor(color)
	dc.SetLineWidth(2)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()

	angle := math.Atan2(y2-y1, x2-x1)
	const size = 9.0
	dc.MoveTo(x2, y2)
	dc.LineTo(x2-size*math.Cos(angle-0.45), y2-size*math.Sin(angle-0.45))
	dc.LineTo(x2-size*math.Cos(angle+0.45), y2-size*math.Sin(angle+0.45))
	dc.ClosePath()
	dc.Fill()
}

// drawCenteredLines draws wrapped text centered on (x, y).
func drawCenteredLines(dc *gg.Context, lines []string, x, y, lineHeight float64) {
	top := y - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		dc.DrawStringAnchored(line, x, top+float64(i)*lineHeight, 0.5, 0.5)
	}
}

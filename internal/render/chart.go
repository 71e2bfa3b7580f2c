package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/shynneri-source/markdocx/internal/geometry"
)

const (
	chartWidth  = 800
	chartHeight = 500
)

// plotArea is the drawable region inside the axis margins.
type plotArea struct {
	left, top, right, bottom float64
}

func (a plotArea) width() float64  { return a.right - a.left }
func (a plotArea) height() float64 { return a.bottom - a.top }

func chartPNG(s *geometry.ChartSpec) ([]byte, error) {
	if len(s.Labels) == 0 || len(s.Series) == 0 {
		return nil, ErrEmptySpec
	}

	dc := newCanvas(chartWidth, chartHeight)
	area := plotArea{left: 70, top: 50, right: chartWidth - 40, bottom: chartHeight - 60}

	dc.SetHexColor("#000000")
	if s.Title != "" {
		dc.DrawStringAnchored(s.Title, chartWidth/2, 22, 0.5, 0.5)
	}

	switch s.Type {
	case geometry.ChartPie:
		drawPie(dc, s)
	case geometry.ChartLine:
		drawAxes(dc, s, area)
		drawLines(dc, s, area)
	case geometry.ChartScatter:
		drawAxes(dc, s, area)
		drawScatter(dc, s, area)
	default:
		drawAxes(dc, s, area)
		drawBars(dc, s, area)
	}

	drawLegend(dc, s)
	return encode(dc)
}

// maxValue scans all series for the largest finite value, with a floor of
// one so a flat zero dataset still has a scale.
func maxValue(s *geometry.ChartSpec) float64 {
	max := 1.0
	for _, series := range s.Series {
		for _, v := range series.Values {
			if !geometry.IsMissing(v) && v > max {
				max = v
			}
		}
	}
	return max
}

// drawAxes draws the two axis lines, the y scale, and the x labels.
func drawAxes(dc *gg.Context, s *geometry.ChartSpec, area plotArea) {
	dc.SetHexColor("#333333")
	dc.SetLineWidth(1.5)
	dc.DrawLine(area.left, area.top, area.left, area.bottom)
	dc.DrawLine(area.left, area.bottom, area.right, area.bottom)
	dc.Stroke()

	top := maxValue(s)
	dc.SetHexColor("#666666")
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		v := top * float64(i) / ticks
		y := area.bottom - area.height()*float64(i)/ticks
		dc.DrawStringAnchored(strconv.FormatFloat(v, 'g', 3, 64), area.left-8, y, 1, 0.5)
		if i > 0 {
			dc.SetHexColor("#DDDDDD")
			dc.DrawLine(area.left, y, area.right, y)
			dc.Stroke()
			dc.SetHexColor("#666666")
		}
	}

	for i, label := range s.Labels {
		x := area.left + area.width()*(float64(i)+0.5)/float64(len(s.Labels))
		dc.DrawStringAnchored(label, x, area.bottom+16, 0.5, 0.5)
	}

	dc.SetHexColor("#333333")
	if s.XLabel != "" {
		dc.DrawStringAnchored(s.XLabel, (area.left+area.right)/2, area.bottom+38, 0.5, 0.5)
	}
	if s.YLabel != "" {
		dc.DrawStringAnchored(s.YLabel, 16, area.top-14, 0, 0.5)
	}
}

func drawBars(dc *gg.Context, s *geometry.ChartSpec, area plotArea) {
	top := maxValue(s)
	groups := len(s.Labels)
	n := len(s.Series)
	groupW := area.width() / float64(groups)
	barW := groupW * 0.6 / float64(n)

	for si, series := range s.Series {
		dc.SetHexColor(paletteColor(si))
		for i, v := range series.Values {
			if geometry.IsMissing(v) || i >= groups {
				continue
			}
			h := area.height() * v / top
			x := area.left + groupW*float64(i) + groupW*0.2 + barW*float64(si)
			dc.DrawRectangle(x, area.bottom-h, barW, h)
			dc.Fill()
			if n == 1 {
				dc.SetHexColor("#333333")
				dc.DrawStringAnchored(fmt.Sprintf("%g", v), x+barW/2, area.bottom-h-10, 0.5, 0.5)
				dc.SetHexColor(paletteColor(si))
			}
		}
	}
}

func drawLines(dc *gg.Context, s *geometry.ChartSpec, area plotArea) {
	top := maxValue(s)
	for si, series := range s.Series {
		dc.SetHexColor(paletteColor(si))
		dc.SetLineWidth(2)

		// Missing points break the polyline instead of interpolating.
		started := false
		for i, v := range series.Values {
			if geometry.IsMissing(v) {
				if started {
					dc.Stroke()
					started = false
				}
				continue
			}
			x, y := pointAt(s, area, i, v, top)
			if !started {
				dc.MoveTo(x, y)
				started = true
			} else {
				dc.LineTo(x, y)
			}
		}
		if started {
			dc.Stroke()
		}

		for i, v := range series.Values {
			if geometry.IsMissing(v) {
				continue
			}
			x, y := pointAt(s, area, i, v, top)
			dc.DrawCircle(x, y, 4)
			dc.Fill()
		}
	}
}

func drawScatter(dc *gg.Context, s *geometry.ChartSpec, area plotArea) {
	top := maxValue(s)
	for si, series := range s.Series {
		dc.SetHexColor(paletteColor(si))
		for i, v := range series.Values {
			if geometry.IsMissing(v) {
				continue
			}
			x, y := pointAt(s, area, i, v, top)
			dc.DrawCircle(x, y, 6)
			dc.Fill()
		}
	}
}

func pointAt(s *geometry.ChartSpec, area plotArea, i int, v, top float64) (float64, float64) {
	x := area.left + area.width()*(float64(i)+0.5)/float64(len(s.Labels))
	y := area.bottom - area.height()*v/top
	return x, y
}

// drawPie draws the first (and only) series as slices starting at twelve
// o'clock, with percentage labels inside each slice.
func drawPie(dc *gg.Context, s *geometry.ChartSpec) {
	values := s.Series[0].Values
	total := 0.0
	for _, v := range values {
		if !geometry.IsMissing(v) && v > 0 {
			total += v
		}
	}
	if total == 0 {
		return
	}

	cx, cy := float64(chartWidth)/2, float64(chartHeight)/2+10
	radius := math.Min(chartWidth, chartHeight)/2 - 90.0

	angle := -math.Pi / 2
	for i, v := range values {
		if geometry.IsMissing(v) || v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total

		dc.SetHexColor(paletteColor(i))
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, angle, angle+sweep)
		dc.ClosePath()
		dc.Fill()

		mid := angle + sweep/2
		dc.SetHexColor("#FFFFFF")
		dc.DrawStringAnchored(fmt.Sprintf("%.1f%%", 100*v/total),
			cx+math.Cos(mid)*radius*0.6, cy+math.Sin(mid)*radius*0.6, 0.5, 0.5)

		// Category label outside the slice.
		if i < len(s.Labels) {
			dc.SetHexColor("#333333")
			dc.DrawStringAnchored(s.Labels[i],
				cx+math.Cos(mid)*(radius+26), cy+math.Sin(mid)*(radius+26), 0.5, 0.5)
		}

		angle += sweep
	}
}

// drawLegend lists series names in the top right for multi-series charts.
func drawLegend(dc *gg.Context, s *geometry.ChartSpec) {
	if len(s.Series) < 2 {
		return
	}
	x, y := float64(chartWidth)-160.0, 40.0
	for i, series := range s.Series {
		dc.SetHexColor(paletteColor(i))
		dc.DrawRectangle(x, y-5, 10, 10)
		dc.Fill()
		dc.SetHexColor("#333333")
		name := series.Name
		if name == "" {
			name = fmt.Sprintf("Series %d", i+1)
		}
		dc.DrawStringAnchored(name, x+16, y, 0, 0.5)
		y += 18
	}
}

package geometry

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ChartType selects the chart style.
type ChartType string

const (
	ChartBar     ChartType = "bar"
	ChartLine    ChartType = "line"
	ChartPie     ChartType = "pie"
	ChartScatter ChartType = "scatter"
)

// Missing is the marker for an absent data point. Short series are padded
// with it rather than rejected.
var Missing = math.NaN()

// IsMissing reports whether a value is the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Series is one named value sequence. Declaration order is preserved by
// keeping series in a slice, never a map.
type Series struct {
	Name   string
	Values []float64
}

// ChartSpec is the canonical form of a chart block.
//
// Invariants established at parse time: a pie chart keeps only the first
// declared series; for every other type each series is padded with Missing
// to the category label count when labels are present.
type ChartSpec struct {
	Type    ChartType
	Title   string
	XLabel  string
	YLabel  string
	Caption string
	Labels  []string
	Series  []Series
}

func (*ChartSpec) DiagramKind() Kind     { return Chart }
func (s *ChartSpec) CaptionText() string { return s.Caption }

// ParseChart parses a chart block in JSON or shorthand form.
func ParseChart(raw string) (Spec, *ParseError) {
	if isJSON(raw) {
		return parseChartJSON(raw)
	}
	return parseChartShorthand(raw)
}

type chartJSON struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	XLabel  string `json:"xlabel"`
	YLabel  string `json:"ylabel"`
	Caption string `json:"caption"`
	Data    struct {
		Labels   []string `json:"labels"`
		Datasets []struct {
			Label  string            `json:"label"`
			Values []json.RawMessage `json:"values"`
		} `json:"datasets"`
	} `json:"data"`
}

func parseChartJSON(raw string) (Spec, *ParseError) {
	var obj chartJSON
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, &ParseError{Diagram: Chart, Kind: ErrMalformedJSON, Detail: err.Error()}
	}

	spec := &ChartSpec{
		Title:   obj.Title,
		XLabel:  obj.XLabel,
		YLabel:  obj.YLabel,
		Caption: obj.Caption,
		Labels:  obj.Data.Labels,
	}
	for _, ds := range obj.Data.Datasets {
		s := Series{Name: ds.Label}
		for _, v := range ds.Values {
			s.Values = append(s.Values, jsonChartValue(v))
		}
		spec.Series = append(spec.Series, s)
	}

	var perr *ParseError
	spec.Type, perr = chartType(obj.Type)
	if len(spec.Series) == 0 {
		return nil, &ParseError{Diagram: Chart, Kind: ErrEmptyBody}
	}
	normalizeChart(spec)
	return spec, perr
}

// jsonChartValue coerces one dataset entry to a float, treating anything
// non-numeric as a missing value rather than an error.
func jsonChartValue(v json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return Missing
}

// chartShorthandDirectives are the reserved keys; any other "Name: v1, v2"
// line declares a series.
var chartShorthandDirectives = map[string]bool{
	"type": true, "title": true, "xlabel": true, "ylabel": true,
	"caption": true, "labels": true,
}

func parseChartShorthand(raw string) (Spec, *ParseError) {
	spec := &ChartSpec{Type: ChartBar}
	var perr *ParseError

	for _, line := range bodyLines(raw) {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "type":
			var typeErr *ParseError
			spec.Type, typeErr = chartType(value)
			if typeErr != nil {
				perr = typeErr
			}
		case "title":
			spec.Title = value
		case "xlabel":
			spec.XLabel = value
		case "ylabel":
			spec.YLabel = value
		case "caption":
			spec.Caption = value
		case "labels":
			spec.Labels = splitList(value)
		default:
			spec.Series = append(spec.Series, parseSeries(key, value))
		}
	}

	if len(spec.Series) == 0 {
		return nil, &ParseError{Diagram: Chart, Kind: ErrEmptyBody}
	}
	normalizeChart(spec)
	return spec, perr
}

// parseSeries reads "Name: v1, v2, ..." keeping the declared (original-case)
// name. Non-numeric tokens become missing values, not errors.
func parseSeries(name, value string) Series {
	s := Series{Name: name}
	for _, tok := range strings.Split(value, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			f = Missing
		}
		s.Values = append(s.Values, f)
	}
	return s
}

// chartType validates a type value, falling back to bar with an
// ErrUnknownVariant for anything unrecognized. Empty means bar.
func chartType(value string) (ChartType, *ParseError) {
	switch t := ChartType(strings.ToLower(strings.TrimSpace(value))); t {
	case "":
		return ChartBar, nil
	case ChartBar, ChartLine, ChartPie, ChartScatter:
		return t, nil
	default:
		return ChartBar, &ParseError{Diagram: Chart, Kind: ErrUnknownVariant, Detail: string(t)}
	}
}

// normalizeChart applies the canonical-spec invariants: pie keeps the first
// series only, other types pad short series to the label count.
func normalizeChart(spec *ChartSpec) {
	if spec.Type == ChartPie {
		spec.Series = spec.Series[:1]
		return
	}
	if len(spec.Labels) == 0 {
		return
	}
	for i := range spec.Series {
		for len(spec.Series[i].Values) < len(spec.Labels) {
			spec.Series[i].Values = append(spec.Series[i].Values, Missing)
		}
	}
}

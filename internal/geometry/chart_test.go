package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireChart(t *testing.T, raw string) (*ChartSpec, *ParseError) {
	t.Helper()
	spec, perr := ParseChart(raw)
	require.NotNil(t, spec)
	require.IsType(t, &ChartSpec{}, spec)
	return spec.(*ChartSpec), perr
}

func TestParseChartShorthand(t *testing.T) {
	c, perr := requireChart(t, `type: line
title: Revenue
xlabel: Quarter
ylabel: USD
labels: Q1, Q2, Q3
North: 10, 20, 30
South: 15, 25, 35
caption: Figure 1`)

	assert.Nil(t, perr)
	assert.Equal(t, ChartLine, c.Type)
	assert.Equal(t, "Revenue", c.Title)
	assert.Equal(t, "Quarter", c.XLabel)
	assert.Equal(t, "USD", c.YLabel)
	assert.Equal(t, "Figure 1", c.Caption)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, c.Labels)

	require.Len(t, c.Series, 2)
	assert.Equal(t, "North", c.Series[0].Name)
	assert.Equal(t, []float64{10, 20, 30}, c.Series[0].Values)
	assert.Equal(t, "South", c.Series[1].Name)
}

func TestParseChartDefaultsToBar(t *testing.T) {
	c, perr := requireChart(t, "A: 1, 2")

	assert.Nil(t, perr)
	assert.Equal(t, ChartBar, c.Type)
}

func TestParseChartSeriesOrderIsDeclarationOrder(t *testing.T) {
	c, _ := requireChart(t, "Zebra: 1\nAlpha: 2\nMike: 3")

	names := []string{c.Series[0].Name, c.Series[1].Name, c.Series[2].Name}
	assert.Equal(t, []string{"Zebra", "Alpha", "Mike"}, names)
}

func TestParseChartNonNumericBecomesMissing(t *testing.T) {
	c, perr := requireChart(t, "labels: a, b, c\nS: 1, oops, 3")

	assert.Nil(t, perr)
	require.Len(t, c.Series[0].Values, 3)
	assert.Equal(t, 1.0, c.Series[0].Values[0])
	assert.True(t, IsMissing(c.Series[0].Values[1]))
	assert.Equal(t, 3.0, c.Series[0].Values[2])
}

func TestParseChartPadsShortSeries(t *testing.T) {
	c, _ := requireChart(t, "labels: a, b, c, d\nS: 1, 2")

	require.Len(t, c.Series[0].Values, 4)
	assert.True(t, IsMissing(c.Series[0].Values[2]))
	assert.True(t, IsMissing(c.Series[0].Values[3]))
}

func TestParseChartPieKeepsFirstSeriesOnly(t *testing.T) {
	for _, raw := range []string{
		"type: pie\nlabels: a, b\nFirst: 1, 2\nSecond: 3, 4",
		`{"type": "pie", "data": {"labels": ["a", "b"], "datasets": [
			{"label": "First", "values": [1, 2]},
			{"label": "Second", "values": [3, 4]}]}}`,
	} {
		c, perr := requireChart(t, raw)
		assert.Nil(t, perr)
		require.Len(t, c.Series, 1)
		assert.Equal(t, "First", c.Series[0].Name)
	}
}

func TestParseChartUnknownTypeFallsBackToBar(t *testing.T) {
	c, perr := requireChart(t, "type: donut\nS: 1, 2")

	require.NotNil(t, perr)
	assert.Equal(t, ErrUnknownVariant, perr.Kind)
	assert.True(t, perr.Recoverable())
	assert.Equal(t, ChartBar, c.Type)
}

func TestParseChartJSONEquivalence(t *testing.T) {
	short, _ := requireChart(t, "type: scatter\ntitle: T\nlabels: x, y\nA: 1, 2")
	jsonForm, _ := requireChart(t, `{"type": "scatter", "title": "T",
		"data": {"labels": ["x", "y"], "datasets": [{"label": "A", "values": [1, 2]}]}}`)

	assert.Equal(t, jsonForm, short)
}

func TestParseChartErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind ErrorKind
	}{
		{"empty body", "title: only a title", ErrEmptyBody},
		{"malformed json", `{"type": bar}`, ErrMalformedJSON},
		{"json without datasets", `{"type": "bar", "data": {"labels": ["a"]}}`, ErrEmptyBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, perr := ParseChart(tt.raw)
			assert.Nil(t, spec)
			require.NotNil(t, perr)
			assert.Equal(t, tt.kind, perr.Kind)
		})
	}
}

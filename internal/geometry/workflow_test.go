package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireWorkflow(t *testing.T, raw string) *WorkflowSpec {
	t.Helper()
	spec, perr := ParseWorkflow(raw)
	require.Nil(t, perr)
	require.IsType(t, &WorkflowSpec{}, spec)
	return spec.(*WorkflowSpec)
}

func TestParseWorkflowShorthand(t *testing.T) {
	w := requireWorkflow(t, `title: Build
direction: horizontal
[Start]
(Compile)
{Tests pass?}
<Publish artifact>
[End]
caption: Release flow`)

	assert.Equal(t, "Build", w.Title)
	assert.Equal(t, DirectionHorizontal, w.Direction)
	assert.Equal(t, "Release flow", w.Caption)
	assert.Equal(t, []Step{
		{Text: "Start", Shape: ShapeTerminal},
		{Text: "Compile", Shape: ShapeProcess},
		{Text: "Tests pass?", Shape: ShapeDecision},
		{Text: "Publish artifact", Shape: ShapeIO},
		{Text: "End", Shape: ShapeTerminal},
	}, w.Steps)
}

func TestParseWorkflowDefaultsVertical(t *testing.T) {
	w := requireWorkflow(t, "[Start]\n[End]")

	assert.Equal(t, DirectionVertical, w.Direction)
}

func TestParseWorkflowPlainLineIsProcess(t *testing.T) {
	w := requireWorkflow(t, "just some text")

	assert.Equal(t, []Step{{Text: "just some text", Shape: ShapeProcess}}, w.Steps)
}

func TestParseWorkflowShapePrecedence(t *testing.T) {
	// Delimiter pairs resolve outer-to-inner: the wrapping pair wins even
	// when the inner text contains other delimiter characters.
	tests := []struct {
		line  string
		text  string
		shape Shape
	}{
		{"[load (cached) data]", "load (cached) data", ShapeTerminal},
		{"(check {flag})", "check {flag}", ShapeProcess},
		{"{use [x] or (y)?}", "use [x] or (y)?", ShapeDecision},
		{"<read file (utf-8)>", "read file (utf-8)", ShapeIO},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			w := requireWorkflow(t, tt.line)
			require.Len(t, w.Steps, 1)
			assert.Equal(t, tt.text, w.Steps[0].Text)
			assert.Equal(t, tt.shape, w.Steps[0].Shape)
		})
	}
}

func TestParseWorkflowLeadingDecisionIsShorthand(t *testing.T) {
	// A decision step on the first line starts with '{' just like a JSON
	// object; the body must still parse as shorthand.
	w := requireWorkflow(t, "{Valid?}\n(Handle)\n[End]")

	assert.Equal(t, []Step{
		{Text: "Valid?", Shape: ShapeDecision},
		{Text: "Handle", Shape: ShapeProcess},
		{Text: "End", Shape: ShapeTerminal},
	}, w.Steps)

	single := requireWorkflow(t, "{use [x] or (y)?}")
	assert.Equal(t, []Step{{Text: "use [x] or (y)?", Shape: ShapeDecision}}, single.Steps)
}

func TestParseWorkflowJSONEquivalence(t *testing.T) {
	short := requireWorkflow(t, "title: T\n[Start]\n(Work)\n[End]")
	jsonSpec, perr := ParseWorkflow(`{"title": "T", "steps": [
		{"text": "Start", "type": "terminal"},
		{"text": "Work", "type": "process"},
		{"text": "End", "type": "terminal"}]}`)

	require.Nil(t, perr)
	assert.Equal(t, jsonSpec, Spec(short))
}

func TestParseWorkflowJSONStartEndCollapseToTerminal(t *testing.T) {
	w, perr := ParseWorkflow(`{"steps": [
		{"text": "Begin", "type": "start"},
		{"text": "Finish", "type": "end"}]}`)

	require.Nil(t, perr)
	spec := w.(*WorkflowSpec)
	assert.Equal(t, ShapeTerminal, spec.Steps[0].Shape)
	assert.Equal(t, ShapeTerminal, spec.Steps[1].Shape)
}

func TestParseWorkflowErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind ErrorKind
	}{
		{"empty body", "title: only directives\ndirection: vertical", ErrEmptyBody},
		{"malformed json", `{"steps": [{]}`, ErrMalformedJSON},
		{"json without steps", `{"title": "T"}`, ErrEmptyBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, perr := ParseWorkflow(tt.raw)
			assert.Nil(t, spec)
			require.NotNil(t, perr)
			assert.Equal(t, tt.kind, perr.Kind)
		})
	}
}

func TestIsDiagramLanguage(t *testing.T) {
	assert.True(t, IsDiagramLanguage("matrix"))
	assert.True(t, IsDiagramLanguage(" Chart "))
	assert.True(t, IsDiagramLanguage("GRAPH"))
	assert.True(t, IsDiagramLanguage("workflow"))
	assert.False(t, IsDiagramLanguage("go"))
	assert.False(t, IsDiagramLanguage(""))
}

// Package geometry parses the four diagram mini-notations (matrix, chart,
// graph, workflow) into canonical in-memory specifications.
//
// Each notation accepts two surface syntaxes: a line-oriented shorthand and a
// JSON object. Format detection is uniform: a body whose trimmed text starts
// with '{' is JSON, anything else is shorthand. The two grammars are parsed
// by independent functions funneled through one dispatcher per kind; both
// yield the same canonical spec for equivalent content.
//
// Parsers are pure functions with no shared state and are safe to call from
// any number of goroutines.
package geometry

import "strings"

// Kind identifies a diagram notation.
type Kind string

const (
	Matrix   Kind = "matrix"
	Chart    Kind = "chart"
	Graph    Kind = "graph"
	Workflow Kind = "workflow"
)

// IsDiagramLanguage reports whether a fenced code block language tag routes
// to a geometry parser rather than the code highlighter.
func IsDiagramLanguage(lang string) bool {
	switch Kind(strings.ToLower(strings.TrimSpace(lang))) {
	case Matrix, Chart, Graph, Workflow:
		return true
	}
	return false
}

// Spec is the canonical, format-agnostic representation of one diagram
// block. The set of implementations is closed: MatrixSpec, ChartSpec,
// GraphSpec, WorkflowSpec.
type Spec interface {
	DiagramKind() Kind

	// CaptionText returns the optional caption, empty when absent. Render
	// placeholders reuse it when drawing fails.
	CaptionText() string
}

// Parse dispatches raw block text to the parser for kind.
//
// A nil Spec with a non-nil error means the block is unusable and should be
// replaced by a placeholder. A non-nil Spec together with a non-nil error is
// a recovered condition (unknown chart type falling back to bar, conflicting
// directed flags): the spec is usable and the error should be recorded.
func Parse(kind Kind, raw string) (Spec, *ParseError) {
	switch kind {
	case Matrix:
		return ParseMatrix(raw)
	case Chart:
		return ParseChart(raw)
	case Graph:
		return ParseGraph(raw)
	case Workflow:
		return ParseWorkflow(raw)
	}
	return nil, &ParseError{Diagram: kind, Kind: ErrUnknownVariant, Detail: string(kind)}
}

// isJSON reports whether the block body uses the JSON surface syntax.
func isJSON(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "{")
}

// jsonObjectLike reports whether a '{'-prefixed body is unambiguously a JSON
// object: the first character after the brace opens a key or closes the
// object, which no decision-step text starts with.
func jsonObjectLike(raw string) bool {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "{") {
		return false
	}
	s = strings.TrimSpace(s[1:])
	return s == "" || s[0] == '"' || s[0] == '}'
}

// bodyLines splits shorthand text into trimmed, non-blank lines.
func bodyLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// directive splits a "key: value" line on the first colon and reports
// whether the lowercased key matches name.
func directive(line, name string) (string, bool) {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return "", false
	}
	if !strings.EqualFold(strings.TrimSpace(key), name) {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// splitList comma-splits a directive value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseBool recognizes the boolean spellings the shorthand accepts.
func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

package geometry

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Edge is one connection between two node identifiers. Label is free text;
// numeric labels double as weights when the graph renders.
type Edge struct {
	From  string
	To    string
	Label string
}

// GraphSpec is the canonical form of a graph block.
//
// Nodes is the union of explicit nodes: entries and every edge endpoint, in
// first-appearance order. Directed is true when any shorthand edge used a
// directed marker or an explicit directed: true was present; an explicit
// directed: false beside a directed marker is a declared conflict in which
// the explicit value wins.
type GraphSpec struct {
	Directed bool
	Nodes    []string
	Edges    []Edge
	Title    string
	Caption  string
}

func (*GraphSpec) DiagramKind() Kind     { return Graph }
func (s *GraphSpec) CaptionText() string { return s.Caption }

// edgePattern matches "A -> B", "A --> B", "A -- B", and an em-dash
// variant, each with an optional ": label" suffix.
var edgePattern = regexp.MustCompile(`^\s*(.+?)\s*(->|-->|--|—)\s*(.+?)(?:\s*:\s*(.+?))?\s*$`)

// ParseGraph parses a graph block in JSON or shorthand form.
func ParseGraph(raw string) (Spec, *ParseError) {
	if isJSON(raw) {
		return parseGraphJSON(raw)
	}
	return parseGraphShorthand(raw)
}

type graphJSON struct {
	Directed bool     `json:"directed"`
	Nodes    []string `json:"nodes"`
	Edges    []struct {
		From  string `json:"from"`
		To    string `json:"to"`
		Label string `json:"label"`
	} `json:"edges"`
	Title   string `json:"title"`
	Caption string `json:"caption"`
}

func parseGraphJSON(raw string) (Spec, *ParseError) {
	var obj graphJSON
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, &ParseError{Diagram: Graph, Kind: ErrMalformedJSON, Detail: err.Error()}
	}

	spec := &GraphSpec{
		Directed: obj.Directed,
		Title:    obj.Title,
		Caption:  obj.Caption,
	}
	seen := make(map[string]bool)
	addNode := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			spec.Nodes = append(spec.Nodes, id)
		}
	}
	for _, n := range obj.Nodes {
		addNode(strings.TrimSpace(n))
	}
	for _, e := range obj.Edges {
		from, to := strings.TrimSpace(e.From), strings.TrimSpace(e.To)
		if from == "" || to == "" {
			continue
		}
		addNode(from)
		addNode(to)
		spec.Edges = append(spec.Edges, Edge{From: from, To: to, Label: strings.TrimSpace(e.Label)})
	}

	if len(spec.Nodes) == 0 && len(spec.Edges) == 0 {
		return nil, &ParseError{Diagram: Graph, Kind: ErrEmptyBody}
	}
	return spec, nil
}

func parseGraphShorthand(raw string) (Spec, *ParseError) {
	spec := &GraphSpec{}
	seen := make(map[string]bool)
	addNode := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			spec.Nodes = append(spec.Nodes, id)
		}
	}

	// explicitDirected holds the value of a directed: line when one was
	// present; markerDirected is set by any -> or --> edge. The explicit
	// value wins a disagreement, regardless of line order.
	var explicitDirected *bool
	markerDirected := false

	for _, line := range bodyLines(raw) {
		if v, ok := directive(line, "directed"); ok {
			b := parseBool(v)
			explicitDirected = &b
			continue
		}
		if v, ok := directive(line, "title"); ok {
			spec.Title = v
			continue
		}
		if v, ok := directive(line, "caption"); ok {
			spec.Caption = v
			continue
		}
		if v, ok := directive(line, "nodes"); ok {
			for _, n := range splitList(v) {
				addNode(n)
			}
			continue
		}

		m := edgePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		from, arrow, to, label := strings.TrimSpace(m[1]), m[2], strings.TrimSpace(m[3]), strings.TrimSpace(m[4])
		if arrow == "->" || arrow == "-->" {
			markerDirected = true
		}
		addNode(from)
		addNode(to)
		spec.Edges = append(spec.Edges, Edge{From: from, To: to, Label: label})
	}

	if len(spec.Nodes) == 0 && len(spec.Edges) == 0 {
		return nil, &ParseError{Diagram: Graph, Kind: ErrEmptyBody}
	}

	var perr *ParseError
	switch {
	case explicitDirected == nil:
		spec.Directed = markerDirected
	case *explicitDirected:
		spec.Directed = true
	default:
		spec.Directed = false
		if markerDirected {
			perr = &ParseError{
				Diagram: Graph,
				Kind:    ErrConflictingDirectedFlag,
				Detail:  "directed: false declared but a directed edge marker is used",
			}
		}
	}
	return spec, perr
}

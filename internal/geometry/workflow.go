package geometry

import (
	"encoding/json"
	"strings"
)

// Direction lays out workflow steps top-to-bottom or left-to-right.
type Direction string

const (
	DirectionVertical   Direction = "vertical"
	DirectionHorizontal Direction = "horizontal"
)

// Shape selects the flowchart symbol for a step.
type Shape string

const (
	ShapeTerminal Shape = "terminal" // [text], rounded box
	ShapeProcess  Shape = "process"  // (text), rectangle
	ShapeDecision Shape = "decision" // {text}, diamond
	ShapeIO       Shape = "io"       // <text>, parallelogram
)

// Step is one workflow node. Steps connect strictly in declaration order.
type Step struct {
	Text  string
	Shape Shape
}

// DefaultMaxSteps is the soft ceiling on workflow length. Exceeding it is a
// structural warning, never a truncation.
const DefaultMaxSteps = 8

// WorkflowSpec is the canonical form of a workflow block: a linear sequence
// of shaped steps with no branching.
type WorkflowSpec struct {
	Title     string
	Direction Direction
	Steps     []Step
	Caption   string
}

func (*WorkflowSpec) DiagramKind() Kind     { return Workflow }
func (s *WorkflowSpec) CaptionText() string { return s.Caption }

// ParseWorkflow parses a workflow block in JSON or shorthand form.
//
// A leading '{' is ambiguous for workflows: it opens a JSON object, but it
// is also the decision-step delimiter. A body that fails to unmarshal as
// JSON and does not look like a JSON object is retried as shorthand, so
// "{Valid?}" on the first line parses as a decision step. MalformedJSON is
// reserved for bodies whose brace unambiguously opens an object.
func ParseWorkflow(raw string) (Spec, *ParseError) {
	if isJSON(raw) {
		spec, err := parseWorkflowJSON(raw)
		if err == nil || err.Kind != ErrMalformedJSON || jsonObjectLike(raw) {
			return spec, err
		}
	}
	return parseWorkflowShorthand(raw)
}

type workflowJSON struct {
	Title     string `json:"title"`
	Direction string `json:"direction"`
	Steps     []struct {
		Text string `json:"text"`
		Type string `json:"type"`
	} `json:"steps"`
	Caption string `json:"caption"`
}

func parseWorkflowJSON(raw string) (Spec, *ParseError) {
	var obj workflowJSON
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, &ParseError{Diagram: Workflow, Kind: ErrMalformedJSON, Detail: err.Error()}
	}

	spec := &WorkflowSpec{
		Title:     obj.Title,
		Direction: workflowDirection(obj.Direction),
		Caption:   obj.Caption,
	}
	for _, s := range obj.Steps {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		spec.Steps = append(spec.Steps, Step{Text: text, Shape: stepShape(s.Type)})
	}
	if len(spec.Steps) == 0 {
		return nil, &ParseError{Diagram: Workflow, Kind: ErrEmptyBody}
	}
	return spec, nil
}

func parseWorkflowShorthand(raw string) (Spec, *ParseError) {
	spec := &WorkflowSpec{Direction: DirectionVertical}

	for _, line := range bodyLines(raw) {
		if v, ok := directive(line, "title"); ok {
			spec.Title = v
			continue
		}
		if v, ok := directive(line, "direction"); ok {
			spec.Direction = workflowDirection(v)
			continue
		}
		if v, ok := directive(line, "caption"); ok {
			spec.Caption = v
			continue
		}
		spec.Steps = append(spec.Steps, parseStep(line))
	}

	if len(spec.Steps) == 0 {
		return nil, &ParseError{Diagram: Workflow, Kind: ErrEmptyBody}
	}
	return spec, nil
}

// stepDelimiters in precedence order. A line that could match more than one
// pair resolves to the first matching pair, scanning outer delimiters first.
var stepDelimiters = []struct {
	open, close byte
	shape       Shape
}{
	{'[', ']', ShapeTerminal},
	{'(', ')', ShapeProcess},
	{'{', '}', ShapeDecision},
	{'<', '>', ShapeIO},
}

// parseStep reads one step line. A line not wrapped in any delimiter pair
// falls back to a process step with the literal text.
func parseStep(line string) Step {
	for _, d := range stepDelimiters {
		if len(line) >= 2 && line[0] == d.open && line[len(line)-1] == d.close {
			inner := strings.TrimSpace(line[1 : len(line)-1])
			if inner != "" {
				return Step{Text: inner, Shape: d.shape}
			}
		}
	}
	return Step{Text: line, Shape: ShapeProcess}
}

// workflowDirection normalizes a direction value; any spelling starting
// with "h" is horizontal, everything else vertical.
func workflowDirection(v string) Direction {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(v)), "h") {
		return DirectionHorizontal
	}
	return DirectionVertical
}

// stepShape maps a JSON step type to a Shape. The original start/end
// spellings collapse to terminal; unknown types default to process.
func stepShape(t string) Shape {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "terminal", "start", "end":
		return ShapeTerminal
	case "decision":
		return ShapeDecision
	case "io", "input", "output":
		return ShapeIO
	default:
		return ShapeProcess
	}
}

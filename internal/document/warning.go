package document

import "fmt"

// WarningKind classifies a structural warning.
type WarningKind string

const (
	// WarnFirstHeadingLevel reports a document whose first heading is not
	// level 1.
	WarnFirstHeadingLevel WarningKind = "first-heading-level"

	// WarnMultipleH1 reports more than one level-1 heading.
	WarnMultipleH1 WarningKind = "multiple-h1"

	// WarnHeadingSkip reports a heading level that jumps by more than one
	// from the nearest preceding heading.
	WarnHeadingSkip WarningKind = "heading-skip"

	// WarnListDepth reports list nesting beyond the configured ceiling;
	// deeper items are flattened to the ceiling, not dropped.
	WarnListDepth WarningKind = "list-depth"

	// WarnMalformedTable reports a table that collapsed to a paragraph
	// because its second line was not a separator row.
	WarnMalformedTable WarningKind = "malformed-table"

	// WarnWorkflowSteps reports a workflow exceeding the soft step maximum.
	WarnWorkflowSteps WarningKind = "workflow-steps"

	// WarnUnresolvedFootnote reports a footnote marker with no definition
	// at end of pass; the marker degrades to literal text.
	WarnUnresolvedFootnote WarningKind = "unresolved-footnote"

	// WarnDiagramError reports a diagram block replaced by a placeholder
	// after its notation failed to parse.
	WarnDiagramError WarningKind = "diagram-error"
)

// Warning is a non-fatal structural notice. The document still converts;
// warnings surface issues that would otherwise need a verbose trace.
type Warning struct {
	Kind    WarningKind
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

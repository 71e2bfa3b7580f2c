package document

// RunKind identifies an inline run variant.
type RunKind int

const (
	RunText RunKind = iota
	RunCode
	RunMath
	RunLink
	RunImage
	RunFootnoteMark
	RunBreak
)

// String returns a short name for the run kind.
func (k RunKind) String() string {
	switch k {
	case RunText:
		return "text"
	case RunCode:
		return "code"
	case RunMath:
		return "math"
	case RunLink:
		return "link"
	case RunImage:
		return "image"
	case RunFootnoteMark:
		return "footnote_mark"
	case RunBreak:
		return "break"
	}
	return "unknown"
}

// Run is one formatted span inside a text-bearing block. Runs are immutable
// value objects owned by their containing node.
//
// Kind selects the structural variant; the style flags record the effective
// emphasis so that nested spans (bold inside italic, a bold link) collapse
// into a single flat run. A plain emphasized span is RunText with Italic set,
// a strong span is RunText with Bold set.
type Run struct {
	Kind RunKind
	Text string

	// Dest is the link target for RunLink and the source path for RunImage.
	Dest string

	// Title is the optional title for RunLink and RunImage.
	Title string

	// Index is the 1-based footnote number for RunFootnoteMark.
	Index int

	Bold      bool
	Italic    bool
	Strike    bool
	Highlight bool
}

// SameStyle reports whether two runs carry identical formatting, the
// precondition for merging adjacent plain-text runs.
func (r Run) SameStyle(o Run) bool {
	return r.Kind == o.Kind &&
		r.Bold == o.Bold &&
		r.Italic == o.Italic &&
		r.Strike == o.Strike &&
		r.Highlight == o.Highlight
}

// PlainText flattens runs to their visible text, dropping formatting.
// Used for fallbacks and warnings.
func PlainText(runs []Run) string {
	var out []byte
	for _, r := range runs {
		switch r.Kind {
		case RunBreak:
			out = append(out, '\n')
		case RunImage:
			out = append(out, r.Alt()...)
		default:
			out = append(out, r.Text...)
		}
	}
	return string(out)
}

// Alt returns the alternative text of an image run.
func (r Run) Alt() string { return r.Text }

package geometry

import "fmt"

// ErrorKind classifies a diagram parse failure.
type ErrorKind string

const (
	// ErrMalformedJSON marks a block that opened with '{' but did not
	// deserialize as a JSON object of the expected shape.
	ErrMalformedJSON ErrorKind = "malformed-json"

	// ErrEmptyBody marks shorthand that produced zero rows, series, edges,
	// or steps.
	ErrEmptyBody ErrorKind = "empty-body"

	// ErrUnknownVariant marks an unrecognized enum value, e.g. an unknown
	// chart type. Recoverable: the parser substitutes a default.
	ErrUnknownVariant ErrorKind = "unknown-variant"

	// ErrConflictingDirectedFlag marks a graph that declares directed:
	// false while using a directed edge marker. Recoverable: the explicit
	// flag wins.
	ErrConflictingDirectedFlag ErrorKind = "conflicting-directed-flag"
)

// ParseError describes why a diagram block failed to parse. It is carried as
// a structured value on the placeholder node and never aborts the document
// pass.
type ParseError struct {
	Diagram Kind
	Kind    ErrorKind
	Detail  string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Diagram, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Diagram, e.Kind)
}

// Recoverable reports whether the parser still produced a usable spec
// alongside this error.
func (e *ParseError) Recoverable() bool {
	return e.Kind == ErrUnknownVariant || e.Kind == ErrConflictingDirectedFlag
}

package markdocx

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrFrontMatter    = errors.New("invalid YAML front matter")
	ErrDocxGeneration = errors.New("DOCX generation failed")
	ErrHTMLPreview    = errors.New("HTML preview rendering failed")
)

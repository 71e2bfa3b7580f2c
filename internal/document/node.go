// Package document defines the typed tree produced by the assembly engine.
//
// A Document is a single rooted, acyclic tree of block-level nodes. Every
// node type is a member of a closed set identified by Kind; consumers switch
// exhaustively on Kind so that adding a node type is a compile-time-visible
// change. Nodes are constructed once during assembly and never mutated
// afterwards; the finished tree is handed whole to an output sink.
package document

import "github.com/shynneri-source/markdocx/internal/geometry"

// Kind identifies a block-level node variant.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindList
	KindTable
	KindBlockquote
	KindCodeBlock
	KindMathBlock
	KindDiagram
	KindImage
	KindFootnote
	KindRule
)

// String returns a short name for the kind, used in warnings and tests.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	case KindBlockquote:
		return "blockquote"
	case KindCodeBlock:
		return "code_block"
	case KindMathBlock:
		return "math_block"
	case KindDiagram:
		return "diagram"
	case KindImage:
		return "image"
	case KindFootnote:
		return "footnote"
	case KindRule:
		return "rule"
	}
	return "unknown"
}

// Position locates a node in the source for error reporting. Line is 1-based;
// zero means the position could not be determined.
type Position struct {
	Line int
}

// Node is implemented by every block-level variant.
type Node interface {
	NodeKind() Kind
	Pos() Position
}

// Base carries the source position and is embedded by all node variants.
type Base struct {
	Line int
}

func (b Base) Pos() Position { return Position{Line: b.Line} }

// Document is the root of the tree. It owns every node below it.
type Document struct {
	Children []Node

	// Footnotes holds resolved footnote definitions in first-reference
	// order. They render as a trailing section after the body.
	Footnotes []*Footnote

	// Warnings collects structural notices gathered during assembly.
	// They never prevent conversion.
	Warnings []Warning
}

// Heading is a section heading, level 1 through 6.
type Heading struct {
	Base
	Level int
	Runs  []Run
}

func (*Heading) NodeKind() Kind { return KindHeading }

// Paragraph is a text-bearing block of inline runs.
type Paragraph struct {
	Base
	Runs []Run
}

func (*Paragraph) NodeKind() Kind { return KindParagraph }

// List is an ordered or unordered list. Depth is 0-based nesting depth;
// nested lists appear as children of their parent ListItem.
type List struct {
	Base
	Ordered bool
	Depth   int
	Items   []*ListItem
}

func (*List) NodeKind() Kind { return KindList }

// ListItem holds the block content of one list entry.
type ListItem struct {
	Children []Node
}

// Alignment is a per-column table alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Cell is one table cell: an ordered run list.
type Cell []Run

// Table has a header row, body rows, and per-column alignment. Every row
// has the same column count; short source rows are padded with empty cells.
type Table struct {
	Base
	Header []Cell
	Rows   [][]Cell
	Aligns []Alignment
}

func (*Table) NodeKind() Kind { return KindTable }

// Blockquote wraps nested block content.
type Blockquote struct {
	Base
	Children []Node
}

func (*Blockquote) NodeKind() Kind { return KindBlockquote }

// CodeBlock is a fenced or indented code block. Language is the fence info
// tag, kept verbatim for the highlighter; empty means no tag.
type CodeBlock struct {
	Base
	Language string
	Code     string
}

func (*CodeBlock) NodeKind() Kind { return KindCodeBlock }

// MathBlock is a display math block ($$...$$). TeX is the raw expression
// without delimiters; the output sink asks the math collaborator for markup.
type MathBlock struct {
	Base
	TeX string
}

func (*MathBlock) NodeKind() Kind { return KindMathBlock }

// Diagram holds the canonical spec parsed from one of the four diagram
// notations. When parsing failed, Spec may be nil and Err carries the error;
// Raw always preserves the original block text so failures stay visible.
type Diagram struct {
	Base
	Diagram geometry.Kind
	Spec    geometry.Spec
	Raw     string
	Err     *geometry.ParseError
}

func (*Diagram) NodeKind() Kind { return KindDiagram }

// Image is a block-level image (a paragraph containing a single image is
// promoted to this). Alt doubles as the caption.
type Image struct {
	Base
	Src   string
	Alt   string
	Title string
}

func (*Image) NodeKind() Kind { return KindImage }

// Footnote is one resolved footnote definition. Index is the 1-based display
// number assigned in first-reference order.
type Footnote struct {
	Base
	Index    int
	Label    string
	Children []Node
}

func (*Footnote) NodeKind() Kind { return KindFootnote }

// Rule is a horizontal rule.
type Rule struct {
	Base
}

func (*Rule) NodeKind() Kind { return KindRule }

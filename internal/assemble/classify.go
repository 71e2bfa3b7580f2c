// Package assemble turns a parsed block/inline token stream into the typed
// document tree, routing diagram blocks through the geometry parsers and
// composing inline runs for text-bearing blocks.
//
// The engine is single-threaded and synchronous: every construction decision
// (list depth, table shape, footnote forward references) depends on state
// accumulated over prior tokens. Each Build call works on isolated state, so
// independent documents may be assembled concurrently.
package assemble

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/shynneri-source/markdocx/internal/geometry"
	"github.com/shynneri-source/markdocx/internal/mathext"
)

// Class tags the routing decision for one block-level token.
type Class int

const (
	ClassSkip Class = iota
	ClassHeading
	ClassParagraph
	ClassImage
	ClassList
	ClassTable
	ClassBlockquote
	ClassCode
	ClassDiagram
	ClassMathBlock
	ClassRule
	ClassFootnotes
)

// Classification is a block's routing tag plus the minimal data needed to
// construct the matching document node.
type Classification struct {
	Class Class

	// HeadingLevel is set for ClassHeading.
	HeadingLevel int

	// Ordered is set for ClassList.
	Ordered bool

	// Language is the fence info tag for ClassCode.
	Language string

	// Diagram is the notation kind for ClassDiagram.
	Diagram geometry.Kind
}

// ClassifyBlock inspects one block token and decides its route. It is a pure
// mapping with no side effects; fenced blocks whose language tag names one
// of the four diagram notations route to the geometry parsers, all other
// tags stay code blocks with the tag retained for highlighting.
func ClassifyBlock(n ast.Node, source []byte) Classification {
	switch t := n.(type) {
	case *ast.Heading:
		return Classification{Class: ClassHeading, HeadingLevel: t.Level}
	case *ast.Paragraph:
		if img, ok := soleImage(t); ok && img != nil {
			return Classification{Class: ClassImage}
		}
		return Classification{Class: ClassParagraph}
	case *ast.TextBlock:
		return Classification{Class: ClassParagraph}
	case *ast.List:
		return Classification{Class: ClassList, Ordered: t.IsOrdered()}
	case *ast.Blockquote:
		return Classification{Class: ClassBlockquote}
	case *ast.FencedCodeBlock:
		lang := string(t.Language(source))
		if geometry.IsDiagramLanguage(lang) {
			kind := geometry.Kind(strings.ToLower(strings.TrimSpace(lang)))
			return Classification{Class: ClassDiagram, Diagram: kind}
		}
		return Classification{Class: ClassCode, Language: lang}
	case *ast.CodeBlock:
		return Classification{Class: ClassCode}
	case *ast.ThematicBreak:
		return Classification{Class: ClassRule}
	case *mathext.MathBlock:
		return Classification{Class: ClassMathBlock}
	case *extast.Table:
		return Classification{Class: ClassTable}
	case *extast.FootnoteList:
		return Classification{Class: ClassFootnotes}
	default:
		return Classification{Class: ClassSkip}
	}
}

// soleImage reports whether a paragraph consists of exactly one image,
// which promotes to a block-level image node.
func soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	child := p.FirstChild()
	if child == nil || child != p.LastChild() {
		return nil, false
	}
	img, ok := child.(*ast.Image)
	return img, ok
}

// blockText concatenates the source lines covered by a block node.
func blockText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based source line a block starts on, or zero when
// the node covers no source segment (synthetic container nodes).
func lineOf(n ast.Node, source []byte) int {
	lines := n.Lines()
	if lines.Len() == 0 {
		if fc := n.FirstChild(); fc != nil {
			return lineOf(fc, source)
		}
		return 0
	}
	start := lines.At(0).Start
	if start > len(source) {
		return 0
	}
	return 1 + bytes.Count(source[:start], []byte{'\n'})
}

package assemble

import (
	"regexp"

	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/shynneri-source/markdocx/internal/document"
)

// footnoteRefPattern matches a reference the tokenizer left as literal
// text, which happens when no definition with that label exists.
var footnoteRefPattern = regexp.MustCompile(`\[\^([^\]\s]+)\]`)

// collectFootnotes stores definitions in the side table keyed by the
// tokenizer's index. The definition body is built immediately, the display
// numbers wait for phase two.
func (b *build) collectFootnotes(list *extast.FootnoteList) {
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		fn, ok := c.(*extast.Footnote)
		if !ok {
			continue
		}
		def := &document.Footnote{
			Base:  document.Base{Line: lineOf(fn, b.source)},
			Label: string(fn.Ref),
		}
		for body := fn.FirstChild(); body != nil; body = body.NextSibling() {
			if child := b.buildBlock(body); child != nil {
				def.Children = append(def.Children, child)
			}
		}
		b.defs[fn.Index] = def
	}
}

// resolveFootnotes is phase two: marks receive display numbers in order of
// first reference, and the referenced definitions attach to the document in
// that same order. References with no definition stayed literal text during
// the walk; they only produce a warning here.
func (b *build) resolveFootnotes(doc *document.Document) {
	display := make(map[int]int)

	var visit func(nodes []document.Node)
	visitRuns := func(runs []document.Run, line int) {
		for i := range runs {
			r := &runs[i]
			switch r.Kind {
			case document.RunFootnoteMark:
				def, ok := b.defs[r.Index]
				if !ok {
					// The tokenizer only links references that have a
					// definition, so this table miss should not happen.
					b.warn(document.WarnUnresolvedFootnote, line,
						"footnote reference has no definition")
					r.Kind = document.RunText
					continue
				}
				n, seen := display[r.Index]
				if !seen {
					n = len(display) + 1
					display[r.Index] = n
					def.Index = n
					doc.Footnotes = append(doc.Footnotes, def)
				}
				r.Index = n
			case document.RunText:
				for _, m := range footnoteRefPattern.FindAllStringSubmatch(r.Text, -1) {
					b.warn(document.WarnUnresolvedFootnote, line,
						"footnote reference [^%s] has no definition", m[1])
				}
			}
		}
	}

	visit = func(nodes []document.Node) {
		for _, n := range nodes {
			switch v := n.(type) {
			case *document.Heading:
				visitRuns(v.Runs, v.Line)
			case *document.Paragraph:
				visitRuns(v.Runs, v.Line)
			case *document.List:
				for _, item := range v.Items {
					visit(item.Children)
				}
			case *document.Blockquote:
				visit(v.Children)
			case *document.Table:
				for _, cell := range v.Header {
					visitRuns([]document.Run(cell), v.Line)
				}
				for _, row := range v.Rows {
					for _, cell := range row {
						visitRuns([]document.Run(cell), v.Line)
					}
				}
			}
		}
	}
	visit(doc.Children)

	// Definition bodies may themselves carry references, and visiting one
	// can append further definitions; an index loop picks those up too.
	for i := 0; i < len(doc.Footnotes); i++ {
		visit(doc.Footnotes[i].Children)
	}
}

package assemble

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/shynneri-source/markdocx/internal/document"
	"github.com/shynneri-source/markdocx/internal/mathext"
)

// style is the effective formatting accumulated from enclosing spans.
type style struct {
	bold      bool
	italic    bool
	strike    bool
	highlight bool
}

func (s style) apply(r document.Run) document.Run {
	r.Bold = r.Bold || s.bold
	r.Italic = r.Italic || s.italic
	r.Strike = r.Strike || s.strike
	r.Highlight = r.Highlight || s.highlight
	return r
}

// composeRuns merges the inline children of one text-bearing block into an
// ordered run list. Adjacent plain-text tokens with identical formatting
// collapse into a single run. Run boundaries follow goldmark's token
// boundaries, so they never split a multi-byte character, and an
// unterminated delimiter arrives here as literal text rather than a span.
func (b *build) composeRuns(n ast.Node) []document.Run {
	var runs []document.Run
	b.collectRuns(n, style{}, &runs)
	return runs
}

func (b *build) collectRuns(n ast.Node, st style, out *[]document.Run) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			text := string(t.Segment.Value(b.source))
			b.appendText(out, text, st)
			switch {
			case t.HardLineBreak(), t.SoftLineBreak():
				// Newlines inside a paragraph are line breaks, matching
				// the hard-wrap behavior of the HTML preview.
				*out = append(*out, st.apply(document.Run{Kind: document.RunBreak}))
			}

		case *ast.String:
			b.appendText(out, string(t.Value), st)

		case *ast.Emphasis:
			sub := st
			if t.Level >= 2 {
				sub.bold = true
			} else {
				sub.italic = true
			}
			b.collectRuns(t, sub, out)

		case *extast.Strikethrough:
			sub := st
			sub.strike = true
			b.collectRuns(t, sub, out)

		case *ast.CodeSpan:
			*out = append(*out, st.apply(document.Run{
				Kind: document.RunCode,
				Text: flattenText(t, b.source),
			}))

		case *mathext.InlineMath:
			*out = append(*out, st.apply(document.Run{
				Kind: document.RunMath,
				Text: t.Expr,
			}))

		case *ast.Link:
			*out = append(*out, st.apply(document.Run{
				Kind:  document.RunLink,
				Text:  flattenText(t, b.source),
				Dest:  string(t.Destination),
				Title: string(t.Title),
			}))

		case *ast.AutoLink:
			url := string(t.URL(b.source))
			if t.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
				url = "mailto:" + url
			}
			*out = append(*out, st.apply(document.Run{
				Kind: document.RunLink,
				Text: string(t.Label(b.source)),
				Dest: url,
			}))

		case *ast.Image:
			*out = append(*out, st.apply(document.Run{
				Kind:  document.RunImage,
				Text:  flattenText(t, b.source),
				Dest:  string(t.Destination),
				Title: string(t.Title),
			}))

		case *extast.FootnoteLink:
			// Index is the definition index; display numbers are assigned
			// during footnote resolution after the full pass.
			*out = append(*out, document.Run{
				Kind:  document.RunFootnoteMark,
				Index: t.Index,
			})

		case *ast.RawHTML:
			b.rawHTML(t, &st, out)

		default:
			if c.HasChildren() {
				b.collectRuns(c, st, out)
			}
		}
	}
}

// rawHTML interprets the few inline HTML fragments the composer honors:
// <mark> toggles the highlight flag across following siblings, <br> becomes
// a break. Everything else is dropped, matching the no-raw-HTML policy of
// the preview renderer.
func (b *build) rawHTML(t *ast.RawHTML, st *style, out *[]document.Run) {
	var buf strings.Builder
	for i := 0; i < t.Segments.Len(); i++ {
		seg := t.Segments.At(i)
		buf.Write(seg.Value(b.source))
	}
	switch tag := strings.ToLower(strings.TrimSpace(buf.String())); tag {
	case "<mark>":
		st.highlight = true
	case "</mark>":
		st.highlight = false
	case "<br>", "<br/>", "<br />":
		*out = append(*out, document.Run{Kind: document.RunBreak})
	}
}

// appendText adds plain text, merging into the previous run when the style
// matches.
func (b *build) appendText(out *[]document.Run, text string, st style) {
	if text == "" {
		return
	}
	run := st.apply(document.Run{Kind: document.RunText, Text: text})
	if n := len(*out); n > 0 {
		last := &(*out)[n-1]
		if last.Kind == document.RunText && last.SameStyle(run) {
			last.Text += text
			return
		}
	}
	*out = append(*out, run)
}

// flattenText extracts the visible text beneath an inline node.
func flattenText(n ast.Node, source []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(flattenText(c, source))
		}
	}
	return buf.String()
}

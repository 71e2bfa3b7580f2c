// Package mathext extends goldmark with dollar math: $expr$ spans inline and
// $$expr$$ display blocks. The parsed expression is carried verbatim on the
// AST node; downstream consumers decide how to typeset it.
//
// An unterminated opening delimiter is not an error: the parser declines the
// span and the dollar sign falls through to goldmark as literal text.
package mathext

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	// KindInlineMath identifies inline $...$ spans.
	KindInlineMath = ast.NewNodeKind("InlineMath")

	// KindMathBlock identifies display $$...$$ blocks.
	KindMathBlock = ast.NewNodeKind("MathBlock")
)

// InlineMath is an inline math span. Display is true for $$...$$ written in
// inline position.
type InlineMath struct {
	ast.BaseInline
	Expr    string
	Display bool
}

func (n *InlineMath) Kind() ast.NodeKind { return KindInlineMath }

func (n *InlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Expr": n.Expr}, nil)
}

// MathBlock is a display math block.
type MathBlock struct {
	ast.BaseBlock
	Expr string
}

func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Expr": n.Expr}, nil)
}

func (n *MathBlock) IsRaw() bool { return true }

// inlineMathParser parses $...$ and $$...$$ in inline position.
type inlineMathParser struct{}

func (p *inlineMathParser) Trigger() []byte { return []byte{'$'} }

func (p *inlineMathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 {
		return nil
	}

	delim := 1
	if line[1] == '$' {
		delim = 2
	}
	if len(line) <= delim {
		return nil
	}

	closing := strings.Repeat("$", delim)
	end := strings.Index(string(line[delim:]), closing)
	if end < 0 {
		// No terminator on this line: decline so the dollar stays literal.
		return nil
	}
	expr := strings.TrimSpace(string(line[delim : delim+end]))
	if expr == "" {
		return nil
	}

	block.Advance(delim + end + delim)
	return &InlineMath{Expr: expr, Display: delim == 2}
}

// mathBlockParser parses display blocks opened by a line starting with $$.
type mathBlockParser struct{}

func (p *mathBlockParser) Trigger() []byte { return []byte{'$'} }

func (p *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	trimmed := strings.TrimSpace(string(line))
	if !strings.HasPrefix(trimmed, "$$") {
		return nil, parser.NoChildren
	}

	rest := strings.TrimPrefix(trimmed, "$$")

	// Single-line form: $$ expr $$
	if strings.HasSuffix(rest, "$$") && len(rest) >= 2 {
		expr := strings.TrimSpace(strings.TrimSuffix(rest, "$$"))
		if expr == "" {
			return nil, parser.NoChildren
		}
		reader.AdvanceLine()
		return &MathBlock{Expr: expr}, parser.NoChildren
	}

	var body []string
	if rest = strings.TrimSpace(rest); rest != "" {
		body = append(body, rest)
	}
	reader.AdvanceLine()

	for {
		nextLine, _ := reader.PeekLine()
		if len(nextLine) == 0 {
			break
		}
		raw := strings.TrimRight(string(nextLine), "\r\n")
		t := strings.TrimSpace(raw)
		if t == "$$" {
			reader.AdvanceLine()
			break
		}
		if strings.HasSuffix(t, "$$") {
			if inner := strings.TrimSpace(strings.TrimSuffix(t, "$$")); inner != "" {
				body = append(body, inner)
			}
			reader.AdvanceLine()
			break
		}
		body = append(body, raw)
		reader.AdvanceLine()
	}

	return &MathBlock{Expr: strings.TrimSpace(strings.Join(body, "\n"))}, parser.NoChildren
}

func (p *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (p *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *mathBlockParser) CanInterruptParagraph() bool { return true }

func (p *mathBlockParser) CanAcceptIndentedLine() bool { return false }

// htmlRenderer emits math nodes for the HTML preview surface. Expressions
// are escaped and wrapped in delimiter spans a browser-side typesetter (or a
// human) can read.
type htmlRenderer struct{}

func (r *htmlRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindInlineMath, r.renderInline)
	reg.Register(KindMathBlock, r.renderBlock)
}

func (r *htmlRenderer) renderInline(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*InlineMath)
	_, _ = w.WriteString(`<span class="math inline">\(`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Expr)))
	_, _ = w.WriteString(`\)</span>`)
	return ast.WalkSkipChildren, nil
}

func (r *htmlRenderer) renderBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MathBlock)
	_, _ = w.WriteString(`<div class="math display">\[`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Expr)))
	_, _ = w.WriteString(`\]</div>` + "\n")
	return ast.WalkSkipChildren, nil
}

// mathExtension wires the parsers and renderer into goldmark.
type mathExtension struct{}

// Math is the goldmark extension instance.
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			// Above the paragraph parser (priority 1000) so $$ lines open
			// math blocks rather than paragraphs.
			util.Prioritized(&mathBlockParser{}, 700),
		),
		parser.WithInlineParsers(
			util.Prioritized(&inlineMathParser{}, 500),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&htmlRenderer{}, 500),
		),
	)
}

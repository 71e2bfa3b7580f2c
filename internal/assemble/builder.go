package assemble

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/shynneri-source/markdocx/internal/document"
	"github.com/shynneri-source/markdocx/internal/geometry"
	"github.com/shynneri-source/markdocx/internal/mathext"
)

// Defaults for the structural ceilings. List nesting caps hard at six
// levels (deeper items flatten); workflow length is a soft warning only.
const (
	DefaultMaxListDepth     = 6
	DefaultMaxWorkflowSteps = geometry.DefaultMaxSteps
)

// Options tunes the structural ceilings of one build.
type Options struct {
	MaxListDepth     int
	MaxWorkflowSteps int
}

func (o Options) withDefaults() Options {
	if o.MaxListDepth <= 0 {
		o.MaxListDepth = DefaultMaxListDepth
	}
	if o.MaxWorkflowSteps <= 0 {
		o.MaxWorkflowSteps = DefaultMaxWorkflowSteps
	}
	return o
}

// build is the per-document assembly state. It is created fresh for every
// Build call and discarded afterwards; nothing is shared between documents.
type build struct {
	source []byte
	opts   Options

	warnings []document.Warning

	// Heading bookkeeping for the structural invariants.
	seenHeading bool
	seenH1      bool
	lastLevel   int

	// defs is the footnote side table built during phase one, keyed by the
	// tokenizer's definition index. Resolution happens in phase two, after
	// the full pass, so forward references always resolve.
	defs map[int]*document.Footnote
}

// Build walks the parsed block stream rooted at root and produces the
// document tree. It never fails: structural problems degrade to warnings
// and broken diagram blocks become placeholder nodes.
func Build(source []byte, root ast.Node, opts Options) *document.Document {
	b := &build{
		source: source,
		opts:   opts.withDefaults(),
		defs:   make(map[int]*document.Footnote),
	}

	doc := &document.Document{}
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		if node := b.buildBlock(c); node != nil {
			doc.Children = append(doc.Children, node)
		}
	}

	b.resolveFootnotes(doc)
	doc.Warnings = b.warnings
	return doc
}

func (b *build) warn(kind document.WarningKind, line int, format string, args ...any) {
	b.warnings = append(b.warnings, document.Warning{
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

// buildBlock constructs the document node for one classified block token.
// A nil return means the token contributes nothing (raw HTML blocks, blank
// footnote scaffolding).
func (b *build) buildBlock(n ast.Node) document.Node {
	cls := ClassifyBlock(n, b.source)
	line := lineOf(n, b.source)

	switch cls.Class {
	case ClassHeading:
		return b.buildHeading(n.(*ast.Heading), cls.HeadingLevel, line)

	case ClassParagraph:
		runs := b.composeRuns(n)
		if len(runs) == 0 {
			return nil
		}
		b.checkPipeParagraph(n, line)
		return &document.Paragraph{Base: document.Base{Line: line}, Runs: runs}

	case ClassImage:
		img := n.FirstChild().(*ast.Image)
		return &document.Image{
			Base:  document.Base{Line: line},
			Src:   string(img.Destination),
			Alt:   flattenText(img, b.source),
			Title: string(img.Title),
		}

	case ClassList:
		return b.buildList(n.(*ast.List), 0)

	case ClassTable:
		return b.buildTable(n.(*extast.Table), line)

	case ClassBlockquote:
		bq := &document.Blockquote{Base: document.Base{Line: line}}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if child := b.buildBlock(c); child != nil {
				bq.Children = append(bq.Children, child)
			}
		}
		return bq

	case ClassCode:
		return &document.CodeBlock{
			Base:     document.Base{Line: line},
			Language: cls.Language,
			Code:     blockText(n, b.source),
		}

	case ClassDiagram:
		return b.buildDiagram(cls.Diagram, blockText(n, b.source), line)

	case ClassMathBlock:
		return &document.MathBlock{
			Base: document.Base{Line: line},
			TeX:  n.(*mathext.MathBlock).Expr,
		}

	case ClassRule:
		return &document.Rule{Base: document.Base{Line: line}}

	case ClassFootnotes:
		b.collectFootnotes(n.(*extast.FootnoteList))
		return nil

	default:
		return nil
	}
}

// buildHeading records the heading-sequence invariants as warnings: the
// first heading must be level 1, only one level-1 heading may exist, and
// levels never increase by more than one.
func (b *build) buildHeading(h *ast.Heading, level, line int) document.Node {
	if level > 6 {
		level = 6
	}

	switch {
	case !b.seenHeading && level != 1:
		b.warn(document.WarnFirstHeadingLevel, line,
			"first heading is level %d, expected level 1", level)
	case b.seenHeading && level == 1 && b.seenH1:
		b.warn(document.WarnMultipleH1, line, "more than one level-1 heading")
	case b.seenHeading && level > b.lastLevel+1:
		b.warn(document.WarnHeadingSkip, line,
			"heading level jumps from %d to %d", b.lastLevel, level)
	}

	b.seenHeading = true
	if level == 1 {
		b.seenH1 = true
	}
	b.lastLevel = level

	return &document.Heading{
		Base:  document.Base{Line: line},
		Level: level,
		Runs:  b.composeRuns(h),
	}
}

// buildList assembles one list level. Depth is 0-based; nesting beyond the
// ceiling flattens to the ceiling with a warning instead of rejecting items.
func (b *build) buildList(n *ast.List, depth int) document.Node {
	effective := depth
	if effective >= b.opts.MaxListDepth {
		b.warn(document.WarnListDepth, lineOf(n, b.source),
			"list nesting depth %d exceeds maximum %d, flattening", depth, b.opts.MaxListDepth)
		effective = b.opts.MaxListDepth - 1
	}

	list := &document.List{
		Base:    document.Base{Line: lineOf(n, b.source)},
		Ordered: n.IsOrdered(),
		Depth:   effective,
	}

	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		li := &document.ListItem{}
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			var child document.Node
			if nested, ok := c.(*ast.List); ok {
				child = b.buildList(nested, depth+1)
			} else {
				child = b.buildBlock(c)
			}
			if child != nil {
				li.Children = append(li.Children, child)
			}
		}
		list.Items = append(list.Items, li)
	}
	return list
}

// buildTable assembles header, body, and per-column alignment. Every row is
// right-padded with empty cells to the widest row.
func (b *build) buildTable(t *extast.Table, line int) document.Node {
	table := &document.Table{Base: document.Base{Line: line}}

	for _, a := range t.Alignments {
		switch a {
		case extast.AlignCenter:
			table.Aligns = append(table.Aligns, document.AlignCenter)
		case extast.AlignRight:
			table.Aligns = append(table.Aligns, document.AlignRight)
		default:
			table.Aligns = append(table.Aligns, document.AlignLeft)
		}
	}

	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []document.Cell
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, document.Cell(b.composeRuns(cell)))
		}
		if _, ok := row.(*extast.TableHeader); ok {
			table.Header = cells
		} else {
			table.Rows = append(table.Rows, cells)
		}
	}

	padTable(table)
	return table
}

// padTable equalizes column counts across header and body rows.
func padTable(t *document.Table) {
	cols := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	pad := func(cells []document.Cell) []document.Cell {
		for len(cells) < cols {
			cells = append(cells, document.Cell{})
		}
		return cells
	}
	if t.Header != nil {
		t.Header = pad(t.Header)
	}
	for i := range t.Rows {
		t.Rows[i] = pad(t.Rows[i])
	}
	for len(t.Aligns) < cols {
		t.Aligns = append(t.Aligns, document.AlignLeft)
	}
}

// buildDiagram routes a fenced diagram body to its geometry parser. Parse
// errors never abort the pass: the node keeps the raw text and the error,
// and a warning records the failure. Recoverable errors keep the spec.
func (b *build) buildDiagram(kind geometry.Kind, raw string, line int) document.Node {
	spec, perr := geometry.Parse(kind, raw)
	node := &document.Diagram{
		Base:    document.Base{Line: line},
		Diagram: kind,
		Spec:    spec,
		Raw:     raw,
		Err:     perr,
	}
	if perr != nil {
		b.warn(document.WarnDiagramError, line, "%s", perr.Error())
	}
	if wf, ok := spec.(*geometry.WorkflowSpec); ok && len(wf.Steps) > b.opts.MaxWorkflowSteps {
		b.warn(document.WarnWorkflowSteps, line,
			"workflow has %d steps, soft maximum is %d", len(wf.Steps), b.opts.MaxWorkflowSteps)
	}
	return node
}

// checkPipeParagraph flags a paragraph that looks like a table whose second
// line was not a separator row. The table collapsed to plain text, which is
// graceful degradation, but the author probably wants to know.
func (b *build) checkPipeParagraph(n ast.Node, line int) {
	text := blockText(n, b.source)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return
	}
	if strings.HasPrefix(lines[0], "|") && strings.HasPrefix(strings.TrimSpace(lines[1]), "|") {
		b.warn(document.WarnMalformedTable, line,
			"pipe rows without a separator line collapse to a paragraph")
	}
}

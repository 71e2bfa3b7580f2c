package assemble

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/shynneri-source/markdocx/internal/document"
	"github.com/shynneri-source/markdocx/internal/mathext"
)

// newMarkdown builds the tokenizer stack. Tables, strikethrough, and
// footnotes come from the GFM extensions; dollar math is ours.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Footnote,
			mathext.Math,
		),
	)
}

// Parse tokenizes source and assembles the document tree in one call.
func Parse(source []byte, opts Options) *document.Document {
	md := newMarkdown()
	root := md.Parser().Parse(text.NewReader(source),
		parser.WithContext(parser.NewContext()))
	return Build(source, root, opts)
}

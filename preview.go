package markdocx

import (
	"bytes"
	"context"
	"fmt"
	stdhtml "html"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/shynneri-source/markdocx/internal/mathext"
)

// previewTemplate wraps Goldmark's fragment output in a complete HTML5
// document.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// htmlPreviewer abstracts Markdown to HTML preview rendering.
type htmlPreviewer interface {
	ToHTML(ctx context.Context, title, content string) (string, error)
}

// goldmarkPreviewer renders the HTML preview using goldmark (pure Go).
type goldmarkPreviewer struct {
	md goldmark.Markdown
}

// newGoldmarkPreviewer creates a goldmarkPreviewer with the same extension
// set the assembler parses with, plus chroma-backed code highlighting.
func newGoldmarkPreviewer() *goldmarkPreviewer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Footnote,
			mathext.Math,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &goldmarkPreviewer{md: md}
}

// ToHTML renders content as a standalone HTML5 document.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (p *goldmarkPreviewer) ToHTML(ctx context.Context, title, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := p.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLPreview, err)}
			return
		}
		if title == "" {
			title = "Document"
		}
		done <- result{html: fmt.Sprintf(previewTemplate, stdhtml.EscapeString(title), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

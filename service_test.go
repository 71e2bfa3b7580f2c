package markdocx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shynneri-source/markdocx/internal/document"
)

// Mock implementations for testing.

type mockPreprocessor struct {
	called bool
	input  string
	output string
}

func (m *mockPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	m.called = true
	m.input = content
	if m.output != "" {
		return m.output
	}
	return content
}

type mockPreviewer struct {
	called bool
	title  string
	input  string
	output string
	err    error
}

func (m *mockPreviewer) ToHTML(ctx context.Context, title, content string) (string, error) {
	m.called = true
	m.title = title
	m.input = content
	if m.err != nil {
		return "", m.err
	}
	if m.output != "" {
		return m.output, nil
	}
	return "<html>" + content + "</html>", nil
}

func TestConvertProducesDocx(t *testing.T) {
	t.Parallel()

	svc := New()
	result, err := svc.Convert(context.Background(), Input{
		Markdown: "# Hello\n\nSome **bold** text.\n",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !bytes.HasPrefix(result.DOCX, []byte("PK")) {
		t.Error("DOCX output is not a zip archive")
	}
	if result.Document == nil {
		t.Fatal("Document is nil")
	}
	if len(result.Document.Children) != 2 {
		t.Errorf("document has %d children, want 2", len(result.Document.Children))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestConvertDocxContainsText(t *testing.T) {
	t.Parallel()

	svc := New()
	result, err := svc.Convert(context.Background(), Input{
		Markdown: "# Quarterly Numbers\n",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	doc := readArchivePart(t, result.DOCX, "word/document.xml")
	if !strings.Contains(doc, "Quarterly Numbers") {
		t.Error("document.xml missing heading text")
	}
}

func TestConvertEmptyMarkdown(t *testing.T) {
	t.Parallel()

	svc := New()
	_, err := svc.Convert(context.Background(), Input{})
	if !errors.Is(err, ErrEmptyMarkdown) {
		t.Errorf("error = %v, want ErrEmptyMarkdown", err)
	}
}

func TestConvertFrontMatter(t *testing.T) {
	t.Parallel()

	md := "---\ntitle: Report\nauthor: Ana\ndate: 2026-02-01\n---\n# Body\n"

	t.Run("meta from front matter", func(t *testing.T) {
		t.Parallel()

		svc := New()
		result, err := svc.Convert(context.Background(), Input{Markdown: md})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		want := Meta{Title: "Report", Author: "Ana", Date: "2026-02-01"}
		if result.Meta != want {
			t.Errorf("Meta = %+v, want %+v", result.Meta, want)
		}

		core := readArchivePart(t, result.DOCX, "docProps/core.xml")
		if !strings.Contains(core, "Report") || !strings.Contains(core, "Ana") {
			t.Error("core.xml missing front matter metadata")
		}
	})

	t.Run("input overrides win", func(t *testing.T) {
		t.Parallel()

		svc := New()
		result, err := svc.Convert(context.Background(), Input{
			Markdown: md,
			Title:    "Final Report",
			Author:   "Ben",
		})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if result.Meta.Title != "Final Report" || result.Meta.Author != "Ben" {
			t.Errorf("Meta = %+v, want overridden title and author", result.Meta)
		}
	})

	t.Run("date and subject reach core properties", func(t *testing.T) {
		t.Parallel()

		svc := New()
		result, err := svc.Convert(context.Background(), Input{
			Markdown: "---\ndate: 2026-02-01\nsubject: Quarterly review\n---\n# Body\n",
		})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}

		core := readArchivePart(t, result.DOCX, "docProps/core.xml")
		if !strings.Contains(core, "2026-02-01T00:00:00Z") {
			t.Error("core.xml missing front matter date as creation stamp")
		}
		if !strings.Contains(core, "<dc:subject>Quarterly review</dc:subject>") {
			t.Error("core.xml missing subject")
		}
	})

	t.Run("invalid front matter", func(t *testing.T) {
		t.Parallel()

		svc := New()
		_, err := svc.Convert(context.Background(), Input{
			Markdown: "---\ntitle: [broken\n---\nBody.\n",
		})
		if !errors.Is(err, ErrFrontMatter) {
			t.Errorf("error = %v, want ErrFrontMatter", err)
		}
	})
}

func TestConvertCollectsWarnings(t *testing.T) {
	t.Parallel()

	svc := New()
	result, err := svc.Convert(context.Background(), Input{
		Markdown: "# Title\n\n#### Jumped\n",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a heading skip warning")
	}
}

func TestConvertHighlightBecomesRun(t *testing.T) {
	t.Parallel()

	svc := New()
	result, err := svc.Convert(context.Background(), Input{
		Markdown: "Some ==marked== text.\n",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	para, ok := result.Document.Children[0].(*document.Paragraph)
	if !ok {
		t.Fatalf("first child is %T, want *document.Paragraph", result.Document.Children[0])
	}
	var found bool
	for _, r := range para.Runs {
		if r.Highlight && r.Text == "marked" {
			found = true
		}
	}
	if !found {
		t.Error("no highlighted run for ==marked==")
	}
}

func TestConvertCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := New()
	_, err := svc.Convert(ctx, Input{Markdown: "# Hi\n"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestConvertUsesPreprocessor(t *testing.T) {
	t.Parallel()

	pre := &mockPreprocessor{output: "# Replaced\n"}
	svc := New()
	svc.preprocessor = pre

	result, err := svc.Convert(context.Background(), Input{Markdown: "# Original\n"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !pre.called {
		t.Error("preprocessor was not called")
	}
	h, ok := result.Document.Children[0].(*document.Heading)
	if !ok || document.PlainText(h.Runs) != "Replaced" {
		t.Error("preprocessor output was not assembled")
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	t.Run("renders standalone HTML", func(t *testing.T) {
		t.Parallel()

		svc := New()
		html, err := svc.Preview(context.Background(), Input{
			Markdown: "---\ntitle: Demo\n---\n# Hello\n\n```go\nfunc main() {}\n```\n",
		})
		if err != nil {
			t.Fatalf("Preview() error = %v", err)
		}
		for _, want := range []string{"<!DOCTYPE html>", "<title>Demo</title>", "<h1", "Hello"} {
			if !strings.Contains(html, want) {
				t.Errorf("preview missing %q", want)
			}
		}
	})

	t.Run("empty markdown", func(t *testing.T) {
		t.Parallel()

		svc := New()
		_, err := svc.Preview(context.Background(), Input{})
		if !errors.Is(err, ErrEmptyMarkdown) {
			t.Errorf("error = %v, want ErrEmptyMarkdown", err)
		}
	})

	t.Run("uses previewer collaborator", func(t *testing.T) {
		t.Parallel()

		pv := &mockPreviewer{output: "<html>ok</html>"}
		svc := New()
		svc.previewer = pv

		got, err := svc.Preview(context.Background(), Input{
			Markdown: "---\ntitle: T\n---\nBody.\n",
		})
		if err != nil {
			t.Fatalf("Preview() error = %v", err)
		}
		if got != "<html>ok</html>" || pv.title != "T" {
			t.Errorf("previewer not wired: got %q, title %q", got, pv.title)
		}
	})
}

func TestConvertTimeout(t *testing.T) {
	t.Parallel()

	svc := New(WithTimeout(time.Nanosecond))
	_, err := svc.Convert(context.Background(), Input{Markdown: "# Hi\n"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

// readArchivePart reopens the zip output and returns one part's content.
func readArchivePart(t *testing.T, data []byte, name string) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		return string(content)
	}
	t.Fatalf("archive missing part %s", name)
	return ""
}

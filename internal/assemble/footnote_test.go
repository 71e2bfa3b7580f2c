package assemble

import (
	"strings"
	"testing"

	"github.com/shynneri-source/markdocx/internal/document"
)

func marksOf(doc *document.Document) []int {
	var indexes []int
	var visit func(nodes []document.Node)
	visit = func(nodes []document.Node) {
		for _, n := range nodes {
			switch v := n.(type) {
			case *document.Paragraph:
				for _, r := range v.Runs {
					if r.Kind == document.RunFootnoteMark {
						indexes = append(indexes, r.Index)
					}
				}
			case *document.Blockquote:
				visit(v.Children)
			}
		}
	}
	visit(doc.Children)
	return indexes
}

func TestFootnotesNumberedByFirstReference(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"First[^beta] then[^alpha] then beta again[^beta].",
		"",
		"[^alpha]: Alpha body.",
		"[^beta]: Beta body.",
	}, "\n") + "\n"

	doc := parse(t, src)

	if got := marksOf(doc); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 1 {
		t.Fatalf("mark indexes = %v, want [1 2 1]", got)
	}

	if len(doc.Footnotes) != 2 {
		t.Fatalf("footnotes = %d, want 2", len(doc.Footnotes))
	}
	if doc.Footnotes[0].Label != "beta" || doc.Footnotes[0].Index != 1 {
		t.Errorf("footnote[0] = %q/%d, want beta/1", doc.Footnotes[0].Label, doc.Footnotes[0].Index)
	}
	if doc.Footnotes[1].Label != "alpha" || doc.Footnotes[1].Index != 2 {
		t.Errorf("footnote[1] = %q/%d, want alpha/2", doc.Footnotes[1].Label, doc.Footnotes[1].Index)
	}
	if got := document.PlainText(doc.Footnotes[0].Children[0].(*document.Paragraph).Runs); got != "Beta body." {
		t.Errorf("footnote[0] body = %q", got)
	}
}

func TestForwardFootnoteReferenceResolves(t *testing.T) {
	t.Parallel()

	src := "Text[^later].\n\n[^later]: Defined after use.\n"
	doc := parse(t, src)

	if got := marksOf(doc); len(got) != 1 || got[0] != 1 {
		t.Fatalf("mark indexes = %v, want [1]", got)
	}
	if hasWarning(doc, document.WarnUnresolvedFootnote) {
		t.Errorf("unexpected unresolved warning: %v", doc.Warnings)
	}
}

func TestChainedFootnoteReferencesResolve(t *testing.T) {
	t.Parallel()

	// outer's body references middle, and middle's body references inner.
	// Both are first referenced from inside other footnote bodies, so their
	// marks resolve only while walking definitions appended mid-pass.
	src := strings.Join([]string{
		"Text[^outer].",
		"",
		"[^outer]: Outer body[^middle].",
		"[^middle]: Middle body[^inner].",
		"[^inner]: Inner body.",
	}, "\n") + "\n"

	doc := parse(t, src)

	if len(doc.Footnotes) != 3 {
		t.Fatalf("footnotes = %d, want 3", len(doc.Footnotes))
	}
	for i, want := range []string{"outer", "middle", "inner"} {
		def := doc.Footnotes[i]
		if def.Label != want || def.Index != i+1 {
			t.Errorf("footnote[%d] = %q/%d, want %s/%d", i, def.Label, def.Index, want, i+1)
		}
	}

	// The mark inside middle's body must carry inner's display number, not
	// the tokenizer index.
	middle := doc.Footnotes[1].Children[0].(*document.Paragraph)
	var marks []int
	for _, r := range middle.Runs {
		if r.Kind == document.RunFootnoteMark {
			marks = append(marks, r.Index)
		}
	}
	if len(marks) != 1 || marks[0] != 3 {
		t.Errorf("middle body marks = %v, want [3]", marks)
	}
}

func TestUnresolvedFootnoteStaysLiteral(t *testing.T) {
	t.Parallel()

	doc := parse(t, "Text[^missing] more.\n")

	p := doc.Children[0].(*document.Paragraph)
	if got := document.PlainText(p.Runs); !strings.Contains(got, "[^missing]") {
		t.Errorf("plain text = %q, want literal reference", got)
	}
	if !hasWarning(doc, document.WarnUnresolvedFootnote) {
		t.Errorf("warnings = %v, want unresolved footnote", warningKinds(doc))
	}
	if len(doc.Footnotes) != 0 {
		t.Errorf("footnotes = %d, want 0", len(doc.Footnotes))
	}
}

func TestUnreferencedDefinitionIsDropped(t *testing.T) {
	t.Parallel()

	src := "Text[^used].\n\n[^used]: Used.\n[^orphan]: Never referenced.\n"
	doc := parse(t, src)

	if len(doc.Footnotes) != 1 {
		t.Fatalf("footnotes = %d, want 1", len(doc.Footnotes))
	}
	if doc.Footnotes[0].Label != "used" {
		t.Errorf("footnote label = %q, want used", doc.Footnotes[0].Label)
	}
}

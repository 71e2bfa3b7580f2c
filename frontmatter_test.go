package markdocx

import (
	"errors"
	"testing"
)

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantMeta Meta
		wantBody string
	}{
		{
			name:     "no front matter",
			input:    "# Title\n\nBody.\n",
			wantMeta: Meta{},
			wantBody: "# Title\n\nBody.\n",
		},
		{
			name:     "title and author",
			input:    "---\ntitle: Report\nauthor: Ana\n---\n# Title\n",
			wantMeta: Meta{Title: "Report", Author: "Ana"},
			wantBody: "# Title\n",
		},
		{
			name:     "date and subject",
			input:    "---\ndate: 2026-01-15\nsubject: QA\n---\nBody.\n",
			wantMeta: Meta{Date: "2026-01-15", Subject: "QA"},
			wantBody: "Body.\n",
		},
		{
			name:     "unknown keys ignored",
			input:    "---\ntitle: Report\ntags: [a, b]\n---\nBody.\n",
			wantMeta: Meta{Title: "Report"},
			wantBody: "Body.\n",
		},
		{
			name:     "empty block",
			input:    "---\n---\nBody.\n",
			wantMeta: Meta{},
			wantBody: "Body.\n",
		},
		{
			name:     "closing delimiter at EOF",
			input:    "---\ntitle: Report\n---",
			wantMeta: Meta{Title: "Report"},
			wantBody: "",
		},
		{
			name:     "unterminated block is body",
			input:    "---\ntitle: Report\n\nBody.\n",
			wantMeta: Meta{},
			wantBody: "---\ntitle: Report\n\nBody.\n",
		},
		{
			name:     "delimiter not on first line is body",
			input:    "Text.\n---\ntitle: Report\n---\n",
			wantMeta: Meta{},
			wantBody: "Text.\n---\ntitle: Report\n---\n",
		},
		{
			name:     "thematic break later in body survives",
			input:    "---\ntitle: Report\n---\nAbove.\n\n---\n\nBelow.\n",
			wantMeta: Meta{Title: "Report"},
			wantBody: "Above.\n\n---\n\nBelow.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, body, err := splitFrontMatter(tt.input)
			if err != nil {
				t.Fatalf("splitFrontMatter() error = %v", err)
			}
			if meta != tt.wantMeta {
				t.Errorf("meta = %+v, want %+v", meta, tt.wantMeta)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestSplitFrontMatterInvalidYAML(t *testing.T) {
	t.Parallel()

	_, _, err := splitFrontMatter("---\ntitle: [unclosed\n---\nBody.\n")
	if !errors.Is(err, ErrFrontMatter) {
		t.Errorf("error = %v, want ErrFrontMatter", err)
	}
}

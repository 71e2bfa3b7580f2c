package highlight

import (
	"strings"
	"testing"
)

func joined(frags []Fragment) string {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

func TestHighlightPreservesSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		language string
	}{
		{name: "go", code: "package main\n\nfunc main() {}\n", language: "go"},
		{name: "python", code: "def f(x):\n    return x + 1\n", language: "python"},
		{name: "alias sh", code: "echo hello\n", language: "sh"},
		{name: "unknown language", code: "whatever text\n", language: "nosuchlang"},
		{name: "empty tag", code: "plain\n", language: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			frags := Highlight(tt.code, tt.language)
			if got := joined(frags); got != tt.code {
				t.Errorf("concatenated fragments = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestHighlightColorsKeywords(t *testing.T) {
	t.Parallel()

	frags := Highlight("func main() {}\n", "go")
	var keywordColor string
	for _, f := range frags {
		if strings.TrimSpace(f.Text) == "func" {
			keywordColor = f.Color
		}
	}
	if keywordColor != "0000CC" {
		t.Errorf("keyword color = %q, want 0000CC", keywordColor)
	}
}

func TestUnknownLanguageIsUncolored(t *testing.T) {
	t.Parallel()

	for _, f := range Highlight("some text\n", "definitely-not-a-language") {
		if f.Color != "" {
			t.Errorf("fragment %q has color %q, want none", f.Text, f.Color)
		}
	}
}

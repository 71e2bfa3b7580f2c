package main

import (
	"fmt"
	"os"
	"testing"

	markdocx "github.com/shynneri-source/markdocx"
	"github.com/shynneri-source/markdocx/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write docx", fmt.Errorf("saving: %w", ErrWriteDocx), ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"file missing", os.ErrNotExist, ExitIO},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config invalid", config.ErrConfigInvalid, ExitUsage},
		{"empty markdown", markdocx.ErrEmptyMarkdown, ExitUsage},
		{"front matter", markdocx.ErrFrontMatter, ExitUsage},
		{"bad extension", ErrInvalidExtension, ExitUsage},
		{"bad workers", ErrInvalidWorkerCount, ExitUsage},
		{"bad timeout", ErrInvalidTimeout, ExitUsage},
		{"unknown error", fmt.Errorf("surprise"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

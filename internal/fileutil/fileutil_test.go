package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shynneri-source/markdocx/internal/fileutil"
)

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "present.yaml")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists() = false for existing file")
	}
	if fileutil.FileExists(filepath.Join(dir, "absent.yaml")) {
		t.Error("FileExists() = true for missing file")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists() = true for directory")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"default", false},
		{"my-config", false},
		{"./custom.yaml", true},
		{"../shared/team.yaml", true},
		{"/absolute/path.yaml", true},
		{`C:\windows\path.yaml`, true},
		{"sub/dir", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com/logo.png", true},
		{"http://example.com/logo.png", true},
		{"file:///tmp/logo.png", true},
		{"images/logo.png", false},
		{"/var/images/logo.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsURL(tt.input); got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

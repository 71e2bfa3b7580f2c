package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
input:
  defaultDir: docs
  recursive: true
output:
  defaultDir: out
document:
  title: Handbook
  author: Ana
  date: "2026-03-01"
limits:
  maxListDepth: 4
  maxWorkflowSteps: 10
  imageMaxWidth: 5.5
preview:
  html: true
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "docs" || !cfg.Input.Recursive {
			t.Errorf("input = %+v", cfg.Input)
		}
		if cfg.Document.Title != "Handbook" || cfg.Document.Date != "2026-03-01" {
			t.Errorf("document = %+v", cfg.Document)
		}
		if cfg.Limits.MaxListDepth != 4 || cfg.Limits.ImageMaxWidth != 5.5 {
			t.Errorf("limits = %+v", cfg.Limits)
		}
		if !cfg.Preview.HTML {
			t.Error("preview.html not set")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "outpot:\n  defaultDir: out\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "output: [\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "zero config valid",
			cfg:  Config{},
		},
		{
			name: "limits within range",
			cfg:  Config{Limits: LimitsConfig{MaxListDepth: 9, MaxWorkflowSteps: 32, ImageMaxWidth: 7}},
		},
		{
			name:    "list depth too large",
			cfg:     Config{Limits: LimitsConfig{MaxListDepth: 10}},
			wantErr: true,
		},
		{
			name:    "workflow steps too large",
			cfg:     Config{Limits: LimitsConfig{MaxWorkflowSteps: 33}},
			wantErr: true,
		},
		{
			name:    "image width too large",
			cfg:     Config{Limits: LimitsConfig{ImageMaxWidth: 8}},
			wantErr: true,
		},
		{
			name:    "bad date format",
			cfg:     Config{Document: DocumentConfig{Date: "03/01/2026"}},
			wantErr: true,
		},
		{
			name: "valid date",
			cfg:  Config{Document: DocumentConfig{Date: "2026-03-01"}},
		},
		{
			name: "auto date",
			cfg:  Config{Document: DocumentConfig{Date: "auto:MMMM D, YYYY"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfigInvalid) {
				t.Errorf("error = %v, want ErrConfigInvalid", err)
			}
		})
	}
}

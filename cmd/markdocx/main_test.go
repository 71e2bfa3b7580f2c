package main

import (
	"strings"
	"testing"
)

func TestRunDispatch(t *testing.T) {
	t.Parallel()

	t.Run("no args prints usage", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps()
		if code := run(nil, deps); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "Usage: markdocx") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps()
		if code := run([]string{"version"}, deps); code != ExitSuccess {
			t.Errorf("exit = %d, want 0", code)
		}
		if !strings.Contains(stdout.String(), "markdocx") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps()
		if code := run([]string{"transmogrify"}, deps); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "Unknown command") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("help convert", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps()
		if code := run([]string{"help", "convert"}, deps); code != ExitSuccess {
			t.Errorf("exit = %d, want 0", code)
		}
		if !strings.Contains(stdout.String(), "markdocx convert") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})
}

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	flags, positional, err := parseConvertFlags([]string{
		"docs", "-o", "out", "-r", "-w", "4",
		"--doc-title", "Handbook",
		"--max-list-depth", "3",
		"--html-preview",
	})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}
	if len(positional) != 1 || positional[0] != "docs" {
		t.Errorf("positional = %v", positional)
	}
	if flags.output != "out" || !flags.recursive || flags.workers != 4 {
		t.Errorf("flags = %+v", flags)
	}
	if flags.document.title != "Handbook" || flags.limits.maxListDepth != 3 {
		t.Errorf("flags = %+v", flags)
	}
	if !flags.htmlPreview {
		t.Error("htmlPreview not set")
	}
}

func TestParseConvertFlagsUnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := parseConvertFlags([]string{"--no-such-flag"})
	if err == nil {
		t.Error("expected error for unknown flag")
	}
}

package hints

import (
	"strings"
	"testing"
)

func TestForTimeout(t *testing.T) {
	t.Parallel()

	hint := ForTimeout()

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("expected hint prefix, got %q", hint)
	}
	if !strings.Contains(hint, "--timeout") {
		t.Error("expected --timeout suggestion")
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	t.Run("suggests user config path when searched", func(t *testing.T) {
		t.Parallel()

		hint := ForConfigNotFound([]string{
			"/tmp/work/settings.yaml",
			"/home/user/.config/markdocx/settings.yaml",
		})

		if !strings.Contains(hint, "--config") {
			t.Error("expected --config suggestion")
		}
		if !strings.Contains(hint, "/home/user/.config/markdocx/settings.yaml") {
			t.Errorf("expected user config path in hint, got %q", hint)
		}
	})

	t.Run("without user config path", func(t *testing.T) {
		t.Parallel()

		hint := ForConfigNotFound([]string{"/tmp/work/settings.yaml"})

		if !strings.Contains(hint, "--config") {
			t.Error("expected --config suggestion")
		}
		if strings.Contains(hint, "create") {
			t.Errorf("expected no create suggestion, got %q", hint)
		}
	})

	t.Run("nil searched paths", func(t *testing.T) {
		t.Parallel()

		hint := ForConfigNotFound(nil)

		if !strings.Contains(hint, "--config") {
			t.Error("expected --config suggestion")
		}
	})
}

func TestForOutputDirectory(t *testing.T) {
	t.Parallel()

	hint := ForOutputDirectory()

	if !strings.Contains(hint, "writable") {
		t.Errorf("expected writability hint, got %q", hint)
	}
}

func TestForNoInput(t *testing.T) {
	t.Parallel()

	hint := ForNoInput()

	if !strings.Contains(hint, "input.defaultDir") {
		t.Errorf("expected config key suggestion, got %q", hint)
	}
}

func TestFormatEmpty(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("expected empty string for empty hint, got %q", got)
	}
}

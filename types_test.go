package markdocx

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	svc := New()
	if svc.cfg.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", svc.cfg.timeout, defaultTimeout)
	}
	if svc.cfg.maxListDepth != DefaultMaxListDepth {
		t.Errorf("maxListDepth = %d, want %d", svc.cfg.maxListDepth, DefaultMaxListDepth)
	}
	if svc.cfg.maxWorkflowSteps != DefaultMaxWorkflowSteps {
		t.Errorf("maxWorkflowSteps = %d, want %d", svc.cfg.maxWorkflowSteps, DefaultMaxWorkflowSteps)
	}
	if svc.cfg.imageMaxWidth != DefaultImageMaxWidth {
		t.Errorf("imageMaxWidth = %v, want %v", svc.cfg.imageMaxWidth, DefaultImageMaxWidth)
	}
}

func TestOptionsApply(t *testing.T) {
	t.Parallel()

	svc := New(
		WithTimeout(time.Minute),
		WithMaxListDepth(3),
		WithMaxWorkflowSteps(12),
		WithImageMaxWidth(5.5),
	)
	if svc.cfg.timeout != time.Minute {
		t.Errorf("timeout = %v, want 1m", svc.cfg.timeout)
	}
	if svc.cfg.maxListDepth != 3 {
		t.Errorf("maxListDepth = %d, want 3", svc.cfg.maxListDepth)
	}
	if svc.cfg.maxWorkflowSteps != 12 {
		t.Errorf("maxWorkflowSteps = %d, want 12", svc.cfg.maxWorkflowSteps)
	}
	if svc.cfg.imageMaxWidth != 5.5 {
		t.Errorf("imageMaxWidth = %v, want 5.5", svc.cfg.imageMaxWidth)
	}
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call func()
	}{
		{"zero timeout", func() { WithTimeout(0) }},
		{"negative timeout", func() { WithTimeout(-time.Second) }},
		{"zero list depth", func() { WithMaxListDepth(0) }},
		{"zero workflow steps", func() { WithMaxWorkflowSteps(0) }},
		{"zero image width", func() { WithImageMaxWidth(0) }},
		{"negative image width", func() { WithImageMaxWidth(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic")
				}
			}()
			tt.call()
		})
	}
}

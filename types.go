package markdocx

import (
	"time"

	"github.com/shynneri-source/markdocx/internal/document"
)

// Structural limit defaults. Deeper lists flatten and longer workflows warn
// rather than fail.
const (
	DefaultMaxListDepth     = 6
	DefaultMaxWorkflowSteps = 8
	DefaultImageMaxWidth    = 6.0 // inches
)

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Input contains conversion parameters.
type Input struct {
	Markdown  string // Markdown content (required)
	SourceDir string // Directory relative image paths resolve against (optional)
	Title     string // Overrides the front matter title (optional)
	Author    string // Overrides the front matter author (optional)
	Date      string // Overrides the front matter date, YYYY-MM-DD (optional)
}

// Meta holds document metadata parsed from YAML front matter.
// Unknown front matter keys are ignored.
type Meta struct {
	Title   string `yaml:"title"`
	Author  string `yaml:"author"`
	Date    string `yaml:"date"`
	Subject string `yaml:"subject"`
}

// Result carries the conversion outputs.
type Result struct {
	DOCX     []byte             // the serialized .docx package
	Document *document.Document // the assembled tree, for inspection
	Warnings []document.Warning // structural notices, never fatal
	Meta     Meta               // front matter metadata, with Input overrides applied
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout          time.Duration
	maxListDepth     int
	maxWorkflowSteps int
	imageMaxWidth    float64
}

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("markdocx: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithMaxListDepth sets the nesting level past which list items flatten.
// Panics if depth < 1.
func WithMaxListDepth(depth int) Option {
	if depth < 1 {
		panic("markdocx: WithMaxListDepth depth must be at least 1")
	}
	return func(s *Service) {
		s.cfg.maxListDepth = depth
	}
}

// WithMaxWorkflowSteps sets the step count past which workflow diagrams warn.
// Panics if n < 1.
func WithMaxWorkflowSteps(n int) Option {
	if n < 1 {
		panic("markdocx: WithMaxWorkflowSteps count must be at least 1")
	}
	return func(s *Service) {
		s.cfg.maxWorkflowSteps = n
	}
}

// WithImageMaxWidth caps embedded image width in inches.
// Panics if inches <= 0.
func WithImageMaxWidth(inches float64) Option {
	if inches <= 0 {
		panic("markdocx: WithImageMaxWidth width must be positive")
	}
	return func(s *Service) {
		s.cfg.imageMaxWidth = inches
	}
}

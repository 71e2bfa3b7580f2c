package markdocx

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shynneri-source/markdocx/internal/assemble"
	"github.com/shynneri-source/markdocx/internal/docx"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ markdownPreprocessor = (*commonMarkPreprocessor)(nil)
	_ htmlPreviewer        = (*goldmarkPreviewer)(nil)
)

// Service orchestrates the markdown-to-DOCX assembly pipeline.
// Create with New(), use Convert() for conversion. A Service keeps no state
// between calls and is safe for concurrent use.
type Service struct {
	cfg          serviceConfig
	preprocessor markdownPreprocessor
	previewer    htmlPreviewer
	now          func() time.Time
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithMaxListDepth).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:          defaultTimeout,
			maxListDepth:     DefaultMaxListDepth,
			maxWorkflowSteps: DefaultMaxWorkflowSteps,
			imageMaxWidth:    DefaultImageMaxWidth,
		},
		preprocessor: &commonMarkPreprocessor{},
		previewer:    newGoldmarkPreviewer(),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Convert runs the full pipeline and returns the result containing the DOCX
// bytes, the assembled document tree, and any structural warnings.
// The context is used for cancellation; the configured timeout bounds the
// whole conversion.
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (s *Service) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	// Preprocess markdown
	mdContent := s.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Split YAML front matter
	meta, body, err := splitFrontMatter(mdContent)
	if err != nil {
		return nil, err
	}
	meta = applyOverrides(meta, input)

	// Assemble the document tree. Assembly never fails; malformed
	// structures degrade to warnings on the tree.
	doc := assemble.Parse([]byte(body), assemble.Options{
		MaxListDepth:     s.cfg.maxListDepth,
		MaxWorkflowSteps: s.cfg.maxWorkflowSteps,
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Serialize to DOCX
	var buf bytes.Buffer
	// A parseable front matter date becomes the creation stamp; anything
	// else leaves the wall clock in place.
	created := s.now()
	if meta.Date != "" {
		if t, err := time.Parse("2006-01-02", meta.Date); err == nil {
			created = t
		}
	}

	writeOpts := docx.Options{
		Title:         meta.Title,
		Author:        meta.Author,
		Subject:       meta.Subject,
		BaseDir:       input.SourceDir,
		Created:       created,
		MaxImageWidth: s.cfg.imageMaxWidth,
	}
	if err := docx.Write(&buf, doc, writeOpts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxGeneration, err)
	}

	return &Result{
		DOCX:     buf.Bytes(),
		Document: doc,
		Warnings: doc.Warnings,
		Meta:     meta,
	}, nil
}

// Preview renders input as a standalone HTML document. It shares the
// preprocessing and front matter stages with Convert and exists as a fast
// inspection surface for conversion output.
func (s *Service) Preview(ctx context.Context, input Input) (string, error) {
	if err := s.validateInput(input); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	mdContent := s.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	meta, body, err := splitFrontMatter(mdContent)
	if err != nil {
		return "", err
	}
	meta = applyOverrides(meta, input)

	return s.previewer.ToHTML(ctx, meta.Title, body)
}

// validateInput checks that required fields are present.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually. CLI users have their input validated earlier at config load
// time. Both paths converge here.
func (s *Service) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	return nil
}

// applyOverrides lets explicit Input fields win over front matter values.
func applyOverrides(meta Meta, input Input) Meta {
	if input.Title != "" {
		meta.Title = input.Title
	}
	if input.Author != "" {
		meta.Author = input.Author
	}
	if input.Date != "" {
		meta.Date = input.Date
	}
	return meta
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	markdocx "github.com/shynneri-source/markdocx"
	"github.com/shynneri-source/markdocx/internal/config"
	"github.com/shynneri-source/markdocx/internal/dateutil"
	"github.com/shynneri-source/markdocx/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrWriteDocx      = errors.New("failed to write DOCX file")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input markdocx.Input) (*markdocx.Result, error)
	Preview(ctx context.Context, input markdocx.Input) (string, error)
}

// Compile-time interface implementation check.
var _ Converter = (*markdocx.Service)(nil)

// conversionParams groups parameters shared across batch conversion.
type conversionParams struct {
	title       string
	author      string
	date        string
	htmlPreview bool
	workers     int
}

// runConvertCommand parses flags, runs the conversion, and maps the outcome
// to an exit code.
func runConvertCommand(args []string, deps *Dependencies) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		fmt.Fprintln(deps.Stderr, err)
		return ExitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed, err := runConvert(ctx, positional, flags, deps)
	if err != nil {
		fmt.Fprintln(deps.Stderr, err.Error()+hintFor(err))
		return exitCodeFor(err)
	}
	if failed > 0 {
		return ExitGeneral
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process. It returns the count of
// failed files; a non-nil error means the batch never started.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, deps *Dependencies) (int, error) {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return 0, err
	}

	// Load configuration
	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return 0, fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return 0, err
	}

	// Resolve output directory
	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	recursive := flags.recursive || cfg.Input.Recursive
	files, err := discoverFiles(inputPath, outputDir, recursive)
	if err != nil {
		return 0, fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("%w: no markdown files in %s", ErrNoInput, inputPath)
	}

	opts, err := serviceOptions(flags, cfg)
	if err != nil {
		return 0, err
	}
	svc := markdocx.New(opts...)

	// "auto" and "auto:FORMAT" resolve against the current date; explicit
	// values pass through unchanged.
	date, err := dateutil.ResolveDate(cfg.Document.Date, deps.Now())
	if err != nil {
		return 0, fmt.Errorf("resolving document date: %w", err)
	}

	params := &conversionParams{
		title:       cfg.Document.Title,
		author:      cfg.Document.Author,
		date:        date,
		htmlPreview: flags.htmlPreview || cfg.Preview.HTML,
		workers:     resolveWorkers(flags.workers),
	}
	if flags.common.verbose {
		fmt.Fprintf(deps.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), params.workers)
	}

	results := convertBatch(ctx, svc, files, params)
	return printResults(results, flags.common.quiet, flags.common.verbose, deps), nil
}

// hintFor returns an actionable hint for known failures, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrNoInput):
		return hints.ForNoInput()
	default:
		return ""
	}
}

// mergeFlags merges CLI flag values into the config. CLI values win.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.author != "" {
		cfg.Document.Author = flags.document.author
	}
	if flags.document.date != "" {
		cfg.Document.Date = flags.document.date
	}
	if flags.limits.maxListDepth != 0 {
		cfg.Limits.MaxListDepth = flags.limits.maxListDepth
	}
	if flags.limits.maxWorkflowSteps != 0 {
		cfg.Limits.MaxWorkflowSteps = flags.limits.maxWorkflowSteps
	}
	if flags.limits.imageMaxWidth != 0 {
		cfg.Limits.ImageMaxWidth = flags.limits.imageMaxWidth
	}
}

// serviceOptions translates config and flags into library options.
func serviceOptions(flags *convertFlags, cfg *config.Config) ([]markdocx.Option, error) {
	var opts []markdocx.Option
	if cfg.Limits.MaxListDepth > 0 {
		opts = append(opts, markdocx.WithMaxListDepth(cfg.Limits.MaxListDepth))
	}
	if cfg.Limits.MaxWorkflowSteps > 0 {
		opts = append(opts, markdocx.WithMaxWorkflowSteps(cfg.Limits.MaxWorkflowSteps))
	}
	if cfg.Limits.ImageMaxWidth > 0 {
		opts = append(opts, markdocx.WithImageMaxWidth(cfg.Limits.ImageMaxWidth))
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		opts = append(opts, markdocx.WithTimeout(d))
	}
	return opts, nil
}

// resolveInputPath picks the input from positional args or the config.
func resolveInputPath(positionalArgs []string, cfg *config.Config) (string, error) {
	if len(positionalArgs) > 0 {
		return positionalArgs[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w: pass a file or directory, or set input.defaultDir in config", ErrNoInput)
}

// resolveWorkers determines the worker count. Zero means one worker per
// available CPU (adjusted by automaxprocs for containers).
func resolveWorkers(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	return runtime.GOMAXPROCS(0)
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, deps *Dependencies) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if verbose {
			for _, w := range r.Warnings {
				fmt.Fprintf(deps.Stderr, "WARN %s: %s\n", r.InputPath, w)
			}
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(deps.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(deps.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(deps.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	return failed
}

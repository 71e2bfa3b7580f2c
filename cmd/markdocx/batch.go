package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	markdocx "github.com/shynneri-source/markdocx"
	"github.com/shynneri-source/markdocx/internal/document"
	"github.com/shynneri-source/markdocx/internal/hints"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Warnings   []document.Warning
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently on a bounded worker group.
// Results keep the input order. Per-file errors land in the result slice,
// never abort the batch.
func convertBatch(ctx context.Context, svc Converter, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))

	g := new(errgroup.Group)
	g.SetLimit(params.workers)

	for i, f := range files {
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: ctx.Err()}
				return nil
			}
			results[i] = convertFile(ctx, svc, f, params)
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, svc Converter, f FileToConvert, params *conversionParams) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return result
	}

	input := markdocx.Input{
		Markdown:  string(content),
		SourceDir: filepath.Dir(f.InputPath),
		Title:     params.title,
		Author:    params.author,
		Date:      params.date,
	}

	convResult, err := svc.Convert(ctx, input)
	if err != nil {
		result.Err = err
		return result
	}
	result.Warnings = convResult.Warnings

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
		return result
	}

	// #nosec G306 -- DOCX files are meant to be readable
	if err := os.WriteFile(f.OutputPath, convResult.DOCX, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteDocx, err)
		return result
	}

	if params.htmlPreview {
		html, err := svc.Preview(ctx, input)
		if err != nil {
			result.Err = fmt.Errorf("rendering HTML preview: %w", err)
			return result
		}
		htmlPath := htmlOutputPath(f.OutputPath)
		// #nosec G306 -- HTML files are meant to be readable
		if err := os.WriteFile(htmlPath, []byte(html), filePermissions); err != nil {
			result.Err = fmt.Errorf("writing HTML preview: %w", err)
			return result
		}
	}

	return result
}

// Package markdocx converts Markdown documents to Word (.docx) files.
//
// # Quick Start
//
// Create a service and convert markdown:
//
//	svc := markdocx.New()
//
//	result, err := svc.Convert(ctx, markdocx.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.docx", result.DOCX, 0644)
//
// The result contains the DOCX bytes (result.DOCX), the assembled document
// tree (result.Document), and structural warnings (result.Warnings). Use
// Preview for a standalone HTML rendering of the same input.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line normalization, ==highlight== syntax)
//  2. YAML front matter extraction (title, author, date)
//  3. Tokenization and document tree assembly via Goldmark (GFM, footnotes,
//     $ math)
//  4. Collaborator rendering: diagram code fences (matrix, chart, graph,
//     workflow) become PNG figures, LaTeX becomes native Word math, code
//     blocks get per-token coloring
//  5. DOCX serialization (styles, numbering, media parts)
//
// Malformed structures never abort a conversion. Broken tables, over-deep
// lists, unresolved footnotes, and invalid diagram bodies degrade to
// placeholder output plus a warning on the result.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := markdocx.New(
//	    markdocx.WithTimeout(2 * time.Minute),
//	    markdocx.WithMaxListDepth(4),
//	    markdocx.WithImageMaxWidth(5.5),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := svc.Convert(ctx, markdocx.Input{
//	    Markdown:  content,
//	    SourceDir: "/path/to/markdown", // for relative image paths
//	    Title:     "Quarterly Report", // overrides front matter
//	})
//
// # Diagram Fences
//
// Code fences tagged matrix, chart, graph, or workflow are parsed as
// geometry specs (JSON or line shorthand) and rendered to embedded PNG
// figures:
//
//	```chart
//	type: bar
//	labels: Q1, Q2, Q3
//	revenue: 10, 14, 9
//	```
//
// A fence body that fails to parse renders as a plain code block with an
// error note, and the conversion continues.
//
// # Parallel Processing
//
// A single Service is safe for concurrent use; share one across goroutines
// for batch conversion.
package markdocx

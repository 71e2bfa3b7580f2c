package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title  string
	author string
	date   string
}

// limitFlags holds structural ceiling flags. Zero means the library default.
type limitFlags struct {
	maxListDepth     int
	maxWorkflowSteps int
	imageMaxWidth    float64
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	workers     int
	timeout     string
	recursive   bool
	htmlPreview bool
	document    documentFlags
	limits      limitFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "doc-title", "", "document title (overrides front matter)")
	fs.StringVar(&f.author, "doc-author", "", "document author (overrides front matter)")
	fs.StringVar(&f.date, "doc-date", "", "document date (YYYY-MM-DD, auto, or auto:FORMAT)")
}

// addLimitFlags adds structural limit flags to a FlagSet.
func addLimitFlags(fs *flag.FlagSet, f *limitFlags) {
	fs.IntVar(&f.maxListDepth, "max-list-depth", 0, "list nesting ceiling (1-9, 0 = default)")
	fs.IntVar(&f.maxWorkflowSteps, "max-workflow-steps", 0, "workflow step ceiling (1-32, 0 = default)")
	fs.Float64Var(&f.imageMaxWidth, "image-max-width", 0, "image width cap in inches (0 = default)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories")
	fs.BoolVar(&f.htmlPreview, "html-preview", false, "write an HTML preview next to each DOCX")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addLimitFlags(fs, &f.limits)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

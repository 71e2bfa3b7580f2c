package main

import (
	"io"
	"os"
	"time"
)

// Dependencies groups the process-level collaborators the CLI touches, so
// tests can capture output and pin the clock.
type Dependencies struct {
	Now    func() time.Time // wall clock, used for "auto" date resolution
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultDeps wires the real process streams and clock.
func DefaultDeps() *Dependencies {
	return &Dependencies{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

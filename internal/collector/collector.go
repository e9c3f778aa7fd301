// Package collector drives a collection run: it scans each resolved file,
// folds the characters into one set and writes the sorted result.
//
// Per-file and per-line problems are reported and skipped; they never abort
// a run. Only two conditions are fatal: an empty file list, and an output
// destination that cannot be created or flushed. Both are returned as
// *model.CLIError so the CLI can map them to exit codes.
package collector

import (
	"context"

	"github.com/ZiYueCommentary/character-collector/internal/charset"
	"github.com/ZiYueCommentary/character-collector/internal/model"
	"github.com/ZiYueCommentary/character-collector/internal/textfile"
)

// Collector runs the per-file pipeline over a list of paths.
// A Collector holds no state between runs and may be reused.
type Collector struct {
	reporter Reporter
}

// New creates a Collector that reports through r. A nil r discards all
// messages.
func New(r Reporter) *Collector {
	if r == nil {
		r = Discard
	}
	return &Collector{reporter: r}
}

// Result is the outcome of a collection run.
type Result struct {
	// Characters is the sorted, de-duplicated character sequence.
	Characters []rune

	// Records holds one entry per input file, in input order.
	Records []model.FileRecord
}

// String renders Characters as one concatenated string.
func (r *Result) String() string {
	return charset.Render(r.Characters)
}

// Processed returns the number of files whose characters were collected.
func (r *Result) Processed() int {
	n := 0
	for _, rec := range r.Records {
		if !rec.Skipped() {
			n++
		}
	}
	return n
}

// Skipped returns the number of files skipped as non-text.
func (r *Result) Skipped() int {
	return r.count(model.StatusInvalid)
}

// Unreadable returns the number of files that could not be opened or read.
func (r *Result) Unreadable() int {
	return r.count(model.StatusUnreadable)
}

func (r *Result) count(status model.FileStatus) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == status {
			n++
		}
	}
	return n
}

// Run collects the characters of files, one at a time, in the given order.
//
// An empty files slice fails with ExitNoInputFiles. The context is checked
// between files; a cancelled context ends the run with ctx.Err().
func (c *Collector) Run(ctx context.Context, files []string) (*Result, error) {
	if len(files) == 0 {
		c.reporter.Warn("No input files found.")
		return nil, model.WrapCLIError(model.ExitNoInputFiles, "no input files", model.ErrNoInputFiles)
	}

	acc := charset.New()
	result := &Result{Records: make([]model.FileRecord, 0, len(files))}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Records = append(result.Records, c.scan(path, acc))
	}

	result.Characters = acc.Sorted()
	return result, nil
}

// scan runs validation and extraction for one file and folds its
// characters into acc.
func (c *Collector) scan(path string, acc *charset.Set) model.FileRecord {
	f, rec := textfile.Inspect(path)

	switch rec.Status {
	case model.StatusUnreadable:
		// rec.Err already reads "Error opening file ..." or
		// "Error reading file ...".
		c.reporter.Warn("%v", rec.Err)
		return rec
	case model.StatusInvalid:
		c.reporter.Info("Skipping non-text or binary file: %s", path)
		return rec
	}
	defer func() { _ = f.Close() }()

	c.reporter.Info("Processing %s", path)

	fileSet := charset.New()
	rec.LineErrors = f.Extract(fileSet, func(err error) {
		c.reporter.Warn("%v", err)
	})
	rec.Characters = fileSet.Len()
	acc.Union(fileSet)
	return rec
}

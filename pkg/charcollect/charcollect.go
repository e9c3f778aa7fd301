// Package charcollect exposes character collection for embedding.
//
// Collect scans one file and Merge combines two previously collected
// sequences. Callers that cannot hold every file at once (a browser upload
// handler, for example) call Collect per file and fold the results with
// Merge; the outcome equals a single run over all the files.
//
// All functions are stateless and safe for concurrent use.
package charcollect

import (
	"errors"
	"fmt"

	"github.com/ZiYueCommentary/character-collector/internal/charset"
	"github.com/ZiYueCommentary/character-collector/internal/model"
	"github.com/ZiYueCommentary/character-collector/internal/textfile"
)

var (
	// ErrUnreadable means the file could not be opened or read.
	ErrUnreadable = errors.New("file could not be opened or read")

	// ErrNotText means the file's first bytes are not valid UTF-8.
	ErrNotText = errors.New("file is not text")
)

// FileError is returned by Collect when a file is skipped.
// It matches ErrUnreadable or ErrNotText with errors.Is.
type FileError struct {
	// Path is the file that was skipped.
	Path string

	// Kind is ErrUnreadable or ErrNotText.
	Kind error

	// Err is the underlying OS error for unreadable files.
	Err error
}

// Error returns the same text the CLI logs for the skipped file.
func (e *FileError) Error() string {
	if errors.Is(e.Kind, ErrNotText) {
		return fmt.Sprintf("Skipping non-text or binary file: %s", e.Path)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Path)
}

// Is reports whether target is the error's Kind.
func (e *FileError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying OS error, if any.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Collect validates and scans the file at path and returns its sorted,
// de-duplicated characters, excluding CR and LF.
//
// Lines that cannot be decoded are skipped silently; use CollectWithReport
// to observe them.
func Collect(path string) (string, error) {
	return CollectWithReport(path, nil)
}

// CollectWithReport is Collect with a callback for skipped lines.
// onLineError may be nil.
func CollectWithReport(path string, onLineError func(error)) (string, error) {
	set, rec := textfile.Collect(path, onLineError)

	switch rec.Status {
	case model.StatusUnreadable:
		return "", &FileError{Path: path, Kind: ErrUnreadable, Err: rec.Err}
	case model.StatusInvalid:
		return "", &FileError{Path: path, Kind: ErrNotText}
	}
	return set.String(), nil
}

// CollectText returns the sorted, de-duplicated characters of text,
// excluding CR and LF. It serves hosts that hold file contents in memory.
func CollectText(text string) string {
	set := charset.New()
	set.AddLine(text)
	return set.String()
}

// Merge returns the sorted, de-duplicated union of prev and next.
func Merge(prev, next string) string {
	return charset.Merge(prev, next)
}

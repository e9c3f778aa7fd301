// Package model defines the domain types for the character-collector CLI.
//
// These types are passed between the resolver, the text file inspector,
// the collection orchestrator and the CLI layer. None of them are persisted:
// a FileRecord lives for the duration of a single collection run.
package model

import (
	"errors"
	"fmt"
)

// FileStatus represents the classification of a candidate input file.
// The transitions for a single file are:
//
//	Unopened → Unreadable
//	Unopened → Opened → Invalid
//	Unopened → Opened → Validated → Extracted
//
// Only the terminal classifications are represented here; "valid" covers
// both Validated and Extracted because extraction never fails a file.
type FileStatus string

const (
	// StatusValid indicates the file's prefix decoded as UTF-8 and its
	// characters were extracted.
	StatusValid FileStatus = "valid"

	// StatusInvalid indicates the file's prefix is not valid UTF-8.
	// The file is treated as binary and skipped.
	StatusInvalid FileStatus = "invalid"

	// StatusUnreadable indicates the file could not be opened or its
	// prefix could not be read.
	StatusUnreadable FileStatus = "unreadable"
)

// String returns the string representation of FileStatus.
func (s FileStatus) String() string {
	return string(s)
}

// FileRecord is the outcome of processing one input file.
type FileRecord struct {
	// Path is the file path as produced by resolution.
	Path string `json:"path"`

	// Status is the terminal classification of the file.
	Status FileStatus `json:"status"`

	// Err is the open/read error for unreadable files. Nil otherwise.
	Err error `json:"-"`

	// Characters is the number of distinct characters found in this file.
	// Only meaningful when Status is StatusValid.
	Characters int `json:"characters,omitempty"`

	// LineErrors counts lines that could not be decoded and were skipped.
	LineErrors int `json:"lineErrors,omitempty"`
}

// Skipped reports whether the file contributed nothing to the run
// because it was invalid or unreadable.
func (r FileRecord) Skipped() bool {
	return r.Status != StatusValid
}

// String returns a human-readable representation of the record.
// Format: "path (status)" or "path (unreadable: err)".
func (r FileRecord) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s (%s: %v)", r.Path, r.Status, r.Err)
	}
	return fmt.Sprintf("%s (%s)", r.Path, r.Status)
}

// ErrNoInputFiles is returned when resolution produced no files to scan.
var ErrNoInputFiles = errors.New("no input files found")

// ExitCode defines the CLI exit codes.
// These codes allow scripts to tell "nothing to scan" apart from an
// output failure without parsing stderr.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitNoInputFiles indicates that no input files were resolved.
	ExitNoInputFiles ExitCode = 1

	// ExitGeneralError indicates a usage, configuration or other
	// unspecified error.
	ExitGeneralError ExitCode = 2

	// ExitOutputFailed indicates the output destination could not be
	// created or flushed.
	ExitOutputFailed ExitCode = 3
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

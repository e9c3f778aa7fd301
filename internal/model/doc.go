// Package model defines the domain types and value objects for the
// character-collector CLI.
//
// This package contains pure data structures with no external dependencies.
// FileRecord describes what happened to one input file during a run;
// FileStatus is its terminal classification (valid, invalid, unreadable).
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model

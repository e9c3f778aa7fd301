package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a specific problem with an Options value.
type ValidationError struct {
	// Field is the option name that failed validation (e.g., "inputs[2]").
	Field string

	// Message describes what's wrong with the value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// Validate checks an Options value and returns every problem found
// (empty list = valid).
//
// Checks performed:
//   - inputs: entries must not be blank
//   - output: must not name an existing directory
//   - excludeDirs: entries must not be blank or contain a path separator
func Validate(o *Options) []ValidationError {
	var errs []ValidationError

	for i, in := range o.Inputs {
		if strings.TrimSpace(in) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("inputs[%d]", i),
				Message: "input must not be empty",
			})
		}
	}

	if o.Output != "" {
		if info, err := os.Stat(o.Output); err == nil && info.IsDir() {
			errs = append(errs, ValidationError{
				Field:   "output",
				Message: fmt.Sprintf("%s is a directory", o.Output),
			})
		}
	}

	for i, name := range o.ExcludeDirs {
		trimmed := strings.Trim(strings.TrimSpace(name), `/\`)
		switch {
		case trimmed == "":
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("excludeDirs[%d]", i),
				Message: "directory name must not be empty",
			})
		case strings.ContainsAny(trimmed, `/\`):
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("excludeDirs[%d]", i),
				Message: fmt.Sprintf("%q must be a single directory name, not a path", name),
			})
		}
	}

	return errs
}

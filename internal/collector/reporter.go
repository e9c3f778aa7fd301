package collector

import (
	"fmt"
	"io"
)

// Reporter receives the messages produced during a collection run.
//
// Info carries progress and skip notices (for example a binary file being
// skipped). Warn carries recoverable errors: unreadable files, undecodable
// lines, failed character writes. Neither call may change control flow.
type Reporter interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// ConsoleReporter writes messages as plain lines.
//
// Both writers are usually os.Stderr so that standard output carries
// nothing but the character sequence.
type ConsoleReporter struct {
	// InfoOut receives informational messages.
	InfoOut io.Writer

	// WarnOut receives warnings and errors.
	WarnOut io.Writer

	// SuppressInfo drops informational messages (--silence).
	SuppressInfo bool

	// SuppressWarnings drops warnings and errors (--suppress).
	SuppressWarnings bool
}

var _ Reporter = (*ConsoleReporter)(nil)

// Info prints an informational line unless suppressed.
func (r *ConsoleReporter) Info(format string, args ...any) {
	if r.SuppressInfo || r.InfoOut == nil {
		return
	}
	fmt.Fprintf(r.InfoOut, format+"\n", args...)
}

// Warn prints a warning line unless suppressed.
func (r *ConsoleReporter) Warn(format string, args ...any) {
	if r.SuppressWarnings || r.WarnOut == nil {
		return
	}
	fmt.Fprintf(r.WarnOut, format+"\n", args...)
}

// Discard is a Reporter that drops every message.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Info(string, ...any) {}
func (discard) Warn(string, ...any) {}

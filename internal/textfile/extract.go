package textfile

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ZiYueCommentary/character-collector/internal/charset"
	"github.com/ZiYueCommentary/character-collector/internal/model"
)

// ErrInvalidUTF8 is reported for a line that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// LineError describes a line that could not be decoded or read.
type LineError struct {
	// Line is the 1-based line number.
	Line int

	// Err is ErrInvalidUTF8 or the I/O error that interrupted reading.
	Err error
}

// Error formats the failure the way it is logged.
func (e *LineError) Error() string {
	return fmt.Sprintf("Error reading line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Extract reads the file line by line and inserts every character except
// CR and LF into set. It returns the number of lines that failed.
//
// A line that is not valid UTF-8 is passed to onLineError and skipped;
// reading continues with the next line. An I/O error is passed to
// onLineError and ends extraction, keeping what was already collected.
// onLineError may be nil.
func (f *File) Extract(set *charset.Set, onLineError func(error)) int {
	return extractLines(f.br, set, onLineError)
}

// lineReader is satisfied by *bufio.Reader.
type lineReader interface {
	ReadBytes(delim byte) ([]byte, error)
}

func extractLines(r lineReader, set *charset.Set, onLineError func(error)) int {
	report := func(err error) {
		if onLineError != nil {
			onLineError(err)
		}
	}

	failed := 0
	for n := 1; ; n++ {
		// ReadBytes has no line length limit, unlike bufio.Scanner.
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			if utf8.Valid(line) {
				set.AddLine(string(line))
			} else {
				failed++
				report(&LineError{Line: n, Err: ErrInvalidUTF8})
			}
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) {
			failed++
			report(&LineError{Line: n, Err: err})
		}
		return failed
	}
}

// Collect inspects path and, when it is text, extracts its characters into
// a new Set. The set is nil unless the record's status is StatusValid.
func Collect(path string, onLineError func(error)) (*charset.Set, model.FileRecord) {
	f, rec := Inspect(path)
	if f == nil {
		return nil, rec
	}
	defer func() { _ = f.Close() }()

	set := charset.New()
	rec.LineErrors = f.Extract(set, onLineError)
	rec.Characters = set.Len()
	return set, rec
}

// Package textfile decides whether a file is text and extracts its characters.
//
// Validation looks only at a bounded prefix of the file (PrefixSize bytes):
// if the prefix is valid UTF-8 the whole file is treated as text. A file
// whose prefix is valid but which goes bad later is still extracted; the
// offending lines are reported and skipped by Extract.
//
// A file is opened exactly once. Inspect peeks at the prefix through a
// buffered reader and hands back a *File positioned at offset zero, so
// extraction re-reads the prefix from the buffer instead of reopening
// the path.
package textfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/ZiYueCommentary/character-collector/internal/model"
)

// PrefixSize is the number of leading bytes inspected to classify a file.
const PrefixSize = 1024

// readBufferSize is the buffered reader size used for both validation and
// extraction. It must be larger than PrefixSize so that Peek can look one
// byte past the prefix.
const readBufferSize = 64 * 1024

// Operation names carried by ReadError.
const (
	OpOpen = "open"
	OpRead = "read"
)

// ReadError reports a file that could not be opened or whose prefix could
// not be read.
type ReadError struct {
	// Op is OpOpen or OpRead.
	Op string

	// Path is the file that failed.
	Path string

	// Err is the underlying OS error, with the *fs.PathError layer removed
	// so the path is not printed twice.
	Err error
}

// Error formats the failure the way it is logged, for example
// "Error opening file notes.txt: permission denied".
func (e *ReadError) Error() string {
	verb := "reading"
	if e.Op == OpOpen {
		verb = "opening"
	}
	return fmt.Sprintf("Error %s file %s: %v", verb, e.Path, e.Err)
}

// Unwrap returns the underlying OS error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

func newReadError(op, path string, err error) *ReadError {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return &ReadError{Op: op, Path: path, Err: err}
}

// File is an opened, validated text file ready for extraction.
type File struct {
	// Path is the path the file was opened with.
	Path string

	f  *os.File
	br *bufio.Reader
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	return f.f.Close()
}

// Inspect opens path and classifies it by its first PrefixSize bytes.
//
// The returned record always has Path and Status set. For StatusValid the
// returned *File is open and the caller must Close it. For StatusInvalid
// and StatusUnreadable the file is nil; an unreadable record carries a
// *ReadError in Err.
func Inspect(path string) (*File, model.FileRecord) {
	rec := model.FileRecord{Path: path}

	f, err := os.Open(path)
	if err != nil {
		rec.Status = model.StatusUnreadable
		rec.Err = newReadError(OpOpen, path, err)
		return nil, rec
	}

	br := bufio.NewReaderSize(f, readBufferSize)

	// Peek one byte past the prefix so we know whether the prefix is the
	// whole file. Peek returns io.EOF when the file is shorter than that,
	// which is not a failure.
	peeked, err := br.Peek(PrefixSize + 1)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = f.Close()
		rec.Status = model.StatusUnreadable
		rec.Err = newReadError(OpRead, path, err)
		return nil, rec
	}

	complete := len(peeked) <= PrefixSize
	prefix := peeked
	if !complete {
		prefix = peeked[:PrefixSize]
	}

	if !ValidatePrefix(prefix, complete) {
		_ = f.Close()
		rec.Status = model.StatusInvalid
		return nil, rec
	}

	rec.Status = model.StatusValid
	return &File{Path: path, f: f, br: br}, rec
}

// ValidatePrefix reports whether prefix is valid UTF-8 text.
//
// complete is true when prefix holds the entire file. When it is false the
// prefix was cut at PrefixSize, and a multi-byte character split by the cut
// is accepted as long as the bytes present are a valid start of an encoding.
// An empty prefix is valid.
//
// This is looser than decoding exactly PrefixSize bytes: a strict check
// rejects any text file whose PrefixSize-th byte falls inside a character,
// which is common for CJK text. Only that trailing partial
// character is forgiven; any other invalid byte still marks the file binary.
func ValidatePrefix(prefix []byte, complete bool) bool {
	if utf8.Valid(prefix) {
		return true
	}
	if complete {
		return false
	}

	// Find the start of the last (possibly truncated) character. A UTF-8
	// encoding is at most utf8.UTFMax bytes, so look no further back.
	start := len(prefix) - 1
	for start > 0 && len(prefix)-start < utf8.UTFMax && !utf8.RuneStart(prefix[start]) {
		start--
	}
	tail := prefix[start:]

	// FullRune is false only for a valid but incomplete leading sequence;
	// an invalid byte makes it report true, which falls through to false.
	if utf8.FullRune(tail) {
		return false
	}
	return utf8.Valid(prefix[:start])
}

package collector

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"

	"github.com/ZiYueCommentary/character-collector/internal/model"
)

// outputFileMode is the permission used when creating the destination file.
const outputFileMode = 0o644

// WriteSequence writes chars to w as one string with no trailing separator.
func WriteSequence(w io.Writer, chars []rune) error {
	bw := bufio.NewWriter(w)
	for _, r := range chars {
		if _, err := bw.WriteRune(r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile creates or truncates path and writes chars to it one character
// at a time.
//
// Failing to create the file or to flush it is fatal and returned as a
// *model.CLIError with ExitOutputFailed. A failed single-character write is
// reported through r and skipped; the remaining characters are still
// attempted.
func WriteFile(path string, chars []rune, r Reporter) error {
	if r == nil {
		r = Discard
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFileMode)
	if err != nil {
		return model.WrapCLIError(model.ExitOutputFailed, "Error creating output file", err)
	}
	defer func() { _ = f.Close() }()

	return writeChars(f, chars, r)
}

// outputBufferSize is how many encoded bytes writeChars holds before
// handing them to the destination.
const outputBufferSize = 4096

// pendingWriter buffers encoded characters for w. Unlike bufio.Writer it
// stays usable after a failed write: bytes w did not accept are kept and
// retried by the next flush.
type pendingWriter struct {
	w   io.Writer
	buf []byte
}

// flush hands the buffered bytes to w and keeps whatever w did not accept.
func (p *pendingWriter) flush() error {
	if len(p.buf) == 0 {
		return nil
	}
	n, err := p.w.Write(p.buf)
	if n > len(p.buf) {
		n = len(p.buf)
	}
	p.buf = p.buf[:copy(p.buf, p.buf[n:])]
	if err == nil && len(p.buf) > 0 {
		err = io.ErrShortWrite
	}
	return err
}

// writeChars is the write loop behind WriteFile, split out so tests can
// inject a failing writer.
//
// When making room for a character fails, that one character is reported
// and skipped; the bytes already buffered stay queued for the next attempt.
func writeChars(w io.Writer, chars []rune, r Reporter) error {
	pw := &pendingWriter{w: w, buf: make([]byte, 0, outputBufferSize)}
	for _, c := range chars {
		if len(pw.buf)+utf8.RuneLen(c) > outputBufferSize {
			if err := pw.flush(); err != nil {
				r.Warn("Error writing to output file: %v", err)
				continue
			}
		}
		pw.buf = utf8.AppendRune(pw.buf, c)
	}
	if err := pw.flush(); err != nil {
		return model.WrapCLIError(model.ExitOutputFailed, "Error flushing output file", err)
	}
	return nil
}

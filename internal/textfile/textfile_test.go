package textfile

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZiYueCommentary/character-collector/internal/charset"
	"github.com/ZiYueCommentary/character-collector/internal/model"
)

// writeFile creates a file with the given content in a temporary directory
// and returns its path.
func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestValidatePrefix(t *testing.T) {
	// "中" is E4 B8 AD in UTF-8.
	han := []byte("中")

	tests := []struct {
		name     string
		prefix   []byte
		complete bool
		want     bool
	}{
		{name: "empty", prefix: nil, complete: true, want: true},
		{name: "ascii", prefix: []byte("hello\n"), complete: true, want: true},
		{name: "multi-byte", prefix: []byte("héllo 中文"), complete: true, want: true},
		{name: "invalid byte", prefix: []byte{'a', 0xFF, 'b'}, complete: true, want: false},
		{name: "truncated rune in a complete file", prefix: append([]byte("a"), han[:2]...), complete: true, want: false},
		{name: "truncated rune at the cut", prefix: append([]byte("a"), han[:2]...), complete: false, want: true},
		{name: "single lead byte at the cut", prefix: append([]byte("a"), han[0]), complete: false, want: true},
		{name: "invalid continuation at the cut", prefix: []byte{'a', 0xE4, 0x41}, complete: false, want: false},
		{name: "invalid byte before the cut", prefix: append([]byte{0xFF, 'a'}, han[:2]...), complete: false, want: false},
		{name: "stray continuation bytes at the cut", prefix: []byte{'a', 0x80, 0x80, 0x80, 0x80}, complete: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePrefix(tt.prefix, tt.complete))
		})
	}
}

func TestInspect_Valid(t *testing.T) {
	path := writeFile(t, "a.txt", []byte("ab\nba"))

	f, rec := Inspect(path)
	require.NotNil(t, f)
	defer func() { _ = f.Close() }()

	assert.Equal(t, path, rec.Path)
	assert.Equal(t, model.StatusValid, rec.Status)
	assert.NoError(t, rec.Err)
}

func TestInspect_EmptyFileIsValid(t *testing.T) {
	path := writeFile(t, "empty.txt", nil)

	set, rec := Collect(path, nil)
	require.NotNil(t, set)
	assert.Equal(t, model.StatusValid, rec.Status)
	assert.Equal(t, 0, set.Len())
}

func TestInspect_BinaryPrefixIsInvalid(t *testing.T) {
	// Valid text after the first PrefixSize bytes does not rescue the file.
	content := append([]byte{0xFF, 0xFE, 0x00}, bytes.Repeat([]byte("text\n"), 1000)...)
	path := writeFile(t, "image.bin", content)

	f, rec := Inspect(path)
	assert.Nil(t, f)
	assert.Equal(t, model.StatusInvalid, rec.Status)
	assert.NoError(t, rec.Err)
}

func TestInspect_MissingFileIsUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	f, rec := Inspect(path)
	assert.Nil(t, f)
	assert.Equal(t, model.StatusUnreadable, rec.Status)

	var readErr *ReadError
	require.ErrorAs(t, rec.Err, &readErr)
	assert.Equal(t, OpOpen, readErr.Op)
	assert.True(t, errors.Is(rec.Err, os.ErrNotExist))
	assert.Equal(t, "Error opening file "+path+": no such file or directory", rec.Err.Error())
}

func TestInspect_DirectoryIsUnreadable(t *testing.T) {
	// Opening a directory succeeds but reading from it fails.
	dir := t.TempDir()

	f, rec := Inspect(dir)
	assert.Nil(t, f)
	assert.Equal(t, model.StatusUnreadable, rec.Status)

	var readErr *ReadError
	require.ErrorAs(t, rec.Err, &readErr)
	assert.Equal(t, OpRead, readErr.Op)
	assert.True(t, strings.HasPrefix(rec.Err.Error(), "Error reading file "))
}

func TestCollect_SkipsLineTerminators(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "LF", content: "ab\nba\n", want: "ab"},
		{name: "CRLF", content: "ab\r\nba\r\n", want: "ab"},
		{name: "bare CR", content: "ab\rcd", want: "abcd"},
		{name: "no trailing newline", content: "x\ny", want: "xy"},
		{name: "whitespace is kept", content: "a b\tc\n", want: "\t abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "f.txt", []byte(tt.content))
			set, rec := Collect(path, nil)
			require.NotNil(t, set)
			assert.Equal(t, tt.want, set.String())
			assert.Equal(t, len([]rune(tt.want)), rec.Characters)
		})
	}
}

func TestCollect_RuneSplitAtPrefixBoundary(t *testing.T) {
	// PrefixSize-1 ASCII bytes followed by a three byte character: the
	// prefix ends with the character's first byte only.
	content := strings.Repeat("a", PrefixSize-1) + "中b"
	path := writeFile(t, "cjk.txt", []byte(content))

	set, rec := Collect(path, nil)
	require.NotNil(t, set)
	assert.Equal(t, model.StatusValid, rec.Status)
	assert.Equal(t, "ab中", set.String())
	assert.Zero(t, rec.LineErrors)
}

func TestInspect_CharacterCutByPrefixIsAccepted(t *testing.T) {
	// 2 + 3*400 bytes: byte 1024 lands inside the 341st "中", so the first
	// PrefixSize bytes on their own are not valid UTF-8.
	content := []byte("ab" + strings.Repeat("中", 400))
	require.False(t, utf8.Valid(content[:PrefixSize]))

	f, rec := Inspect(writeFile(t, "cjk.txt", content))
	require.NotNil(t, f)
	defer func() { _ = f.Close() }()
	assert.Equal(t, model.StatusValid, rec.Status)

	set := charset.New()
	assert.Zero(t, f.Extract(set, nil))
	assert.Equal(t, "ab中", set.String())
}

func TestCollect_InvalidLineAfterPrefixIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(strings.Repeat("abc\n", PrefixSize)) // valid prefix
	buf.Write([]byte{'x', 0xFF, '\n'})                 // bad line
	buf.WriteString("def\n")                            // extraction continues

	path := writeFile(t, "mixed.txt", buf.Bytes())

	var lineErrs []error
	set, rec := Collect(path, func(err error) { lineErrs = append(lineErrs, err) })
	require.NotNil(t, set)

	assert.Equal(t, "abcdef", set.String(), "the bad line contributes nothing")
	assert.Equal(t, 1, rec.LineErrors)
	require.Len(t, lineErrs, 1)
	assert.ErrorIs(t, lineErrs[0], ErrInvalidUTF8)

	var lineErr *LineError
	require.ErrorAs(t, lineErrs[0], &lineErr)
	assert.Equal(t, PrefixSize+1, lineErr.Line)
}

func TestCollect_LongLine(t *testing.T) {
	// Longer than both the read buffer and bufio.Scanner's default limit.
	content := strings.Repeat("xy", 200*1024) + "z"
	path := writeFile(t, "long.txt", []byte(content))

	set, _ := Collect(path, nil)
	require.NotNil(t, set)
	assert.Equal(t, "xyz", set.String())
}

// failingReader yields one line and then an I/O error.
type failingReader struct {
	calls int
}

func (r *failingReader) ReadBytes(byte) ([]byte, error) {
	r.calls++
	if r.calls == 1 {
		return []byte("ok\n"), nil
	}
	return []byte("pa"), io.ErrUnexpectedEOF
}

func TestExtractLines_IOErrorKeepsPartialResult(t *testing.T) {
	set := charset.New()
	var got []error

	failed := extractLines(&failingReader{}, set, func(err error) { got = append(got, err) })

	assert.Equal(t, 1, failed)
	assert.Equal(t, "akop", set.String(), "bytes read before the error still count")
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], io.ErrUnexpectedEOF)
}

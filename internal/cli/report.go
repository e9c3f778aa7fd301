// report.go builds the JSON report printed under --json.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/unicode/runenames"

	"github.com/ZiYueCommentary/character-collector/internal/charset"
)

// reportJSON is the top-level JSON output of a collection or merge.
type reportJSON struct {
	Characters string          `json:"characters"`
	Count      int             `json:"count"`
	CodePoints []codePointJSON `json:"codePoints"`
	Files      *fileCountsJSON `json:"files,omitempty"`
	Output     string          `json:"output,omitempty"`
}

// codePointJSON describes one collected character.
type codePointJSON struct {
	Char      string `json:"char"`
	CodePoint string `json:"codePoint"`
	Name      string `json:"name,omitempty"`
}

// fileCountsJSON summarizes how the input files were handled.
type fileCountsJSON struct {
	Processed  int `json:"processed"`
	Skipped    int `json:"skipped"`
	Unreadable int `json:"unreadable"`
}

// newReport describes chars, which must already be sorted and unique.
func newReport(chars []rune) *reportJSON {
	report := &reportJSON{
		Characters: charset.Render(chars),
		Count:      len(chars),
		// Use an empty slice instead of nil so JSON shows [] for no input.
		CodePoints: make([]codePointJSON, 0, len(chars)),
	}
	for _, r := range chars {
		report.CodePoints = append(report.CodePoints, codePointJSON{
			Char:      string(r),
			CodePoint: FormatCodePoint(r),
			Name:      runenames.Name(r),
		})
	}
	return report
}

// writeReport prints report to w with 2-space indentation.
func writeReport(w io.Writer, report *reportJSON) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// FormatCodePoint renders r in the conventional U+XXXX notation, using at
// least four hex digits.
//
// Example:
//
//	'a'        → "U+0061"
//	'\U0001F600' → "U+1F600"
func FormatCodePoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

// Package charset implements the character set used to accumulate distinct
// code points and to render them as a sorted character sequence.
//
// A Set is a plain map[rune]struct{}: insertion order is irrelevant because
// the only rendering is ascending by code point. Sets are not safe for
// concurrent use; each collection run or library call owns its own Set.
package charset

import (
	"slices"
	"strings"
)

// Set is an unordered collection of distinct code points.
// The zero value is not usable; create one with New.
type Set struct {
	runes map[rune]struct{}
}

// New creates an empty Set.
func New() *Set {
	return &Set{runes: make(map[rune]struct{})}
}

// FromString creates a Set holding every code point of s.
// Unlike AddLine, line terminators are kept: s is treated as an
// already-rendered sequence, not as file content.
func FromString(s string) *Set {
	set := New()
	for _, r := range s {
		set.Add(r)
	}
	return set
}

// Add inserts a single code point.
func (s *Set) Add(r rune) {
	s.runes[r] = struct{}{}
}

// AddLine inserts every code point of line except carriage return and
// line feed. It is the insertion path for file content, so a sequence
// rendered from a Set filled through AddLine never contains either.
func (s *Set) AddLine(line string) {
	for _, r := range line {
		if r == '\n' || r == '\r' {
			continue
		}
		s.runes[r] = struct{}{}
	}
}

// Union inserts every code point of other into s.
func (s *Set) Union(other *Set) {
	for r := range other.runes {
		s.runes[r] = struct{}{}
	}
}

// Len returns the number of distinct code points.
func (s *Set) Len() int {
	return len(s.runes)
}

// Sorted returns the code points in ascending order.
// The result is a fresh slice; mutating it does not affect the set.
func (s *Set) Sorted() []rune {
	out := make([]rune, 0, len(s.runes))
	for r := range s.runes {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// String renders the set as its sorted character sequence.
func (s *Set) String() string {
	return Render(s.Sorted())
}

// Render concatenates a rune slice into a string without separators.
func Render(runes []rune) string {
	var b strings.Builder
	b.Grow(len(runes))
	for _, r := range runes {
		b.WriteRune(r)
	}
	return b.String()
}

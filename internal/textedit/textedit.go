// Package textedit holds the selection and edit values shared by the formatting
// and list engines.
//
// Offsets are byte offsets into UTF-8 text. A Selection is half-open: [Start, End).
package textedit

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Selection is a range of the buffer. Start <= End after Normalize.
type Selection struct {
	Start int
	End   int
}

// Caret returns a zero-length selection at pos.
func Caret(pos int) Selection {
	return Selection{Start: pos, End: pos}
}

// IsEmpty reports whether the selection has zero length.
func (s Selection) IsEmpty() bool { return s.Start == s.End }

// Normalize orders the endpoints and clamps them into [0, length].
func (s Selection) Normalize(length int) Selection {
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	s.Start = Clamp(s.Start, 0, length)
	s.End = Clamp(s.End, 0, length)
	return s
}

// Edit replaces text[Start:End] with Text and then selects Selection, which is
// expressed in coordinates of the resulting buffer.
type Edit struct {
	Start     int
	End       int
	Text      string
	Selection Selection
}

// Apply returns text with the edit applied.
func (e Edit) Apply(text string) string {
	start := Clamp(e.Start, 0, len(text))
	end := Clamp(e.End, start, len(text))
	return text[:start] + e.Text + text[end:]
}

// IsNoop reports whether applying e leaves text unchanged.
func (e Edit) IsNoop(text string) bool {
	start := Clamp(e.Start, 0, len(text))
	end := Clamp(e.End, start, len(text))
	return text[start:end] == e.Text
}

// Diff builds the smallest single-range edit turning before into after.
func Diff(before, after string, sel Selection) Edit {
	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}
	return Edit{
		Start:     prefix,
		End:       len(before) - suffix,
		Text:      after[prefix : len(after)-suffix],
		Selection: sel,
	}
}

// Clamp bounds v into [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LineStart returns the offset of the first byte of the line containing pos.
func LineStart(text string, pos int) int {
	pos = Clamp(pos, 0, len(text))
	if i := strings.LastIndexByte(text[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// LineEnd returns the offset of the newline ending the line containing pos,
// or len(text) for the last line.
func LineEnd(text string, pos int) int {
	pos = Clamp(pos, 0, len(text))
	if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(text)
}

// LineIndex returns the zero-based line number containing pos.
func LineIndex(text string, pos int) int {
	pos = Clamp(pos, 0, len(text))
	return strings.Count(text[:pos], "\n")
}

// IsSpaceBefore reports whether the rune ending at pos is whitespace.
func IsSpaceBefore(text string, pos int) bool {
	if pos <= 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return unicode.IsSpace(r)
}

// IsSpaceAt reports whether the rune starting at pos is whitespace.
func IsSpaceAt(text string, pos int) bool {
	if pos >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return unicode.IsSpace(r)
}

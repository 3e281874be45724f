package lists

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Renumber rewrites numbered list items so each run counts from 1. Counters
// are kept per indentation width; a shallower item drops the deeper counters,
// and a blank or unindented non-list line ends the run.
func Renumber(text string) string {
	lines := strings.Split(text, "\n")
	renumberLines(lines)
	return strings.Join(lines, "\n")
}

func renumberLines(lines []string) {
	counts := make(map[int]int)
	inList := false
	for i, line := range lines {
		m := numberedPattern.FindStringSubmatch(line)
		if m == nil {
			if strings.TrimSpace(line) == "" || !startsWithSpace(line) {
				inList = false
				clear(counts)
			}
			continue
		}
		indent, content := m[1], m[3]
		level := len(indent)
		if !inList {
			clear(counts)
		}
		counts[level]++
		for l := range counts {
			if l > level {
				delete(counts, l)
			}
		}
		inList = true
		lines[i] = indent + strconv.Itoa(counts[level]) + ". " + content
	}
}

func startsWithSpace(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsSpace(r)
}

// RenumberWithCursor renumbers text and moves cursor by the length changes of
// the lines before it. On the cursor's own line a cursor past the indentation
// shifts with the number.
func RenumberWithCursor(text string, cursor int) (string, int) {
	oldLines := strings.Split(text, "\n")
	newLines := append([]string(nil), oldLines...)
	renumberLines(newLines)
	updated := strings.Join(newLines, "\n")
	if updated == text {
		return text, cursor
	}

	moved := cursor
	pos := 0
	for i, old := range oldLines {
		if pos > cursor {
			break
		}
		lineEnd := pos + len(old)
		delta := len(newLines[i]) - len(old)
		switch {
		case lineEnd < cursor:
			moved += delta
		case delta != 0:
			col := cursor - pos
			indent := len(old) - len(strings.TrimLeftFunc(old, unicode.IsSpace))
			if col > indent {
				newCol := max(col+delta, indent)
				moved += min(newCol, len(newLines[i])) - col
			}
		}
		pos = lineEnd + 1
	}
	return updated, moved
}

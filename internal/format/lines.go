package format

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kk-code-lab/overtype/internal/textedit"
)

// lineOp rewrites whole lines. It must return as many lines as it was given
// and report whether the block should be padded into its own paragraph.
type lineOp func(lines []string) (out []string, surround bool)

// applyLines runs op over every line touched by sel. Each selection endpoint
// keeps its place within its own line: it moves by that line's change in
// length and is clamped to the rewritten line.
func applyLines(text string, sel textedit.Selection, op lineOp) textedit.Edit {
	sel = sel.Normalize(len(text))
	start := textedit.LineStart(text, sel.Start)
	end := textedit.LineEnd(text, sel.End)
	old := strings.Split(text[start:end], "\n")
	updated, surround := op(append([]string(nil), old...))

	var before, after string
	if surround {
		before, after = newlinesToSurround(text, start, end)
	}

	mapPos := func(pos int) int {
		oldOff, newOff := start, start+len(before)
		for k := range old {
			lineEnd := oldOff + len(old[k])
			if pos <= lineEnd || k == len(old)-1 {
				col := pos - oldOff + len(updated[k]) - len(old[k])
				return newOff + textedit.Clamp(col, 0, len(updated[k]))
			}
			oldOff = lineEnd + 1
			newOff += len(updated[k]) + 1
		}
		return newOff
	}

	return textedit.Edit{
		Start:     start,
		End:       end,
		Text:      before + strings.Join(updated, "\n") + after,
		Selection: textedit.Selection{Start: mapPos(sel.Start), End: mapPos(sel.End)},
	}
}

// MultilineStyle prefixes every selected line with the style's markers, or
// strips them when every line already carries them.
func MultilineStyle(text string, sel textedit.Selection, style Style) textedit.Edit {
	return applyLines(text, sel, func(lines []string) ([]string, bool) {
		undo := true
		for _, line := range lines {
			if !hasMarkers(line, style.Prefix, style.Suffix) {
				undo = false
				break
			}
		}
		for i, line := range lines {
			if undo {
				lines[i] = line[len(style.Prefix) : len(line)-len(style.Suffix)]
			} else {
				lines[i] = style.Prefix + line + style.Suffix
			}
		}
		return lines, !undo && style.SurroundWithNewlines
	})
}

func hasMarkers(line, prefix, suffix string) bool {
	return len(line) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(line, prefix) && strings.HasSuffix(line, suffix)
}

var (
	orderedMarker = regexp.MustCompile(`^\d+\.\s+`)
	headerMarker  = regexp.MustCompile(`^#{1,6}[ \t]*`)
)

const bulletMarker = "- "

// ListStyle toggles a bullet or numbered list over the selected lines. A list
// of the requested kind is removed; a list of the other kind is converted.
// Numbered items are counted from 1.
func ListStyle(text string, sel textedit.Selection, style Style) textedit.Edit {
	return applyLines(text, sel, func(lines []string) ([]string, bool) {
		var removed bool
		if style.OrderedList {
			removed = stripOrdered(lines)
			stripBullets(lines)
		} else {
			removed = stripBullets(lines)
			stripOrdered(lines)
		}
		if removed {
			return lines, false
		}
		for i, line := range lines {
			lines[i] = listPrefix(i, style.UnorderedList) + line
		}
		return lines, true
	})
}

func listPrefix(index int, unordered bool) string {
	if unordered {
		return bulletMarker
	}
	return strconv.Itoa(index+1) + ". "
}

// stripOrdered removes numbering in place when every line is numbered.
func stripOrdered(lines []string) bool {
	for _, line := range lines {
		if !orderedMarker.MatchString(line) {
			return false
		}
	}
	for i, line := range lines {
		lines[i] = line[len(orderedMarker.FindString(line)):]
	}
	return true
}

// stripBullets removes "- " in place when every line starts with it.
func stripBullets(lines []string) bool {
	for _, line := range lines {
		if !strings.HasPrefix(line, bulletMarker) {
			return false
		}
	}
	for i, line := range lines {
		lines[i] = line[len(bulletMarker):]
	}
	return true
}

// Header sets the first selected line to the given level, replacing any
// existing header marker. With toggle set, a line already at that level loses
// its marker instead. Levels outside 1..6 mean 1.
func Header(text string, sel textedit.Selection, level int, toggle bool) textedit.Edit {
	if level < 1 || level > 6 {
		level = 1
	}
	prefix := strings.Repeat("#", level) + " "
	return applyLines(text, sel, func(lines []string) ([]string, bool) {
		marker := headerMarker.FindString(lines[0])
		existing := strings.Count(marker, "#")
		cleaned := lines[0][len(marker):]
		if toggle && existing == level {
			lines[0] = cleaned
		} else {
			lines[0] = prefix + cleaned
		}
		return lines, false
	})
}

package format

import (
	"strings"

	"github.com/kk-code-lab/overtype/internal/textedit"
)

// Format names reported by ActiveFormats.
const (
	FormatTaskList     = "task-list"
	FormatBulletList   = "bullet-list"
	FormatNumberedList = "numbered-list"
	FormatQuote        = "quote"
	FormatHeader1      = "header"
	FormatHeader2      = "header-2"
	FormatHeader3      = "header-3"
	FormatBold         = "bold"
	FormatItalic       = "italic"
	FormatCode         = "code"
	FormatLink         = "link"
)

const (
	nearWindow   = 10
	markerWindow = 100
)

// ActiveFormats reports which formats apply at the selection, for toolbar
// state. Line formats come from the current line's prefix; inline formats are
// a heuristic look for markers on both sides of the selection.
func ActiveFormats(text string, sel textedit.Selection) []string {
	sel = sel.Normalize(len(text))
	line := text[textedit.LineStart(text, sel.Start):textedit.LineEnd(text, sel.Start)]

	var formats []string
	if strings.HasPrefix(line, "- ") {
		if strings.HasPrefix(line, "- [ ] ") || strings.HasPrefix(line, "- [x] ") {
			formats = append(formats, FormatTaskList)
		} else {
			formats = append(formats, FormatBulletList)
		}
	}
	if orderedMarker.MatchString(line) {
		formats = append(formats, FormatNumberedList)
	}
	if strings.HasPrefix(line, "> ") {
		formats = append(formats, FormatQuote)
	}
	switch {
	case strings.HasPrefix(line, "# "):
		formats = append(formats, FormatHeader1)
	case strings.HasPrefix(line, "## "):
		formats = append(formats, FormatHeader2)
	case strings.HasPrefix(line, "### "):
		formats = append(formats, FormatHeader3)
	}

	near := text[max(0, sel.Start-nearWindow):min(len(text), sel.End+nearWindow)]
	before := text[max(0, sel.Start-markerWindow):sel.Start]
	after := text[sel.End:min(len(text), sel.End+markerWindow)]

	if strings.Contains(near, "**") && strings.Contains(before, "**") && strings.Contains(after, "**") {
		formats = append(formats, FormatBold)
	}
	if strings.Contains(near, "_") && strings.Contains(before, "_") && strings.Contains(after, "_") {
		formats = append(formats, FormatItalic)
	}
	if strings.Contains(near, "`") && strings.Contains(before, "`") && strings.Contains(after, "`") {
		formats = append(formats, FormatCode)
	}
	if strings.Contains(near, "[") && strings.Contains(near, "]") && strings.Contains(before, "[") {
		if closeAt := strings.IndexByte(after, ']'); closeAt >= 0 {
			rest := text[sel.End+closeAt+1:]
			if strings.HasPrefix(rest, "(") {
				formats = append(formats, FormatLink)
			}
		}
	}
	return formats
}

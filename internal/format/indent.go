package format

import (
	"strings"

	"github.com/kk-code-lab/overtype/internal/textedit"
)

// IndentUnit is inserted by Indent and removed by Outdent.
const IndentUnit = "  "

// Indent inserts IndentUnit at a caret, or in front of every line of the
// selected text. The result stays selected.
func Indent(text string, sel textedit.Selection) textedit.Edit {
	sel = sel.Normalize(len(text))
	if sel.IsEmpty() {
		return textedit.Edit{
			Start:     sel.Start,
			End:       sel.End,
			Text:      IndentUnit,
			Selection: textedit.Caret(sel.Start + len(IndentUnit)),
		}
	}
	lines := strings.Split(text[sel.Start:sel.End], "\n")
	for i, line := range lines {
		lines[i] = IndentUnit + line
	}
	return replaceSelected(sel, strings.Join(lines, "\n"))
}

// Outdent removes one IndentUnit from the start of every line of the selected
// text. A caret is left alone.
func Outdent(text string, sel textedit.Selection) textedit.Edit {
	sel = sel.Normalize(len(text))
	if sel.IsEmpty() {
		return textedit.Edit{Start: sel.Start, End: sel.End, Selection: sel}
	}
	lines := strings.Split(text[sel.Start:sel.End], "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, IndentUnit)
	}
	return replaceSelected(sel, strings.Join(lines, "\n"))
}

func replaceSelected(sel textedit.Selection, replacement string) textedit.Edit {
	return textedit.Edit{
		Start:     sel.Start,
		End:       sel.End,
		Text:      replacement,
		Selection: textedit.Selection{Start: sel.Start, End: sel.Start + len(replacement)},
	}
}

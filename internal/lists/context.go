// Package lists continues and renumbers markdown lists as the user types.
package lists

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kk-code-lab/overtype/internal/textedit"
)

// Kind is the list type of a line.
type Kind int

const (
	None Kind = iota
	Bullet
	Numbered
	Checkbox
)

func (k Kind) String() string {
	switch k {
	case Bullet:
		return "bullet"
	case Numbered:
		return "numbered"
	case Checkbox:
		return "checkbox"
	}
	return "none"
}

var (
	checkboxPattern = regexp.MustCompile(`^(\s*)-\s+\[([ x])\]\s+(.*)$`)
	bulletPattern   = regexp.MustCompile(`^(\s*)([-*+])\s+(.*)$`)
	numberedPattern = regexp.MustCompile(`^(\s*)(\d+)\.\s+(.*)$`)
)

// Context describes the list item under a position. It is derived from the
// text each time and never stored.
type Context struct {
	InList  bool
	Kind    Kind
	Indent  string
	Marker  string
	Number  int
	Checked bool
	Content string

	LineStart int
	LineEnd   int
	// MarkerEnd is the offset where the item content begins.
	MarkerEnd int
}

// ContextAt inspects the line containing pos.
func ContextAt(text string, pos int) Context {
	start := textedit.LineStart(text, pos)
	end := textedit.LineEnd(text, pos)
	line := text[start:end]
	ctx := Context{LineStart: start, LineEnd: end, MarkerEnd: start, Content: line}

	if m := checkboxPattern.FindStringSubmatch(line); m != nil {
		ctx.Kind, ctx.Indent, ctx.Marker, ctx.Checked, ctx.Content = Checkbox, m[1], "-", m[2] == "x", m[3]
	} else if m := bulletPattern.FindStringSubmatch(line); m != nil {
		ctx.Kind, ctx.Indent, ctx.Marker, ctx.Content = Bullet, m[1], m[2], m[3]
	} else if m := numberedPattern.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return ctx
		}
		ctx.Kind, ctx.Indent, ctx.Marker, ctx.Number, ctx.Content = Numbered, m[1], m[2], n, m[3]
	} else {
		return ctx
	}
	ctx.InList = true
	ctx.MarkerEnd = end - len(ctx.Content)
	return ctx
}

// NewItem returns the marker text that starts the item following ctx.
func NewItem(ctx Context) string {
	switch ctx.Kind {
	case Bullet:
		return ctx.Indent + ctx.Marker + " "
	case Numbered:
		return ctx.Indent + strconv.Itoa(ctx.Number+1) + ". "
	case Checkbox:
		return ctx.Indent + "- [ ] "
	}
	return ""
}

// Continuation is the result of pressing Enter inside a list.
type Continuation struct {
	Edit textedit.Edit
	// Renumber is set when a numbered list changed and should be renumbered.
	Renumber bool
}

// Continue handles Enter at caret. It reports false when the caret is not on
// a list item, in which case a plain newline applies.
//
// An empty item loses its marker. A caret inside the content splits the item.
// Otherwise a new item starts after the current line.
func Continue(text string, caret int) (Continuation, bool) {
	caret = textedit.Clamp(caret, 0, len(text))
	ctx := ContextAt(text, caret)
	if !ctx.InList {
		return Continuation{}, false
	}
	if strings.TrimSpace(ctx.Content) == "" && caret >= ctx.MarkerEnd {
		return Continuation{Edit: textedit.Edit{
			Start:     ctx.LineStart,
			End:       ctx.MarkerEnd,
			Selection: textedit.Caret(ctx.LineStart),
		}}, true
	}

	item := "\n" + NewItem(ctx)
	var edit textedit.Edit
	switch {
	case caret > ctx.MarkerEnd && caret < ctx.LineEnd:
		edit = textedit.Edit{
			Start:     caret,
			End:       ctx.LineEnd,
			Text:      item + text[caret:ctx.LineEnd],
			Selection: textedit.Caret(caret + len(item)),
		}
	case caret < ctx.MarkerEnd:
		edit = textedit.Edit{Start: ctx.LineEnd, End: ctx.LineEnd, Text: item, Selection: textedit.Caret(ctx.LineEnd + len(item))}
	default:
		edit = textedit.Edit{Start: caret, End: caret, Text: item, Selection: textedit.Caret(caret + len(item))}
	}
	return Continuation{Edit: edit, Renumber: ctx.Kind == Numbered}, true
}

package format

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kk-code-lab/overtype/internal/textedit"
)

// BlockStyle toggles an inline style around the selection. A caret expands to
// the word under it. When the selection is already wrapped in the style's
// markers they are removed; otherwise the markers are added.
func BlockStyle(text string, sel textedit.Selection, style Style) textedit.Edit {
	orig := sel.Normalize(len(text))
	selected := text[orig.Start:orig.End]

	prefix, suffix := style.Prefix, style.Suffix
	if isMultipleLines(selected) {
		if style.BlockPrefix != "" {
			prefix = style.BlockPrefix + "\n"
		}
		if style.BlockSuffix != "" {
			suffix = "\n" + style.BlockSuffix
		}
	}
	if style.PrefixSpace && orig.Start > 0 && !textedit.IsSpaceBefore(text, orig.Start) {
		prefix = " " + prefix
	}

	region := expandSelection(text, orig, prefix, suffix, style.Multiline)
	selected = text[region.Start:region.End]
	hasReplaceNext := style.ReplaceNext != "" && strings.Contains(suffix, style.ReplaceNext) && selected != ""

	if style.SurroundWithNewlines {
		before, after := newlinesToSurround(text, region.Start, region.End)
		prefix = before + style.Prefix
		suffix += after
	}

	edit := textedit.Edit{Start: region.Start, End: region.End}
	switch {
	case len(selected) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(selected, prefix) && strings.HasSuffix(selected, suffix):
		inner := selected[len(prefix) : len(selected)-len(suffix)]
		edit.Text = inner
		if orig.IsEmpty() {
			pos := textedit.Clamp(orig.Start-len(prefix), region.Start, region.Start+len(inner))
			edit.Selection = textedit.Caret(pos)
		} else {
			edit.Selection = textedit.Selection{Start: region.Start, End: region.Start + len(inner)}
		}

	case !hasReplaceNext:
		edit.Text = prefix + selected + suffix
		edit.Selection = textedit.Selection{Start: orig.Start + len(prefix), End: orig.End + len(prefix)}
		if style.TrimFirst {
			trimmed := strings.TrimLeftFunc(selected, unicode.IsSpace)
			leading := selected[:len(selected)-len(trimmed)]
			core := strings.TrimRightFunc(trimmed, unicode.IsSpace)
			trailing := trimmed[len(core):]
			edit.Text = leading + prefix + core + suffix + trailing
			edit.Selection.Start += len(leading)
			edit.Selection.End -= len(trailing)
		}

	case style.ScanFor != nil && style.ScanFor.MatchString(selected):
		edit.Text = prefix + strings.Replace(suffix, style.ReplaceNext, selected, 1)
		edit.Selection = textedit.Caret(region.Start + len(prefix))

	default:
		edit.Text = prefix + selected + suffix
		start := region.Start + len(prefix) + len(selected) + strings.Index(suffix, style.ReplaceNext)
		edit.Selection = textedit.Selection{Start: start, End: start + len(style.ReplaceNext)}
	}
	return edit
}

// expandSelection widens a caret to the surrounding word, or an existing
// selection to include markers sitting right outside it.
func expandSelection(text string, sel textedit.Selection, prefix, suffix string, multiline bool) textedit.Selection {
	if sel.IsEmpty() {
		return textedit.Selection{
			Start: wordStart(text, sel.Start),
			End:   wordEnd(text, sel.End, multiline),
		}
	}
	start, end := sel.Start-len(prefix), sel.End+len(suffix)
	if start >= 0 && end <= len(text) && text[start:sel.Start] == prefix && text[sel.End:end] == suffix {
		return textedit.Selection{Start: start, End: end}
	}
	return sel
}

func wordStart(text string, i int) int {
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		if unicode.IsSpace(r) {
			break
		}
		i -= size
	}
	return i
}

// wordEnd stops at whitespace, or only at a newline in multiline mode.
func wordEnd(text string, i int, multiline bool) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == '\n' || (!multiline && unicode.IsSpace(r)) {
			break
		}
		i += size
	}
	return i
}

func isMultipleLines(s string) bool {
	return strings.Contains(strings.TrimSpace(s), "\n")
}

// newlinesToSurround returns the newlines needed before and after [start,end)
// so that the range sits in its own paragraph. Nothing is added at the edges
// of the buffer or next to whitespace-only text.
func newlinesToSurround(text string, start, end int) (before, after string) {
	head, tail := text[:start], text[end:]
	breaksBefore := len(head) - len(strings.TrimRight(head, "\n"))
	breaksAfter := len(tail) - len(strings.TrimLeft(tail, "\n"))
	if strings.TrimSpace(head) != "" && breaksBefore < 2 {
		before = strings.Repeat("\n", 2-breaksBefore)
	}
	if strings.TrimSpace(tail) != "" && breaksAfter < 2 {
		after = strings.Repeat("\n", 2-breaksAfter)
	}
	return before, after
}

// LinkOptions fill in parts of a link up front.
type LinkOptions struct {
	URL  string
	Text string
}

var urlSelection = regexp.MustCompile(`^https?://`)

// InsertLink wraps the selection in link syntax. A selected URL becomes the
// link target; an explicit URL skips the placeholder; explicit text is used
// when nothing is selected.
func InsertLink(text string, sel textedit.Selection, opts LinkOptions) textedit.Edit {
	sel = sel.Normalize(len(text))
	selected := text[sel.Start:sel.End]
	style := styles[Link]
	switch {
	case opts.URL != "":
		style.Suffix = "](" + opts.URL + ")"
		style.ReplaceNext = ""
	case urlSelection.MatchString(selected):
		style.Suffix = "](" + selected + ")"
		style.ReplaceNext = ""
	}

	if opts.Text == "" || selected != "" {
		return BlockStyle(text, sel, style)
	}
	withText := text[:sel.Start] + opts.Text + text[sel.Start:]
	edit := BlockStyle(withText, textedit.Selection{Start: sel.Start, End: sel.Start + len(opts.Text)}, style)
	return textedit.Diff(text, edit.Apply(withText), edit.Selection)
}

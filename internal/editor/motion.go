package editor

import (
	"github.com/rivo/uniseg"

	"github.com/kk-code-lab/overtype/internal/textedit"
	"github.com/kk-code-lab/overtype/internal/textutil"
)

// Direction is a caret movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	LineHome
	LineEnd
)

// InsertText replaces the selection with s.
func (e *Editor) InsertText(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, sel := e.state()
	e.apply(textedit.Edit{Start: sel.Start, End: sel.End, Text: s, Selection: textedit.Caret(sel.Start + len(s))})
	e.hasAnchor = false
}

// Backspace deletes the selection or the grapheme before the caret.
func (e *Editor) Backspace() {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	if sel.IsEmpty() {
		if sel.Start == 0 {
			return
		}
		sel.Start = prevBoundary(text, sel.Start)
	}
	e.apply(textedit.Edit{Start: sel.Start, End: sel.End, Selection: textedit.Caret(sel.Start)})
	e.hasAnchor = false
}

// Delete deletes the selection or the grapheme after the caret.
func (e *Editor) Delete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	if sel.IsEmpty() {
		if sel.End == len(text) {
			return
		}
		sel.End = nextBoundary(text, sel.End)
	}
	e.apply(textedit.Edit{Start: sel.Start, End: sel.End, Selection: textedit.Caret(sel.Start)})
	e.hasAnchor = false
}

// Move moves the caret. With extend the selection grows from the position
// where extending started.
func (e *Editor) Move(dir Direction, extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()

	anchor, head := e.ends(sel)
	if !extend {
		switch {
		case dir == Left && !sel.IsEmpty():
			e.setCaret(sel.Start)
		case dir == Right && !sel.IsEmpty():
			e.setCaret(sel.End)
		default:
			e.setCaret(moveCaret(text, head, dir, e.opts.TabWidth))
		}
		return
	}
	pos := moveCaret(text, head, dir, e.opts.TabWidth)
	e.anchor, e.hasAnchor = anchor, true
	e.host.SetSelection(textedit.Selection{Start: min(anchor, pos), End: max(anchor, pos)})
}

// ends splits sel into the fixed anchor and the moving head.
func (e *Editor) ends(sel textedit.Selection) (anchor, head int) {
	if e.hasAnchor && e.anchor == sel.End {
		return sel.End, sel.Start
	}
	return sel.Start, sel.End
}

// Caret returns the moving end of the selection.
func (e *Editor) Caret() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, sel := e.state()
	_, head := e.ends(sel)
	return head
}

func (e *Editor) setCaret(pos int) {
	e.host.SetSelection(textedit.Caret(pos))
	e.hasAnchor = false
}

func moveCaret(text string, pos int, dir Direction, tabWidth int) int {
	switch dir {
	case Left:
		return prevBoundary(text, pos)
	case Right:
		return nextBoundary(text, pos)
	case LineHome:
		return textedit.LineStart(text, pos)
	case LineEnd:
		return textedit.LineEnd(text, pos)
	case Up:
		start := textedit.LineStart(text, pos)
		if start == 0 {
			return 0
		}
		return offsetForColumn(text, textedit.LineStart(text, start-1), columnOf(text, pos, tabWidth), tabWidth)
	case Down:
		end := textedit.LineEnd(text, pos)
		if end == len(text) {
			return len(text)
		}
		return offsetForColumn(text, end+1, columnOf(text, pos, tabWidth), tabWidth)
	}
	return pos
}

func columnOf(text string, pos, tabWidth int) int {
	return textutil.Column(text[textedit.LineStart(text, pos):pos], tabWidth)
}

// offsetForColumn maps a screen column back to an offset on the line that
// starts at lineStart.
func offsetForColumn(text string, lineStart, col, tabWidth int) int {
	line := text[lineStart:textedit.LineEnd(text, lineStart)]
	return lineStart + textutil.OffsetForColumn(line, col, tabWidth)
}

func nextBoundary(text string, pos int) int {
	if pos >= len(text) {
		return len(text)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[pos:], -1)
	if cluster == "" {
		return pos + 1
	}
	return pos + len(cluster)
}

func prevBoundary(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	start := textedit.LineStart(text, pos)
	if start == pos {
		return pos - 1
	}
	prev := start
	for cur := start; cur < pos; {
		prev = cur
		cur = nextBoundary(text, cur)
	}
	return prev
}

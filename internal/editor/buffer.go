// Package editor connects the markdown, format and lists engines to a text
// buffer owned by a host.
package editor

import (
	"github.com/kk-code-lab/overtype/internal/textedit"
)

// DefaultHistoryLimit caps the number of undo snapshots a Buffer keeps.
const DefaultHistoryLimit = 1000

// Host is the text and selection primitive the editor drives.
type Host interface {
	Text() string
	SetText(text string)
	Selection() textedit.Selection
	SetSelection(sel textedit.Selection)
}

// Replacer is implemented by hosts that can apply an edit as one native undo
// step. Hosts without it get SetText followed by SetSelection.
type Replacer interface {
	Replace(edit textedit.Edit)
}

// BufferOptions configures a Buffer.
type BufferOptions struct {
	// HistoryLimit caps undo snapshots. Zero uses DefaultHistoryLimit and a
	// negative value disables history.
	HistoryLimit int
}

type snapshot struct {
	text string
	sel  textedit.Selection
}

// Buffer is an in-memory Host with undo history. Every Replace is one undo
// unit.
type Buffer struct {
	text    string
	sel     textedit.Selection
	limit   int
	undo    []snapshot
	redo    []snapshot
	version uint64
}

// NewBuffer returns a buffer holding text with the caret at the end.
func NewBuffer(text string, opts BufferOptions) *Buffer {
	limit := opts.HistoryLimit
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	return &Buffer{text: text, sel: textedit.Caret(len(text)), limit: limit}
}

func (b *Buffer) Text() string { return b.text }

// SetText replaces the whole text without recording history.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.sel = b.sel.Normalize(len(text))
	b.version++
}

func (b *Buffer) Selection() textedit.Selection { return b.sel }

func (b *Buffer) SetSelection(sel textedit.Selection) {
	b.sel = sel.Normalize(len(b.text))
}

// Version increases on every text change.
func (b *Buffer) Version() uint64 { return b.version }

// Replace applies edit as a single undoable change.
func (b *Buffer) Replace(edit textedit.Edit) {
	if edit.IsNoop(b.text) {
		b.SetSelection(edit.Selection)
		return
	}
	b.recordUndo(b.snapshot())
	b.text = edit.Apply(b.text)
	b.sel = edit.Selection.Normalize(len(b.text))
	b.version++
}

func (b *Buffer) snapshot() snapshot {
	return snapshot{text: b.text, sel: b.sel}
}

func (b *Buffer) restore(s snapshot) {
	b.text = s.text
	b.sel = s.sel.Normalize(len(s.text))
	b.version++
}

func (b *Buffer) recordUndo(prev snapshot) {
	if b.limit <= 0 {
		return
	}
	b.undo = append(b.undo, prev)
	if len(b.undo) > b.limit {
		b.undo = b.undo[len(b.undo)-b.limit:]
	}
	b.redo = nil
}

func (b *Buffer) CanUndo() bool { return len(b.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.redo) > 0 }

// Undo restores the previous snapshot. It reports false when there is none.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	cur := b.snapshot()
	i := len(b.undo) - 1
	prev := b.undo[i]
	b.undo = b.undo[:i]
	b.redo = append(b.redo, cur)
	b.restore(prev)
	return true
}

// Redo reapplies the last undone change.
func (b *Buffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	cur := b.snapshot()
	i := len(b.redo) - 1
	next := b.redo[i]
	b.redo = b.redo[:i]
	if b.limit > 0 {
		b.undo = append(b.undo, cur)
		if len(b.undo) > b.limit {
			b.undo = b.undo[len(b.undo)-b.limit:]
		}
	}
	b.restore(next)
	return true
}

// Package state holds the terminal editor state and the reducer that applies
// input actions to it.
package state

import (
	"time"

	"github.com/kk-code-lab/overtype/internal/editor"
	"github.com/kk-code-lab/overtype/internal/markdown"
	"github.com/kk-code-lab/overtype/internal/textedit"
)

// AppState is everything the renderer needs to draw a frame.
type AppState struct {
	Path   string
	Buffer *editor.Buffer
	Editor *editor.Editor

	SavedVersion uint64
	Message      string
	LastError    error

	ScrollOffset int
	ScreenWidth  int
	ScreenHeight int

	HelpVisible        bool
	ClipboardAvailable bool
	LastYankTime       time.Time

	dispatchAction func(Action)
}

// Dirty reports unsaved changes.
func (s *AppState) Dirty() bool {
	return s.Buffer != nil && s.Buffer.Version() != s.SavedVersion
}

// MarkSaved records the current version as written.
func (s *AppState) MarkSaved() {
	if s.Buffer != nil {
		s.SavedVersion = s.Buffer.Version()
	}
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

// Dispatch queues an action on the loop. It is safe to call from any
// goroutine once SetDispatch was called.
func (s *AppState) Dispatch(action Action) {
	if s.dispatchAction != nil {
		s.dispatchAction(action)
	}
}

// BodyHeight is the number of document rows between the header and status
// lines.
func (s *AppState) BodyHeight() int {
	return max(s.ScreenHeight-2, 1)
}

// Document parses the buffer for drawing.
func (s *AppState) Document() *markdown.Document {
	return s.Editor.Document()
}

// EnsureCaretVisible scrolls so the caret line is on screen.
func (s *AppState) EnsureCaretVisible() {
	line := textedit.LineIndex(s.Buffer.Text(), s.Editor.Caret())
	height := s.BodyHeight()
	if line < s.ScrollOffset {
		s.ScrollOffset = line
	}
	if line >= s.ScrollOffset+height {
		s.ScrollOffset = line - height + 1
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

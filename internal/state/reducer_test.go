package state

import (
	"errors"
	"testing"

	"github.com/kk-code-lab/overtype/internal/editor"
	"github.com/kk-code-lab/overtype/internal/format"
	"github.com/kk-code-lab/overtype/internal/textedit"
)

func newTestState(t *testing.T, text string, caret int) *AppState {
	t.Helper()
	buf := editor.NewBuffer(text, editor.BufferOptions{})
	buf.SetSelection(textedit.Caret(caret))
	ed := editor.New(buf, editor.Options{SmartLists: true})
	t.Cleanup(ed.Close)
	return &AppState{Buffer: buf, Editor: ed, ScreenWidth: 40, ScreenHeight: 5}
}

func reduce(t *testing.T, r *StateReducer, s *AppState, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		if _, err := r.Reduce(s, a); err != nil {
			t.Fatalf("Reduce(%T): %v", a, err)
		}
	}
}

func TestReducerTyping(t *testing.T) {
	r := NewStateReducer()
	s := newTestState(t, "", 0)
	reduce(t, r, s,
		InsertTextAction{Text: "- a"},
		NewlineAction{},
		InsertTextAction{Text: "b"},
		NewlineAction{},
		NewlineAction{},
		InsertTextAction{Text: "done"},
	)
	if got := s.Buffer.Text(); got != "- a\n- b\ndone" {
		t.Fatalf("unexpected text %q", got)
	}
	if !s.Dirty() {
		t.Fatalf("expected dirty buffer")
	}
}

func TestReducerFormatAndUndo(t *testing.T) {
	r := NewStateReducer()
	s := newTestState(t, "word", 2)
	reduce(t, r, s, FormatAction{Command: format.Bold})
	if got := s.Buffer.Text(); got != "**word**" {
		t.Fatalf("unexpected text %q", got)
	}
	reduce(t, r, s, UndoAction{})
	if got := s.Buffer.Text(); got != "word" {
		t.Fatalf("expected undo, got %q", got)
	}
	reduce(t, r, s, UndoAction{})
	if s.Message != "nothing to undo" {
		t.Fatalf("unexpected message %q", s.Message)
	}
	if _, err := r.Reduce(s, FormatAction{Command: "nope"}); !errors.Is(err, format.ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestReducerScrollFollowsCaret(t *testing.T) {
	r := NewStateReducer()
	s := newTestState(t, "1\n2\n3\n4\n5\n6", 0)
	for range 4 {
		reduce(t, r, s, MoveAction{Direction: editor.Down})
	}
	if s.ScrollOffset != 2 {
		t.Fatalf("expected scroll offset 2, got %d", s.ScrollOffset)
	}
	reduce(t, r, s, PageAction{})
	if s.Editor.ActiveLine() != 1 || s.ScrollOffset != 1 {
		t.Fatalf("unexpected line %d offset %d", s.Editor.ActiveLine(), s.ScrollOffset)
	}
}

func TestReducerSave(t *testing.T) {
	var written string
	r := &StateReducer{write: func(path, text string) error {
		written = path + ":" + text
		return nil
	}}
	s := newTestState(t, "x", 1)
	if _, err := r.Reduce(s, SaveAction{}); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
	s.Path = "/tmp/notes.md"
	reduce(t, r, s, InsertTextAction{Text: "y"}, SaveAction{})
	if written != "/tmp/notes.md:xy" {
		t.Fatalf("unexpected write %q", written)
	}
	if s.Dirty() {
		t.Fatalf("expected clean buffer after save")
	}
	if s.Message != "saved notes.md" {
		t.Fatalf("unexpected message %q", s.Message)
	}
}

func TestReducerToggles(t *testing.T) {
	r := NewStateReducer()
	s := newTestState(t, "", 0)
	reduce(t, r, s, TogglePreviewAction{}, ToggleRawLineAction{}, HelpToggleAction{})
	preview, raw := s.Editor.RenderMode()
	if !preview || !raw || !s.HelpVisible {
		t.Fatalf("expected all toggles on: preview=%v raw=%v help=%v", preview, raw, s.HelpVisible)
	}
	reduce(t, r, s, HelpHideAction{})
	if s.HelpVisible {
		t.Fatalf("expected help hidden")
	}
}

func TestReducerRunsRenumber(t *testing.T) {
	r := NewStateReducer()
	s := newTestState(t, "", 0)
	ran := false
	reduce(t, r, s, RenumberAction{Run: func() { ran = true }})
	if !ran {
		t.Fatalf("expected renumber callback to run")
	}
}

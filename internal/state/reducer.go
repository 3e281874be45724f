package state

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/kk-code-lab/overtype/internal/editor"
	fsutil "github.com/kk-code-lab/overtype/internal/fs"
)

// ErrNoPath is returned when saving a buffer that was not loaded from a file.
var ErrNoPath = errors.New("no file to save to")

// StateReducer applies actions to an AppState.
type StateReducer struct {
	write func(path, text string) error
}

// NewStateReducer returns a reducer that saves through fs.WriteDocument.
func NewStateReducer() *StateReducer {
	return &StateReducer{write: fsutil.WriteDocument}
}

// Reduce applies action. App-level actions (quit, suspend, yank) are left to
// the caller and ignored here.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	ed := state.Editor
	edited := true

	switch action.(type) {
	case ResizeAction, RenumberAction:
	default:
		state.Message = ""
	}

	switch a := action.(type) {

	// ===== EDIT =====

	case InsertTextAction:
		ed.InsertText(a.Text)
	case NewlineAction:
		if !ed.HandleEnter() {
			ed.InsertText("\n")
		}
	case TabAction:
		ed.HandleTab()
	case BacktabAction:
		ed.HandleBacktab()
	case BackspaceAction:
		ed.Backspace()
	case DeleteAction:
		ed.Delete()
	case FormatAction:
		if err := ed.Apply(a.Command); err != nil {
			return state, err
		}
	case UndoAction:
		if !state.Buffer.Undo() {
			state.Message = "nothing to undo"
		}
	case RedoAction:
		if !state.Buffer.Redo() {
			state.Message = "nothing to redo"
		}
	case RenumberAction:
		if a.Run != nil {
			a.Run()
		}

	// ===== CARET =====

	case MoveAction:
		ed.Move(a.Direction, a.Extend)
	case PageAction:
		dir := editor.Up
		if a.Down {
			dir = editor.Down
		}
		for range state.BodyHeight() {
			ed.Move(dir, false)
		}

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
	case TogglePreviewAction:
		preview, raw := ed.RenderMode()
		ed.SetRenderMode(!preview, raw)
		state.Message = modeMessage("preview", !preview)
		edited = false
	case ToggleRawLineAction:
		preview, raw := ed.RenderMode()
		ed.SetRenderMode(preview, !raw)
		state.Message = modeMessage("raw caret line", !raw)
		edited = false
	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		edited = false
	case HelpHideAction:
		state.HelpVisible = false
		edited = false

	// ===== FILE =====

	case SaveAction:
		return state, r.save(state)

	default:
		edited = false
	}

	if edited {
		state.LastError = nil
		state.EnsureCaretVisible()
	}
	return state, nil
}

func (r *StateReducer) save(state *AppState) error {
	if state.Path == "" {
		return ErrNoPath
	}
	if err := r.write(state.Path, state.Buffer.Text()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	state.MarkSaved()
	state.Message = "saved " + filepath.Base(state.Path)
	return nil
}

func modeMessage(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}

package state

import (
	"github.com/kk-code-lab/overtype/internal/editor"
	"github.com/kk-code-lab/overtype/internal/format"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== EDIT ACTIONS =====

type InsertTextAction struct {
	Text string
}
type NewlineAction struct{}
type TabAction struct{}
type BacktabAction struct{}
type BackspaceAction struct{}
type DeleteAction struct{}
type UndoAction struct{}
type RedoAction struct{}

type FormatAction struct {
	Command format.Command
}

// RenumberAction carries deferred list renumbering back onto the loop.
type RenumberAction struct {
	Run func()
}

// ===== CARET ACTIONS =====

type MoveAction struct {
	Direction editor.Direction
	Extend    bool
}
type PageAction struct {
	Down bool
}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}
type TogglePreviewAction struct{}
type ToggleRawLineAction struct{}
type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== APP ACTIONS =====

type SaveAction struct{}
type YankSelectionAction struct{}
type QuitAction struct{}
type SuspendAction struct{}

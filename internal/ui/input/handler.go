package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/overtype/internal/editor"
	"github.com/kk-code-lab/overtype/internal/format"
	statepkg "github.com/kk-code-lab/overtype/internal/state"
)

// altCommands maps Alt+rune to formatting commands.
var altCommands = map[rune]format.Command{
	'b': format.Bold,
	'i': format.Italic,
	'c': format.Code,
	'k': format.Link,
	'l': format.BulletList,
	'n': format.NumberedList,
	'q': format.Quote,
	't': format.TaskList,
	'1': format.Header1,
	'2': format.Header2,
	'3': format.Header3,
	'4': format.Header4,
	'5': format.Header5,
	'6': format.Header6,
}

var moveKeys = map[tcell.Key]editor.Direction{
	tcell.KeyLeft:  editor.Left,
	tcell.KeyRight: editor.Right,
	tcell.KeyUp:    editor.Up,
	tcell.KeyDown:  editor.Down,
	tcell.KeyHome:  editor.LineHome,
	tcell.KeyEnd:   editor.LineEnd,
}

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the event asks to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	helpVisible := ih.state != nil && ih.state.HelpVisible

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyCtrlQ:
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case tcell.KeyEscape, tcell.KeyF1:
			ih.actionChan <- statepkg.HelpHideAction{}
		case tcell.KeyRune:
			if r := ev.Rune(); r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
		}
		return true
	}

	if dir, ok := moveKeys[ev.Key()]; ok {
		ih.actionChan <- statepkg.MoveAction{Direction: dir, Extend: ev.Modifiers()&tcell.ModShift != 0}
		return true
	}

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyF1:
		ih.actionChan <- statepkg.HelpToggleAction{}
	case tcell.KeyCtrlS:
		ih.actionChan <- statepkg.SaveAction{}
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.UndoAction{}
	case tcell.KeyCtrlY:
		ih.actionChan <- statepkg.RedoAction{}
	case tcell.KeyCtrlB:
		ih.actionChan <- statepkg.FormatAction{Command: format.Bold}
	case tcell.KeyCtrlK:
		ih.actionChan <- statepkg.FormatAction{Command: format.Link}
	case tcell.KeyCtrlP:
		ih.actionChan <- statepkg.TogglePreviewAction{}
	case tcell.KeyCtrlR:
		ih.actionChan <- statepkg.ToggleRawLineAction{}
	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.YankSelectionAction{}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PageAction{}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.PageAction{Down: true}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.NewlineAction{}
	case tcell.KeyTab:
		ih.actionChan <- statepkg.TabAction{}
	case tcell.KeyBacktab:
		ih.actionChan <- statepkg.BacktabAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.BackspaceAction{}
	case tcell.KeyDelete:
		ih.actionChan <- statepkg.DeleteAction{}
	case tcell.KeyRune:
		ih.processRune(ev)
	}
	return true
}

func (ih *InputHandler) processRune(ev *tcell.EventKey) {
	r := ev.Rune()
	if ev.Modifiers()&tcell.ModAlt != 0 {
		if cmd, ok := altCommands[r]; ok {
			ih.actionChan <- statepkg.FormatAction{Command: cmd}
			return
		}
		if r == 'z' {
			ih.actionChan <- statepkg.SuspendAction{}
		}
		return
	}
	ih.actionChan <- statepkg.InsertTextAction{Text: string(r)}
}

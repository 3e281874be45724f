package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/overtype/internal/editor"
	"github.com/kk-code-lab/overtype/internal/format"
	statepkg "github.com/kk-code-lab/overtype/internal/state"
)

func process(t *testing.T, state *statepkg.AppState, ev tcell.Event) (statepkg.Action, bool) {
	t.Helper()
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(state)
	keepRunning := handler.ProcessEvent(ev)
	select {
	case action := <-actionChan:
		return action, keepRunning
	default:
		return nil, keepRunning
	}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{name: "typing", ev: tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), want: statepkg.InsertTextAction{Text: "x"}},
		{name: "enter", ev: tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), want: statepkg.NewlineAction{}},
		{name: "tab", ev: tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), want: statepkg.TabAction{}},
		{name: "backtab", ev: tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), want: statepkg.BacktabAction{}},
		{name: "shift right extends", ev: tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), want: statepkg.MoveAction{Direction: editor.Right, Extend: true}},
		{name: "home", ev: tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), want: statepkg.MoveAction{Direction: editor.LineHome}},
		{name: "ctrl b bolds", ev: tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl), want: statepkg.FormatAction{Command: format.Bold}},
		{name: "alt n numbers", ev: tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModAlt), want: statepkg.FormatAction{Command: format.NumberedList}},
		{name: "alt 2 header", ev: tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModAlt), want: statepkg.FormatAction{Command: format.Header2}},
		{name: "save", ev: tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), want: statepkg.SaveAction{}},
		{name: "undo", ev: tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), want: statepkg.UndoAction{}},
		{name: "page down", ev: tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), want: statepkg.PageAction{Down: true}},
		{name: "help", ev: tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), want: statepkg.HelpToggleAction{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, keepRunning := process(t, &statepkg.AppState{}, tt.ev)
			if !keepRunning {
				t.Fatalf("expected handler to keep running")
			}
			if action != tt.want {
				t.Fatalf("expected %#v, got %#v", tt.want, action)
			}
		})
	}
}

func TestQuitStopsHandler(t *testing.T) {
	action, keepRunning := process(t, &statepkg.AppState{}, tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	if keepRunning {
		t.Fatalf("expected quit to stop the handler")
	}
	if _, ok := action.(statepkg.QuitAction); !ok {
		t.Fatalf("Expected statepkg.QuitAction, got %T", action)
	}
}

func TestHelpOverlaySwallowsTyping(t *testing.T) {
	state := &statepkg.AppState{HelpVisible: true}
	action, _ := process(t, state, tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if action != nil {
		t.Fatalf("expected no action while help is visible, got %T", action)
	}
	action, _ = process(t, state, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if _, ok := action.(statepkg.HelpHideAction); !ok {
		t.Fatalf("Expected statepkg.HelpHideAction, got %T", action)
	}
}

func TestResizeEmitsAction(t *testing.T) {
	action, _ := process(t, &statepkg.AppState{}, tcell.NewEventResize(80, 24))
	if action != (statepkg.ResizeAction{Width: 80, Height: 24}) {
		t.Fatalf("unexpected action %#v", action)
	}
}

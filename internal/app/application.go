// Package app runs the terminal editor: it owns the screen, feeds input
// events through the reducer and redraws after every change.
package app

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/overtype/internal/config"
	statepkg "github.com/kk-code-lab/overtype/internal/state"
	inputui "github.com/kk-code-lab/overtype/internal/ui/input"
	renderui "github.com/kk-code-lab/overtype/internal/ui/render"
)

// Application represents the running app.
type Application struct {
	screen         tcell.Screen
	state          *statepkg.AppState
	reducer        *statepkg.StateReducer
	renderer       *renderui.Renderer
	input          *inputui.InputHandler
	actionCh       chan statepkg.Action
	logger         *slog.Logger
	cfg            *config.Config
	shouldQuit     bool
	quitArmed      bool
	clipboardCmd   []string
	clipboardAvail bool
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.state.Editor.Close()
	app.screen.Fini()
	return nil
}

// Dirty reports whether the buffer has unsaved changes.
func (app *Application) Dirty() bool {
	return app.state.Dirty()
}

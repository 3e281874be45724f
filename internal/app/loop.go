package app

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/overtype/internal/config"
	"github.com/kk-code-lab/overtype/internal/editor"
	fsutil "github.com/kk-code-lab/overtype/internal/fs"
	"github.com/kk-code-lab/overtype/internal/markdown"
	statepkg "github.com/kk-code-lab/overtype/internal/state"
	"github.com/kk-code-lab/overtype/internal/ui/input"
	renderui "github.com/kk-code-lab/overtype/internal/ui/render"
)

const quitWarning = "unsaved changes: Ctrl+S saves, Ctrl+Q again quits"

// NewApplication opens path in a terminal screen. A missing file starts an
// empty buffer that is created on first save.
func NewApplication(path string, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	app, err := newApplication(screen, path, cfg, logger)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(screen tcell.Screen, path string, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = &config.Config{SmartLists: true}
	}

	text, err := loadText(path)
	if err != nil {
		return nil, err
	}

	clipboardCmd, clipboardAvail := detectClipboard()

	actionCh := make(chan statepkg.Action, 10)
	state := newInitialState(path, text, cfg, logger, clipboardAvail)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	renderer := renderui.NewRenderer(screen)
	renderer.SetTabWidth(cfg.TabWidth)
	if cfg.Highlight.Enabled {
		renderer.SetCodeStyle(cfg.Highlight.Style)
	}
	inputHandler := input.NewInputHandler(actionCh)

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        statepkg.NewStateReducer(),
		renderer:       renderer,
		input:          inputHandler,
		actionCh:       actionCh,
		logger:         logger,
		cfg:            cfg,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
	}
	inputHandler.SetState(state)
	logger.Info("editor started", "path", path, "bytes", len(text))
	return app, nil
}

func loadText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	text, err := fsutil.ReadDocument(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return text, err
}

func newInitialState(path, text string, cfg *config.Config, logger *slog.Logger, clipboardAvail bool) *statepkg.AppState {
	buf := editor.NewBuffer(text, editor.BufferOptions{})
	state := &statepkg.AppState{
		Path:               path,
		Buffer:             buf,
		ClipboardAvailable: clipboardAvail,
	}
	state.Editor = editor.New(buf, editor.Options{
		Render: markdown.Options{
			PreviewMode:       cfg.PreviewMode,
			ShowActiveLineRaw: cfg.ShowActiveLineRaw,
		},
		SmartLists:    cfg.SmartLists,
		RenumberDelay: cfg.RenumberDelay,
		TabWidth:      cfg.TabWidth,
		// Renumbering fires on a timer goroutine; run it on the loop.
		Post: func(fn func()) {
			state.Dispatch(statepkg.RenumberAction{Run: fn})
		},
		Logger: logger,
	})
	state.MarkSaved()
	return state
}

func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	const animationInterval = 50 * time.Millisecond
	var animationTimer *time.Timer
	var animationCh <-chan time.Time

	startAnimation := func() {
		if animationTimer == nil {
			animationTimer = time.NewTimer(animationInterval)
		} else {
			if !animationTimer.Stop() {
				select {
				case <-animationTimer.C:
				default:
				}
			}
			animationTimer.Reset(animationInterval)
		}
		animationCh = animationTimer.C
	}

	stopAnimation := func() {
		if animationTimer == nil {
			return
		}
		if !animationTimer.Stop() {
			select {
			case <-animationTimer.C:
			default:
			}
		}
		animationCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		if app.shouldAnimate() {
			startAnimation()
		} else {
			stopAnimation()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animationCh:
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	stopAnimation()
}

// handleEvent feeds key and resize events to the input handler. Quitting is
// decided when the resulting action is handled.
func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		app.input.ProcessEvent(ev)
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) shouldAnimate() bool {
	if app.state == nil || app.state.LastYankTime.IsZero() {
		return false
	}
	return time.Since(app.state.LastYankTime) < 100*time.Millisecond
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		if app.state.Dirty() && !app.quitArmed {
			app.quitArmed = true
			app.state.Message = quitWarning
			return true
		}
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.ResizeAction, statepkg.RenumberAction:
	default:
		app.quitArmed = false
	}

	return app.handleAppAction(action)
}

func (app *Application) handleAppAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.YankSelectionAction:
		return app.handleClipboard()
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Warn("action failed", "action", actionName(action), "error", err)
		app.state.LastError = err
	}
	return true
}

package app

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	statepkg "github.com/kk-code-lab/overtype/internal/state"
)

var errNothingSelected = errors.New("nothing selected")

var commandBuilder = exec.Command

// handleClipboard pipes the selected text into the clipboard command.
func (app *Application) handleClipboard() bool {
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		app.state.LastError = errors.New("no clipboard command available")
		return true
	}
	text := app.state.Editor.SelectedText()
	if text == "" {
		app.state.LastError = errNothingSelected
		return true
	}

	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		app.state.LastError = fmt.Errorf("%s: %w", app.clipboardCmd[0], err)
		return true
	}
	app.state.LastError = nil
	app.state.LastYankTime = time.Now()
	app.state.Message = fmt.Sprintf("yanked %d bytes", len(text))
	return true
}

func actionName(action statepkg.Action) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", action), "state.")
}

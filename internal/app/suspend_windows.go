//go:build windows

package app

// Windows has no SIGTSTP/SIGCONT, so suspending only reports that.
func (app *Application) suspendToShell() {
	app.state.Message = "suspend is not available on Windows"
}

func (app *Application) resumeAfterStop() bool {
	return false
}

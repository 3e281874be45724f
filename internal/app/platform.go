package app

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// clipboardCandidate is a copy command and the arguments that make it read
// stdin into the clipboard selection.
type clipboardCandidate struct {
	name string
	args []string
}

var (
	windowsClipboards = []clipboardCandidate{
		{name: "clip.exe"},
		{name: "clip"},
		{name: "powershell", args: []string{"-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}},
		{name: "powershell.exe", args: []string{"-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}},
		{name: "pwsh", args: []string{"-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}},
	}
	waylandClipboards = []clipboardCandidate{
		{name: "wl-copy"},
	}
	unixClipboards = []clipboardCandidate{
		{name: "pbcopy"},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
		{name: "wl-copy"},
	}
)

// detectClipboard finds a command that copies stdin to the system clipboard.
func detectClipboard() ([]string, bool) {
	return detectClipboardInternal(runtime.GOOS, os.Getenv, exec.LookPath)
}

func detectClipboardInternal(goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	var candidates []clipboardCandidate
	switch {
	case strings.EqualFold(goos, "windows"):
		candidates = windowsClipboards
	case getenv("WAYLAND_DISPLAY") != "":
		candidates = append(append(candidates, waylandClipboards...), unixClipboards...)
	default:
		candidates = unixClipboards
	}

	for _, candidate := range candidates {
		if path, err := lookPath(candidate.name); err == nil && path != "" {
			return append([]string{path}, candidate.args...), true
		}
	}
	return nil, false
}

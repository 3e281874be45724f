package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/overtype/internal/state"
)

// buildFooterHelpText returns the footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := []string{"F1: help", "^S: save", "^Q: quit"}
	if state.Dirty() {
		segments[1] = "^S: save*"
	}
	if state.Editor != nil && state.Editor.SelectedText() != "" {
		segments = append(segments, "^B: bold", "^K: link")
		if state.ClipboardAvailable {
			segments = append(segments, "^W: yank")
		}
	}
	return segments
}

package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/overtype/internal/state"
	textutil "github.com/kk-code-lab/overtype/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	previewDesc := "Show task checkboxes"
	rawDesc := "Show caret line raw"
	if state != nil && state.Editor != nil {
		preview, raw := state.Editor.RenderMode()
		if preview {
			previewDesc = "Show task markers"
		}
		if raw {
			rawDesc = "Style caret line"
		}
	}

	sections := []helpOverlaySection{
		{
			title: "Editing",
			entries: []helpOverlayEntry{
				{keys: "←/→/↑/↓", desc: "Move caret (Shift extends)"},
				{keys: "Home/End", desc: "Line start/end"},
				{keys: "PgUp/PgDn", desc: "Scroll a page"},
				{keys: "↵", desc: "New line, continues lists"},
				{keys: "Tab/Shift+Tab", desc: "Indent/outdent lines"},
				{keys: "Ctrl+Z/Ctrl+Y", desc: "Undo/redo"},
			},
		},
		{
			title: "Formatting",
			entries: []helpOverlayEntry{
				{keys: "Ctrl+B, Alt+b", desc: "Bold"},
				{keys: "Alt+i", desc: "Italic"},
				{keys: "Alt+c", desc: "Inline code"},
				{keys: "Ctrl+K, Alt+k", desc: "Link"},
				{keys: "Alt+1…6", desc: "Header level"},
				{keys: "Alt+l/n/t", desc: "Bullet/numbered/task list"},
				{keys: "Alt+q", desc: "Quote"},
			},
		},
		{
			title: "View",
			entries: []helpOverlayEntry{
				{keys: "Ctrl+P", desc: previewDesc},
				{keys: "Ctrl+R", desc: rawDesc},
			},
		},
		{
			title: "File",
			entries: []helpOverlayEntry{
				{keys: "Ctrl+S", desc: "Save"},
				{keys: "Ctrl+W", desc: "Yank selection to clipboard"},
				{keys: "Alt+z", desc: "Suspend"},
				{keys: "Ctrl+Q/Ctrl+C", desc: "Quit"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillLine(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	footer := "F1 toggle · Esc/q close"
	if h > 0 {
		r.drawTextLine(0, h-1, w, r.truncateTextToWidth(footer, w), headerStyle)
	}
}

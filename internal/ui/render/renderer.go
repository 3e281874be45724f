package render

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/kk-code-lab/overtype/internal/markdown"
	statepkg "github.com/kk-code-lab/overtype/internal/state"
	"github.com/kk-code-lab/overtype/internal/textedit"
	textutil "github.com/kk-code-lab/overtype/internal/textutil"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	tabWidth         int
	codeStyle        *chroma.Style
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen:   screen,
		theme:    GetColorTheme(),
		tabWidth: textutil.DefaultTabWidth,
	}
}

// SetTabWidth sets the column stop used when expanding tabs.
func (r *Renderer) SetTabWidth(width int) {
	if width <= 0 {
		width = textutil.DefaultTabWidth
	}
	r.tabWidth = width
}

// SetCodeStyle picks the chroma style used to colour fenced code. An empty
// name turns colouring off.
func (r *Renderer) SetCodeStyle(name string) {
	if strings.TrimSpace(name) == "" {
		r.codeStyle = nil
		return
	}
	r.codeStyle = markdown.LookupStyle(name)
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if state == nil || state.Editor == nil {
		r.screen.Show()
		return
	}

	if state.HelpVisible {
		r.screen.HideCursor()
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	r.drawBody(state, w, h)
	r.drawStatusLine(state, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar with title, file name and mode flags.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	endX := r.drawTextLine(0, 0, w, "overtype", headerStyle)
	if endX < w {
		r.screen.SetContent(endX, 0, ' ', nil, headerStyle)
		endX++
	}

	right := headerFlags(state)
	rightWidth := r.measureTextWidth(right)

	name := "[new]"
	if state.Path != "" {
		name = filepath.Base(state.Path)
	}
	if state.Dirty() {
		name += " [+]"
	}
	name = textutil.SanitizeTerminalText(name)
	available := w - endX - rightWidth - 1
	if available > 0 {
		endX = r.drawTextLine(endX, 0, available, r.fitPath(name, available), headerStyle.Bold(true))
	}

	r.fillLine(endX, 0, w, headerStyle)
	if right != "" && rightWidth < w {
		r.drawTextLine(w-rightWidth, 0, rightWidth, right, headerStyle)
	}
}

func headerFlags(state *statepkg.AppState) string {
	var flags []string
	if formats := state.Editor.ActiveFormats(); len(formats) > 0 {
		flags = append(flags, strings.Join(formats, ","))
	}
	preview, raw := state.Editor.RenderMode()
	if preview {
		flags = append(flags, "preview")
	}
	if raw {
		flags = append(flags, "raw")
	}
	if len(flags) == 0 {
		return ""
	}
	return strings.Join(flags, " · ") + " "
}

// fitPath trims text from the left so the end stays visible.
func (r *Renderer) fitPath(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if r.measureTextWidth(text) <= width {
		return text
	}

	ellipsis := "…"
	ellipsisWidth := max(r.cachedRuneWidth('…'), 1)
	if width <= ellipsisWidth {
		return ellipsis
	}

	available := width - ellipsisWidth
	runes := []rune(text)
	start := len(runes)
	currentWidth := 0
	for i := len(runes) - 1; i >= 0; i-- {
		ruWidth := max(r.cachedRuneWidth(runes[i]), 0)
		if currentWidth+ruWidth > available {
			break
		}
		start = i
		currentWidth += ruWidth
	}
	return ellipsis + string(runes[start:])
}

// drawBody renders the parsed document between the header and status lines
// and places the terminal cursor on the caret.
func (r *Renderer) drawBody(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	bodyHeight := max(h-2, 0)
	doc := state.Document()
	lines := doc.Lines()
	runs := codeRuns(doc, r.codeStyle)

	text := state.Buffer.Text()
	sel := state.Buffer.Selection()
	caret := state.Editor.Caret()
	caretLine := textedit.LineIndex(text, caret)
	lineStart := 0
	for i := 0; i < state.ScrollOffset && i < len(lines); i++ {
		lineStart += len(lines[i].Source) + 1
	}

	cursorShown := false
	for row := 0; row < bodyHeight; row++ {
		y := row + 1
		idx := state.ScrollOffset + row
		if idx >= len(lines) {
			r.screen.SetContent(0, y, '~', nil, baseStyle.Foreground(r.theme.MarkerFg))
			r.fillLine(1, y, w, baseStyle)
			continue
		}
		line := lines[idx]
		lineStyle := baseStyle
		if line.Kind == markdown.LineCode {
			lineStyle = r.theme.codeBlockStyle(baseStyle)
		}

		// Selection columns are source offsets; they only line up with what is
		// drawn when the rendered text shows the source verbatim.
		visible := markdown.VisibleText(line.HTML)
		selStart, selEnd := -1, -1
		if visible == line.Source && sel.Start != sel.End {
			selStart = max(sel.Start-lineStart, 0)
			selEnd = min(sel.End-lineStart, len(line.Source))
		}

		r.drawDocumentLine(y, w, line, lineStyle, runs[line.Number], selStart, selEnd)

		if idx == caretLine {
			col := caret - lineStart
			x := r.columnOf(line.Source, col)
			if visible != line.Source {
				x = min(x, r.columnOf(visible, len(visible)))
			}
			if x < w {
				r.screen.ShowCursor(x, y)
				cursorShown = true
			}
		}
		lineStart += len(line.Source) + 1
	}
	if !cursorShown {
		r.screen.HideCursor()
	}
}

func (r *Renderer) drawDocumentLine(y, w int, line markdown.Line, lineStyle tcell.Style, runs []codeRun, selStart, selEnd int) {
	x := 0
	offset := 0
	for _, seg := range markdown.Segments(line.HTML) {
		segStyle := r.theme.styleForSegment(lineStyle, seg.Style)
		rest := seg.Text
		state := -1
		for rest != "" {
			var cluster string
			cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
			style := segStyle
			if len(runs) > 0 {
				style = runStyle(style, runs, offset)
			}
			if offset >= selStart && offset < selEnd {
				style = style.Reverse(true)
			}
			offset += len(cluster)

			if cluster == "\t" {
				next := (x/r.tabWidth + 1) * r.tabWidth
				for ; x < next && x < w; x++ {
					r.screen.SetContent(x, y, ' ', nil, style)
				}
				continue
			}
			text, width := textutil.Cell(cluster)
			if x+width > w {
				x = w
				continue
			}
			runes := []rune(text)
			r.screen.SetContent(x, y, runes[0], runes[1:], style)
			for i := 1; i < width; i++ {
				r.screen.SetContent(x+i, y, ' ', nil, style)
			}
			x += width
		}
	}
	r.fillLine(x, y, w, lineStyle)
}

// columnOf returns the screen column of byte offset col within text.
func (r *Renderer) columnOf(text string, col int) int {
	col = max(min(col, len(text)), 0)
	return textutil.Column(text[:col], r.tabWidth)
}

// drawStatusLine shows the message or key hints on the left and caret
// position with counts on the right.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	if h < 2 {
		return
	}
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	flashStyle := tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)

	// Flash briefly after a yank.
	style := normalStyle
	if !state.LastYankTime.IsZero() && time.Since(state.LastYankTime) < 100*time.Millisecond {
		style = flashStyle
	}

	stats := state.Editor.Stats()
	right := fmt.Sprintf(" Ln %d, Col %d  %d words  %d chars ", stats.Line, stats.Column, stats.Words, stats.Chars)
	rightWidth := r.measureTextWidth(right)

	leftStyle := style
	var left string
	switch {
	case state.LastError != nil:
		left = " " + state.LastError.Error()
		leftStyle = style.Foreground(r.theme.ErrorFg)
	case state.Message != "":
		left = " " + state.Message
	default:
		left = buildFooterHelpText(state)
	}
	left = textutil.SanitizeTerminalText(left)

	y := h - 1
	available := w - rightWidth
	x := 0
	if available > 0 {
		x = r.drawTextLine(0, y, available, r.truncateTextToWidth(left, available), leftStyle)
	}
	r.fillLine(x, y, w, style)
	if rightWidth <= w {
		r.drawTextLine(w-rightWidth, y, rightWidth, right, style)
	}
}

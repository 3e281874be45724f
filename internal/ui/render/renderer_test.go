package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/overtype/internal/editor"
	statepkg "github.com/kk-code-lab/overtype/internal/state"
	"github.com/kk-code-lab/overtype/internal/textedit"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestState(t *testing.T, text string, sel textedit.Selection) *statepkg.AppState {
	t.Helper()
	buf := editor.NewBuffer(text, editor.BufferOptions{})
	buf.SetSelection(sel)
	ed := editor.New(buf, editor.Options{})
	t.Cleanup(ed.Close)
	return &statepkg.AppState{Path: "/tmp/notes.md", Buffer: buf, Editor: ed, ScreenWidth: 40, ScreenHeight: 6}
}

func rowText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func cellAttrs(screen tcell.SimulationScreen, x, y int) tcell.AttrMask {
	_, _, style, _ := screen.GetContent(x, y)
	_, _, attrs := style.Decompose()
	return attrs
}

func TestRenderDrawsDocument(t *testing.T) {
	screen := newTestScreen(t, 40, 6)
	state := newTestState(t, "# Title\nhello **bold**", textedit.Caret(5))
	NewRenderer(screen).Render(state)

	if got := rowText(screen, 0); !strings.HasPrefix(got, "overtype notes.md") {
		t.Fatalf("unexpected header %q", got)
	}
	if got := rowText(screen, 1); got != "# Title" {
		t.Fatalf("unexpected first line %q", got)
	}
	if got := rowText(screen, 2); got != "hello **bold**" {
		t.Fatalf("unexpected second line %q", got)
	}
	if cellAttrs(screen, 10, 2)&tcell.AttrBold == 0 {
		t.Fatalf("expected bold text at column 10")
	}
	if got := rowText(screen, 3); got != "~" {
		t.Fatalf("expected filler row, got %q", got)
	}
	if got := rowText(screen, 5); !strings.Contains(got, "Ln 1, Col 6") {
		t.Fatalf("unexpected status line %q", got)
	}
	x, y, visible := screen.GetCursor()
	if !visible || x != 5 || y != 1 {
		t.Fatalf("unexpected cursor (%d,%d) visible=%v", x, y, visible)
	}
}

func TestRenderMarksDirtyBuffer(t *testing.T) {
	screen := newTestScreen(t, 40, 6)
	state := newTestState(t, "abc", textedit.Caret(3))
	state.Editor.InsertText("d")
	NewRenderer(screen).Render(state)

	if got := rowText(screen, 0); !strings.Contains(got, "notes.md [+]") {
		t.Fatalf("expected dirty marker, got %q", got)
	}
}

func TestRenderReversesSelection(t *testing.T) {
	screen := newTestScreen(t, 20, 4)
	state := newTestState(t, "abcd", textedit.Selection{Start: 1, End: 3})
	NewRenderer(screen).Render(state)

	for x, want := range []bool{false, true, true, false} {
		if got := cellAttrs(screen, x, 1)&tcell.AttrReverse != 0; got != want {
			t.Fatalf("column %d reverse=%v, want %v", x, got, want)
		}
	}
}

func TestRenderExpandsTabs(t *testing.T) {
	screen := newTestScreen(t, 20, 4)
	state := newTestState(t, "a\tb", textedit.Caret(3))
	r := NewRenderer(screen)
	r.SetTabWidth(4)
	r.Render(state)

	if got := rowText(screen, 1); got != "a   b" {
		t.Fatalf("unexpected line %q", got)
	}
	if x, _, _ := screen.GetCursor(); x != 5 {
		t.Fatalf("expected cursor after tab stop, got %d", x)
	}
}

func TestRenderColorsFencedCode(t *testing.T) {
	screen := newTestScreen(t, 30, 6)
	state := newTestState(t, "```go\nfunc main() {}\n```", textedit.Caret(0))
	r := NewRenderer(screen)
	r.SetCodeStyle("monokai")
	r.Render(state)

	if got := rowText(screen, 2); got != "func main() {}" {
		t.Fatalf("unexpected code line %q", got)
	}
	_, _, style, _ := screen.GetContent(0, 2)
	fg, _, _ := style.Decompose()
	if fg == r.theme.CodeBlockFg {
		t.Fatalf("expected keyword colour from the code style")
	}

	plain := newTestScreen(t, 30, 6)
	NewRenderer(plain).Render(state)
	_, _, style, _ = plain.GetContent(0, 2)
	if fg, _, _ := style.Decompose(); fg != r.theme.CodeBlockFg {
		t.Fatalf("expected plain code colour without a style, got %v", fg)
	}
}

func TestRenderHelpOverlay(t *testing.T) {
	screen := newTestScreen(t, 50, 30)
	state := newTestState(t, "text", textedit.Caret(0))
	state.HelpVisible = true
	NewRenderer(screen).Render(state)

	if got := rowText(screen, 0); !strings.Contains(got, "Help") {
		t.Fatalf("expected help title, got %q", got)
	}
	if got := rowText(screen, 2); got != "  Editing" {
		t.Fatalf("unexpected first section %q", got)
	}
	if _, _, visible := screen.GetCursor(); visible {
		t.Fatalf("expected hidden cursor under the overlay")
	}
}

func TestStatusLineShowsError(t *testing.T) {
	screen := newTestScreen(t, 60, 4)
	state := newTestState(t, "x", textedit.Caret(0))
	state.LastError = statepkg.ErrNoPath
	NewRenderer(screen).Render(state)

	if got := rowText(screen, 3); !strings.Contains(got, statepkg.ErrNoPath.Error()) {
		t.Fatalf("expected error in status line, got %q", got)
	}
}

func TestTruncateAndFit(t *testing.T) {
	r := NewRenderer(nil)
	if got := r.truncateTextToWidth("abcdef", 4); got != "abc…" {
		t.Fatalf("truncate: got %q", got)
	}
	if got := r.truncateTextToWidth("abc", 4); got != "abc" {
		t.Fatalf("truncate short: got %q", got)
	}
	if got := r.fitPath("abcdef", 4); got != "…def" {
		t.Fatalf("fit: got %q", got)
	}
	if got := r.measureTextWidth("a世"); got != 3 {
		t.Fatalf("measure: got %d", got)
	}
}

func TestFooterHelpFollowsSelection(t *testing.T) {
	state := newTestState(t, "word", textedit.Caret(0))
	if got := buildFooterHelpText(state); strings.Contains(got, "bold") {
		t.Fatalf("unexpected selection hints %q", got)
	}
	state.Buffer.SetSelection(textedit.Selection{Start: 0, End: 4})
	state.ClipboardAvailable = true
	got := buildFooterHelpText(state)
	for _, want := range []string{"^B: bold", "^W: yank"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

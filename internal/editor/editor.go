package editor

import (
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/kk-code-lab/overtype/internal/format"
	"github.com/kk-code-lab/overtype/internal/lists"
	"github.com/kk-code-lab/overtype/internal/markdown"
	"github.com/kk-code-lab/overtype/internal/textedit"
)

// Options configures an Editor.
type Options struct {
	// Render is the parser configuration. ActiveLine is filled in from the
	// caret on every render.
	Render markdown.Options

	SmartLists    bool
	RenumberDelay time.Duration
	// TabWidth sets the tab stops used for vertical caret motion. Zero
	// means textutil.DefaultTabWidth.
	TabWidth int

	// Post runs fn on the goroutine that owns the host. The renumber timer
	// fires on its own goroutine and hands its work over through Post. A nil
	// Post runs fn directly under the editor lock.
	Post func(fn func())

	Logger *slog.Logger
}

// Editor applies formatting commands and list behaviour to a Host. Each
// Editor carries its own parser configuration and renumber timer.
type Editor struct {
	mu        sync.Mutex
	host      Host
	opts      Options
	logger    *slog.Logger
	renumber  *lists.Scheduler
	anchor    int
	hasAnchor bool
}

// New returns an editor bound to host.
func New(host Host, opts Options) *Editor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Render.Logger == nil {
		opts.Render.Logger = logger
	}
	e := &Editor{host: host, opts: opts, logger: logger}
	e.renumber = lists.NewScheduler(opts.RenumberDelay, e.renumberFired)
	return e
}

// Host returns the buffer the editor drives.
func (e *Editor) Host() Host { return e.host }

// Close stops the renumber timer.
func (e *Editor) Close() {
	e.renumber.Stop()
}

func (e *Editor) renumberFired() {
	if e.opts.Post != nil {
		e.opts.Post(e.RenumberNow)
		return
	}
	e.RenumberNow()
}

// apply routes edit through the host's native replace when it has one.
func (e *Editor) apply(edit textedit.Edit) {
	if r, ok := e.host.(Replacer); ok {
		r.Replace(edit)
		return
	}
	e.host.SetText(edit.Apply(e.host.Text()))
	e.host.SetSelection(edit.Selection)
}

func (e *Editor) state() (string, textedit.Selection) {
	text := e.host.Text()
	return text, e.host.Selection().Normalize(len(text))
}

// ActiveLine is the zero-based line holding the caret.
func (e *Editor) ActiveLine() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	return textedit.LineIndex(text, sel.Start)
}

func (e *Editor) renderOptions(text string, sel textedit.Selection) markdown.Options {
	opts := e.opts.Render
	opts.ActiveLine = textedit.LineIndex(text, sel.Start)
	return opts
}

// SetRenderMode switches preview mode and the raw caret line.
func (e *Editor) SetRenderMode(preview, rawLine bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Render.PreviewMode = preview
	e.opts.Render.ShowActiveLineRaw = rawLine
}

// RenderMode reports the flags set by SetRenderMode.
func (e *Editor) RenderMode() (preview, rawLine bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts.Render.PreviewMode, e.opts.Render.ShowActiveLineRaw
}

// Render returns the preview html for the current buffer.
func (e *Editor) Render() string {
	return e.Document().HTML()
}

// Document parses the current buffer.
func (e *Editor) Document() *markdown.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	return markdown.Parse(text, e.renderOptions(text, sel))
}

// Apply runs a formatting command against the selection.
func (e *Editor) Apply(cmd format.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	edit, err := format.Apply(cmd, text, sel)
	if err != nil {
		return err
	}
	e.logger.Debug("format command", "command", string(cmd), "start", edit.Start, "end", edit.End)
	e.apply(edit)
	e.hasAnchor = false
	return nil
}

// InsertLink wraps the selection in a link.
func (e *Editor) InsertLink(opts format.LinkOptions) {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	e.apply(format.InsertLink(text, sel, opts))
	e.hasAnchor = false
}

// InsertHeader sets the header level of the caret line. Levels outside 1-6
// become 1.
func (e *Editor) InsertHeader(level int, toggle bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	e.apply(format.Header(text, sel, level, toggle))
}

// ActiveFormats reports the formats around the selection.
func (e *Editor) ActiveFormats() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	return format.ActiveFormats(text, sel)
}

// HandleEnter continues a list at the caret. It reports false when the caller
// should insert a plain newline.
func (e *Editor) HandleEnter() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.opts.SmartLists {
		return false
	}
	text, sel := e.state()
	if !sel.IsEmpty() {
		return false
	}
	cont, ok := lists.Continue(text, sel.Start)
	if !ok {
		return false
	}
	e.apply(cont.Edit)
	e.hasAnchor = false
	if cont.Renumber {
		e.renumber.Schedule()
	}
	return true
}

// HandleTab indents the selected lines, or inserts an indent at the caret.
func (e *Editor) HandleTab() {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	e.apply(format.Indent(text, sel))
}

// HandleBacktab outdents the selected lines.
func (e *Editor) HandleBacktab() {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	e.apply(format.Outdent(text, sel))
}

// RenumberNow renumbers every numbered list and keeps the caret on the same
// logical position.
func (e *Editor) RenumberNow() {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	updated, caret := lists.RenumberWithCursor(text, sel.Start)
	if updated == text {
		return
	}
	e.logger.Debug("renumbered lists", "caret", caret)
	e.apply(textedit.Diff(text, updated, textedit.Caret(caret)))
}

// ScheduleRenumber arms the debounced renumber pass.
func (e *Editor) ScheduleRenumber() {
	e.renumber.Schedule()
}

// Stats summarizes the buffer for a status line.
type Stats struct {
	Chars  int
	Words  int
	Lines  int
	Line   int
	Column int
}

// Stats counts characters, words and lines, and locates the caret. Line and
// Column are 1-based.
func (e *Editor) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	start := textedit.LineStart(text, sel.Start)
	return Stats{
		Chars:  utf8.RuneCountInString(text),
		Words:  len(strings.Fields(text)),
		Lines:  strings.Count(text, "\n") + 1,
		Line:   textedit.LineIndex(text, sel.Start) + 1,
		Column: utf8.RuneCountInString(text[start:sel.Start]) + 1,
	}
}

// SelectedText returns the text under the selection.
func (e *Editor) SelectedText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, sel := e.state()
	return text[sel.Start:sel.End]
}

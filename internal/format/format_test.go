package format

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kk-code-lab/overtype/internal/textedit"
)

func sel(start, end int) textedit.Selection { return textedit.Selection{Start: start, End: end} }

func apply(t *testing.T, cmd Command, text string, s textedit.Selection) (string, textedit.Selection) {
	t.Helper()
	edit, err := Apply(cmd, text, s)
	if err != nil {
		t.Fatalf("Apply(%s): %v", cmd, err)
	}
	return edit.Apply(text), edit.Selection
}

func TestToggleRoundTrip(t *testing.T) {
	commands := []Command{Bold, Italic, Code, Quote, BulletList, NumberedList, TaskList, Header1, Header3}
	selections := []textedit.Selection{sel(0, 5), sel(2, 2)}
	const text = "hello world"
	for _, cmd := range commands {
		for _, s := range selections {
			once, afterOnce := apply(t, cmd, text, s)
			if once == text {
				t.Fatalf("%s %v: expected first application to change text", cmd, s)
			}
			twice, afterTwice := apply(t, cmd, once, afterOnce)
			if twice != text {
				t.Fatalf("%s %v: expected %q after toggling twice, got %q", cmd, s, text, twice)
			}
			if afterTwice != s {
				t.Fatalf("%s %v: expected selection restored, got %v", cmd, s, afterTwice)
			}
		}
	}
}

func TestBlockStyle(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		text string
		sel  textedit.Selection
		want textedit.Edit
	}{
		{
			name: "bold selection",
			cmd:  Bold, text: "hello world", sel: sel(0, 5),
			want: textedit.Edit{Start: 0, End: 5, Text: "**hello**", Selection: sel(2, 7)},
		},
		{
			name: "bold caret expands to word",
			cmd:  Bold, text: "say hello", sel: sel(6, 6),
			want: textedit.Edit{Start: 4, End: 9, Text: "**hello**", Selection: sel(8, 8)},
		},
		{
			name: "bold caret removes markers",
			cmd:  Bold, text: "say **hello**", sel: sel(8, 8),
			want: textedit.Edit{Start: 4, End: 13, Text: "hello", Selection: sel(6, 6)},
		},
		{
			name: "whitespace stays outside markers",
			cmd:  Bold, text: "x hi y", sel: sel(1, 5),
			want: textedit.Edit{Start: 1, End: 5, Text: " **hi** ", Selection: sel(4, 6)},
		},
		{
			name: "italic uses underscores",
			cmd:  Italic, text: "word", sel: sel(0, 4),
			want: textedit.Edit{Start: 0, End: 4, Text: "_word_", Selection: sel(1, 5)},
		},
		{
			name: "empty caret inserts markers",
			cmd:  Bold, text: "a  b", sel: sel(2, 2),
			want: textedit.Edit{Start: 2, End: 2, Text: "****", Selection: sel(4, 4)},
		},
		{
			name: "multi-line code becomes a fence",
			cmd:  Code, text: "a\nb", sel: sel(0, 3),
			want: textedit.Edit{Start: 0, End: 3, Text: "```\na\nb\n```", Selection: sel(4, 7)},
		},
		{
			name: "fence is removed again",
			cmd:  Code, text: "```\na\nb\n```", sel: sel(4, 7),
			want: textedit.Edit{Start: 0, End: 11, Text: "a\nb", Selection: sel(0, 3)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.cmd, tt.text, tt.sel)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("edit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInsertLink(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		sel      textedit.Selection
		opts     LinkOptions
		wantText string
		wantSel  textedit.Selection
	}{
		{name: "empty", text: "", sel: sel(0, 0), wantText: "[](url)", wantSel: sel(1, 1)},
		{name: "word selects url placeholder", text: "site", sel: sel(0, 4), wantText: "[site](url)", wantSel: sel(7, 10)},
		{
			name: "selected url becomes target", text: "https://x.io", sel: sel(0, 12),
			wantText: "[https://x.io](https://x.io)", wantSel: sel(1, 13),
		},
		{
			name: "explicit url and text", text: "see ", sel: sel(4, 4),
			opts:     LinkOptions{URL: "https://a.b", Text: "docs"},
			wantText: "see [docs](https://a.b)", wantSel: sel(5, 9),
		},
		{
			name: "url inside selection fills the target", text: "go https://x", sel: sel(0, 12),
			wantText: "[](go https://x)", wantSel: sel(1, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edit := InsertLink(tt.text, tt.sel, tt.opts)
			if got := edit.Apply(tt.text); got != tt.wantText {
				t.Fatalf("text = %q, want %q", got, tt.wantText)
			}
			if edit.Selection != tt.wantSel {
				t.Fatalf("selection = %v, want %v", edit.Selection, tt.wantSel)
			}
		})
	}
}

func TestLineCommands(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		text     string
		sel      textedit.Selection
		wantText string
		wantSel  textedit.Selection
	}{
		{name: "quote caret", cmd: Quote, text: "hello", sel: sel(2, 2), wantText: "> hello", wantSel: sel(4, 4)},
		{name: "quote pads paragraph", cmd: Quote, text: "a\nb\nc", sel: sel(2, 2), wantText: "a\n\n> b\n\nc", wantSel: sel(5, 5)},
		{name: "quote keeps multi-line extent", cmd: Quote, text: "one\ntwo", sel: sel(1, 5), wantText: "> one\n> two", wantSel: sel(3, 9)},
		{name: "task list", cmd: TaskList, text: "x", sel: sel(1, 1), wantText: "- [ ] x", wantSel: sel(7, 7)},
		{name: "bullets", cmd: BulletList, text: "a\nb", sel: sel(0, 3), wantText: "- a\n- b", wantSel: sel(2, 7)},
		{name: "bullets removed", cmd: BulletList, text: "- a\n- b", sel: sel(2, 7), wantText: "a\nb", wantSel: sel(0, 3)},
		{name: "numbers", cmd: NumberedList, text: "a\nb", sel: sel(0, 3), wantText: "1. a\n2. b", wantSel: sel(3, 9)},
		{name: "numbers to bullets", cmd: BulletList, text: "1. a\n2. b", sel: sel(0, 9), wantText: "- a\n- b", wantSel: sel(0, 7)},
		{name: "single line pads list", cmd: BulletList, text: "1. a\n2. b", sel: sel(3, 3), wantText: "- a\n\n2. b", wantSel: sel(2, 2)},
		{name: "header added", cmd: Header1, text: "Title", sel: sel(0, 0), wantText: "# Title", wantSel: sel(2, 2)},
		{name: "header level changed", cmd: Header2, text: "# Title", sel: sel(4, 4), wantText: "## Title", wantSel: sel(5, 5)},
		{name: "header toggled off", cmd: Header2, text: "## Title", sel: sel(1, 1), wantText: "Title", wantSel: sel(0, 0)},
		{name: "header touches first line only", cmd: Header3, text: "a\nb", sel: sel(0, 3), wantText: "### a\nb", wantSel: sel(4, 7)},
		{name: "indent selection", cmd: IndentLines, text: "a\nb", sel: sel(0, 3), wantText: "  a\n  b", wantSel: sel(0, 7)},
		{name: "indent caret", cmd: IndentLines, text: "ab", sel: sel(1, 1), wantText: "a  b", wantSel: sel(3, 3)},
		{name: "outdent selection", cmd: OutdentLines, text: "  a\n b", sel: sel(0, 6), wantText: "a\n b", wantSel: sel(0, 4)},
		{name: "outdent caret is a no-op", cmd: OutdentLines, text: "  a", sel: sel(2, 2), wantText: "  a", wantSel: sel(2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotText, gotSel := apply(t, tt.cmd, tt.text, tt.sel)
			if gotText != tt.wantText {
				t.Fatalf("text = %q, want %q", gotText, tt.wantText)
			}
			if gotSel != tt.wantSel {
				t.Fatalf("selection = %v, want %v", gotSel, tt.wantSel)
			}
		})
	}
}

func TestActiveFormats(t *testing.T) {
	tests := []struct {
		text string
		sel  textedit.Selection
		want []string
	}{
		{text: "- [ ] task", sel: sel(3, 3), want: []string{FormatTaskList}},
		{text: "- item", sel: sel(3, 3), want: []string{FormatBulletList}},
		{text: "1. item", sel: sel(4, 4), want: []string{FormatNumberedList}},
		{text: "> q", sel: sel(2, 2), want: []string{FormatQuote}},
		{text: "## T", sel: sel(3, 3), want: []string{FormatHeader2}},
		{text: "a **bold** b", sel: sel(5, 5), want: []string{FormatBold}},
		{text: "[link](u)", sel: sel(2, 2), want: []string{FormatLink}},
		{text: "plain", sel: sel(2, 2), want: nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ActiveFormats(tt.text, tt.sel)); diff != "" {
			t.Fatalf("ActiveFormats(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := Apply("strike", "x", sel(0, 0)); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if _, err := ParseCommand("h7"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if cmd, err := ParseCommand("numbered-list"); err != nil || cmd != NumberedList {
		t.Fatalf("ParseCommand = %q, %v", cmd, err)
	}
}

func TestStyleForReturnsCopy(t *testing.T) {
	s, ok := StyleFor(Bold)
	if !ok {
		t.Fatalf("expected bold style")
	}
	s.Prefix = "!!"
	again, _ := StyleFor(Bold)
	if again.Prefix != "**" {
		t.Fatalf("expected stored style untouched, got %q", again.Prefix)
	}
}

package lists

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kk-code-lab/overtype/internal/textedit"
)

func TestContextAt(t *testing.T) {
	tests := []struct {
		text string
		pos  int
		want Context
	}{
		{
			text: "  - item", pos: 5,
			want: Context{InList: true, Kind: Bullet, Indent: "  ", Marker: "-", Content: "item", LineEnd: 8, MarkerEnd: 4},
		},
		{
			text: "x\n12. twelve", pos: 4,
			want: Context{InList: true, Kind: Numbered, Marker: "12", Number: 12, Content: "twelve", LineStart: 2, LineEnd: 12, MarkerEnd: 6},
		},
		{
			text: "- [x] done", pos: 0,
			want: Context{InList: true, Kind: Checkbox, Marker: "-", Checked: true, Content: "done", LineEnd: 10, MarkerEnd: 6},
		},
		{
			text: "- [X] upper", pos: 0,
			want: Context{InList: true, Kind: Bullet, Marker: "-", Content: "[X] upper", LineEnd: 11, MarkerEnd: 2},
		},
		{
			text: "plain", pos: 2,
			want: Context{Content: "plain", LineEnd: 5},
		},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ContextAt(tt.text, tt.pos)); diff != "" {
			t.Fatalf("ContextAt(%q, %d) mismatch (-want +got):\n%s", tt.text, tt.pos, diff)
		}
	}
}

func TestContinue(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		caret        int
		wantText     string
		wantCaret    int
		wantRenumber bool
	}{
		{name: "bullet at end", text: "- a", caret: 3, wantText: "- a\n- ", wantCaret: 6},
		{name: "keeps marker character", text: "* x", caret: 3, wantText: "* x\n* ", wantCaret: 6},
		{name: "numbered increments", text: "1. a", caret: 4, wantText: "1. a\n2. ", wantCaret: 8, wantRenumber: true},
		{name: "checkbox starts unchecked", text: "- [x] done", caret: 10, wantText: "- [x] done\n- [ ] ", wantCaret: 17},
		{name: "empty item ends the list", text: "- a\n- ", caret: 6, wantText: "- a\n", wantCaret: 4},
		{name: "empty numbered item does not renumber", text: "1. a\n2. ", caret: 8, wantText: "1. a\n", wantCaret: 5},
		{name: "split inside content", text: "- ab", caret: 3, wantText: "- a\n- b", wantCaret: 6},
		{name: "caret before marker continues after line", text: "  - a", caret: 1, wantText: "  - a\n  - ", wantCaret: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Continue(tt.text, tt.caret)
			if !ok {
				t.Fatalf("expected list continuation")
			}
			if text := got.Edit.Apply(tt.text); text != tt.wantText {
				t.Fatalf("text = %q, want %q", text, tt.wantText)
			}
			if got.Edit.Selection != textedit.Caret(tt.wantCaret) {
				t.Fatalf("selection = %v, want caret %d", got.Edit.Selection, tt.wantCaret)
			}
			if got.Renumber != tt.wantRenumber {
				t.Fatalf("renumber = %v, want %v", got.Renumber, tt.wantRenumber)
			}
		})
	}
}

func TestContinueOutsideList(t *testing.T) {
	if _, ok := Continue("plain text", 3); ok {
		t.Fatalf("expected no continuation outside a list")
	}
}

func TestRenumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "sequential", text: "5. a\n7. b\n9. c", want: "1. a\n2. b\n3. c"},
		{name: "nested levels", text: "1. a\n   1. b\n   5. c\n2. d", want: "1. a\n   1. b\n   2. c\n2. d"},
		{name: "shallower item resets deeper", text: "1. a\n  1. x\n3. b\n  7. y", want: "1. a\n  1. x\n2. b\n  1. y"},
		{name: "blank line resets", text: "3. a\n\n8. b", want: "1. a\n\n1. b"},
		{name: "unindented text resets", text: "2. a\ntext\n4. b", want: "1. a\ntext\n1. b"},
		{name: "indented continuation keeps count", text: "2. a\n   more\n4. b", want: "1. a\n   more\n2. b"},
		{name: "bullets untouched", text: "- a\n- b", want: "- a\n- b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Renumber(tt.text); got != tt.want {
				t.Fatalf("Renumber(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRenumberWithCursor(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		wantText   string
		wantCursor int
	}{
		{name: "cursor on shrinking line", text: "9. a\n10. b", cursor: 10, wantText: "1. a\n2. b", wantCursor: 9},
		{name: "cursor after shrinking line", text: "10. a\n    b", cursor: 11, wantText: "1. a\n    b", wantCursor: 10},
		{name: "cursor inside indentation stays", text: "  9. a\n  10. b", cursor: 8, wantText: "  1. a\n  2. b", wantCursor: 8},
		{name: "unchanged", text: "1. a\n2. b", cursor: 3, wantText: "1. a\n2. b", wantCursor: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, cursor := RenumberWithCursor(tt.text, tt.cursor)
			if text != tt.wantText {
				t.Fatalf("text = %q, want %q", text, tt.wantText)
			}
			if cursor != tt.wantCursor {
				t.Fatalf("cursor = %d, want %d", cursor, tt.wantCursor)
			}
		})
	}
}

func TestSchedulerCoalescesRequests(t *testing.T) {
	var runs atomic.Int32
	done := make(chan struct{}, 4)
	s := NewScheduler(20*time.Millisecond, func() {
		runs.Add(1)
		done <- struct{}{}
	})
	defer s.Stop()

	for range 5 {
		s.Schedule()
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected scheduled run")
	}
	time.Sleep(60 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected 1 run, got %d", got)
	}
	if s.Pending() {
		t.Fatalf("expected nothing pending after run")
	}
}

func TestSchedulerCancel(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(10*time.Millisecond, func() { runs.Add(1) })
	s.Schedule()
	if !s.Pending() {
		t.Fatalf("expected pending run")
	}
	s.Cancel()
	time.Sleep(40 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Fatalf("expected cancelled run, got %d runs", got)
	}

	s.Stop()
	s.Schedule()
	if s.Pending() {
		t.Fatalf("expected stopped scheduler to ignore requests")
	}
}

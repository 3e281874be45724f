package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegmentsBold(t *testing.T) {
	got := Segments(ParseLine("**b** x", false))
	want := []Segment{
		{Text: "**", Style: StyleStrong | StyleMarker},
		{Text: "b", Style: StyleStrong},
		{Text: "**", Style: StyleStrong | StyleMarker},
		{Text: " x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Segments mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentsHeaderAndLink(t *testing.T) {
	segs := Segments(ParseLine("## [a](b)", false))
	var link Segment
	for _, s := range segs {
		if s.Text == "a" {
			link = s
		}
	}
	if !link.Style.Has(StyleHeader2 | StyleLink) {
		t.Fatalf("expected link text inside header, got %#v", segs)
	}
	if link.Style.Has(StyleMarker) {
		t.Fatalf("link text should not be a marker: %#v", link)
	}
}

func TestSegmentsCheckbox(t *testing.T) {
	segs := Segments(ParseLine("- [x] done", true))
	if len(segs) == 0 || !segs[0].Style.Has(StyleCheckbox|StyleTask) || segs[0].Text != "☑" {
		t.Fatalf("expected checked box first, got %#v", segs)
	}
}

func TestVisibleTextDecodesSpaces(t *testing.T) {
	if got := VisibleText("<div>&nbsp;&nbsp;a&amp;b</div>"); got != "  a&b" {
		t.Fatalf("VisibleText = %q", got)
	}
	if got := VisibleText(`<div class="raw-line">**x**</div>`); !strings.Contains(got, "**x**") {
		t.Fatalf("VisibleText = %q", got)
	}
}

func TestChromaHighlighter(t *testing.T) {
	h := NewChromaHighlighter("monokai")
	res, err := h.Highlight("x := 1", "go")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !strings.Contains(res.HTML, "<span") || strings.TrimRight(VisibleText(res.HTML), "\n") != "x := 1" {
		t.Fatalf("unexpected highlight output %q", res.HTML)
	}
	res, err = h.Highlight("x", "no-such-language")
	if err != nil || res.HTML != "" {
		t.Fatalf("expected blank result for unknown language, got %q, %v", res.HTML, err)
	}
}

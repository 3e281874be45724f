package markdown

import (
	"strings"
	"testing"
)

func TestProtectCodeAndLinks(t *testing.T) {
	protected, arena := Protect("`a` and [t](u)")
	if protected != Placeholder(0)+" and "+Placeholder(1) {
		t.Fatalf("unexpected protected text %q", protected)
	}
	if arena.Len() != 2 {
		t.Fatalf("expected 2 sanctuaries, got %d", arena.Len())
	}
	code := arena.At(0)
	if code.Kind != SanctuaryCode || code.Content != "a" || code.OpenMarker != "`" || code.Original != "`a`" {
		t.Fatalf("unexpected code sanctuary %#v", code)
	}
	link := arena.At(1)
	if link.Kind != SanctuaryLink || link.Content != "t" || link.URL != "u" || link.Original != "[t](u)" {
		t.Fatalf("unexpected link sanctuary %#v", link)
	}
}

func TestProtectReplacesCodeRightToLeft(t *testing.T) {
	protected, arena := Protect("`a` `b`")
	if protected != Placeholder(1)+" "+Placeholder(0) {
		t.Fatalf("expected right-most span to be numbered first, got %q", protected)
	}
	got := arena.Restore(protected, nil)
	want := wrap("code", "`", "a") + " " + wrap("code", "`", "b")
	if got != want {
		t.Fatalf("Restore\n got %q\nwant %q", got, want)
	}
}

func TestProtectLeavesCodeInsideURL(t *testing.T) {
	protected, arena := Protect("[t](http://x/`y`)")
	if arena.Len() != 1 || arena.At(0).Kind != SanctuaryLink {
		t.Fatalf("expected only the link to be protected, got %d entries", arena.Len())
	}
	if arena.At(0).URL != "http://x/`y`" {
		t.Fatalf("expected URL to keep its backticks, got %q", arena.At(0).URL)
	}
	if protected != Placeholder(0) {
		t.Fatalf("unexpected protected text %q", protected)
	}
}

func TestRestoreLink(t *testing.T) {
	got := ParseInline("[site](https://example.com)")
	want := `<a href="https://example.com" style="anchor-name: --link-0">` + mk + "[" + end +
		"site" + `<span class="syntax-marker url-part">](https://example.com)</span></a>`
	if got != want {
		t.Fatalf("link markup\n got %q\nwant %q", got, want)
	}
}

func TestRestoreLinkSanitizesHref(t *testing.T) {
	got := ParseInline("[x](javascript:alert)")
	if !strings.Contains(got, `href="#"`) {
		t.Fatalf("expected unsafe href to be replaced, got %q", got)
	}
	if !strings.Contains(got, "](javascript:alert)") {
		t.Fatalf("expected source text to stay visible, got %q", got)
	}
}

func TestRestoreLinkTextFormatting(t *testing.T) {
	got := ParseInline("[**b**](u)")
	if !strings.Contains(got, wrap("strong", "**", "b")) {
		t.Fatalf("expected bold inside link text, got %q", got)
	}

	got = ParseInline("[`*a*`](u)")
	if !strings.Contains(got, wrap("code", "`", "*a*")) {
		t.Fatalf("expected code inside link text to stay literal, got %q", got)
	}
	if strings.Contains(got, "<em>") {
		t.Fatalf("expected no italic inside code, got %q", got)
	}
}

func TestRestoreNumbersLinksLeftToRight(t *testing.T) {
	protected, arena := Protect("[a](x) [b](y)")
	counter := &LinkCounter{}
	got := arena.Restore(protected, counter)
	first := strings.Index(got, "--link-0")
	second := strings.Index(got, "--link-1")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected anchors numbered in order, got %q", got)
	}
	if n := counter.Next(); n != 2 {
		t.Fatalf("expected counter to advance to 2, got %d", n)
	}
}

func TestBracketsInsideCodeAreNotLinks(t *testing.T) {
	got := ParseInline("`[a](b)`")
	if strings.Contains(got, "<a ") {
		t.Fatalf("expected code span to hide link syntax, got %q", got)
	}
}

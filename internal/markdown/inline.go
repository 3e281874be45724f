package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// spanRule describes one delimiter pair. The open and close predicates look
// at the bytes around a candidate delimiter at index i, so rules that depend
// on neighbouring characters do not need regexp lookaround.
type spanRule struct {
	marker string
	tag    string
	open   func(s string, i int) bool
	close  func(s string, i int) bool
}

var (
	strikeDouble = spanRule{marker: "~~", tag: "del", open: isolatedRun('~', 2), close: isolatedRun('~', 2)}
	strikeSingle = spanRule{marker: "~", tag: "del", open: isolatedRun('~', 1), close: isolatedRun('~', 1)}
	boldStar     = spanRule{marker: "**", tag: "strong", open: always, close: always}
	boldUnder    = spanRule{marker: "__", tag: "strong", open: always, close: always}
	italicStar   = spanRule{marker: "*", tag: "em", open: italicStarOpen, close: isolatedRun('*', 1)}
	italicUnder  = spanRule{marker: "_", tag: "em", open: italicUnderOpen, close: italicUnderClose}
)

// inlineRules is the fixed application order: strikethrough, bold, italic.
var inlineRules = []spanRule{strikeDouble, strikeSingle, boldStar, boldUnder, italicStar, italicUnder}

// FormatInline applies strikethrough, bold and italic to text that has already
// had its code spans and links protected.
func FormatInline(text string) string {
	for _, rule := range inlineRules {
		text = rule.apply(text)
	}
	return text
}

func (r spanRule) apply(s string) string {
	if !strings.Contains(s, r.marker) {
		return s
	}
	var b strings.Builder
	last := 0
	i := 0
	for i < len(s) {
		if !strings.HasPrefix(s[i:], r.marker) || !r.open(s, i) {
			i++
			continue
		}
		contentStart := i + len(r.marker)
		closeAt := r.findClose(s, contentStart)
		if closeAt < 0 {
			i++
			continue
		}
		b.WriteString(s[last:i])
		writeMarked(&b, r.tag, r.marker, s[contentStart:closeAt], r.marker)
		i = closeAt + len(r.marker)
		last = i
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// findClose returns the first closing delimiter that leaves at least one
// character of content, or -1. Spans never cross a line break.
func (r spanRule) findClose(s string, contentStart int) int {
	if contentStart >= len(s) || isLineBreak(s[contentStart]) {
		return -1
	}
	_, size := utf8.DecodeRuneInString(s[contentStart:])
	for j := contentStart + size; j < len(s); j++ {
		if isLineBreak(s[j]) {
			return -1
		}
		if strings.HasPrefix(s[j:], r.marker) && r.close(s, j) {
			return j
		}
	}
	return -1
}

func writeMarked(b *strings.Builder, tag, open, content, close string) {
	b.WriteString("<" + tag + `><span class="syntax-marker">`)
	b.WriteString(open)
	b.WriteString("</span>")
	b.WriteString(content)
	b.WriteString(`<span class="syntax-marker">`)
	b.WriteString(close)
	b.WriteString("</span></" + tag + ">")
}

func always(string, int) bool { return true }

// isolatedRun accepts a delimiter of n copies of c that is neither preceded
// nor followed by another c.
func isolatedRun(c byte, n int) func(string, int) bool {
	return func(s string, i int) bool {
		if i > 0 && s[i-1] == c {
			return false
		}
		return i+n >= len(s) || s[i+n] != c
	}
}

// italicStarOpen also refuses a '*' right after '>', which keeps the markers
// emitted for bold from being read as italic openers.
func italicStarOpen(s string, i int) bool {
	if i > 0 && s[i-1] == '>' {
		return false
	}
	return isolatedRun('*', 1)(s, i)
}

func italicUnderOpen(s string, i int) bool {
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return i+1 >= len(s) || s[i+1] != '_'
}

func italicUnderClose(s string, i int) bool {
	if s[i-1] == '_' {
		return false
	}
	if i+1 >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i+1:])
	return unicode.IsSpace(r)
}

func isLineBreak(c byte) bool { return c == '\n' || c == '\r' }

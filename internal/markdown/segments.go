package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// Style is a bit set describing how a run of visible text was marked up.
type Style uint32

const (
	StyleStrong Style = 1 << iota
	StyleEmphasis
	StyleStrike
	StyleCode
	StyleLink
	StyleURL
	StyleHeader1
	StyleHeader2
	StyleHeader3
	StyleMarker
	StyleQuote
	StyleListItem
	StyleTask
	StyleFence
	StyleRule
	StyleRaw
	StyleCheckbox
)

// Has reports whether every bit of flag is set.
func (s Style) Has(flag Style) bool { return s&flag == flag }

// Segment is a run of visible text sharing one style.
type Segment struct {
	Text  string
	Style Style
}

type openElement struct {
	name  string
	style Style
}

// Segments flattens a rendered fragment into styled text runs. Non-breaking
// spaces come back as plain spaces so the runs line up with the source.
func Segments(fragment string) []Segment {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var (
		stack []openElement
		out   []Segment
	)
	current := func() Style {
		var s Style
		for _, e := range stack {
			s |= e.style
		}
		return s
	}
	emit := func(text string, style Style) {
		if text == "" {
			return
		}
		if n := len(out); n > 0 && out[n-1].Style == style {
			out[n-1].Text += text
			return
		}
		out = append(out, Segment{Text: text, Style: style})
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			return out
		case html.TextToken:
			emit(strings.ReplaceAll(string(z.Text()), "\u00a0", " "), current())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			var class string
			checked := false
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch string(key) {
				case "class":
					class = string(val)
				case "checked":
					checked = true
				}
			}
			tag := string(name)
			switch tag {
			case "input":
				box := "☐"
				if checked {
					box = "☑"
				}
				emit(box, current()|StyleCheckbox)
				continue
			case "br", "img", "hr":
				continue
			}
			stack = append(stack, openElement{name: tag, style: elementStyle(tag, class)})
		case html.EndTagToken:
			name, _ := z.TagName()
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].name == string(name) {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

// VisibleText returns the text a reader sees in a rendered fragment.
func VisibleText(fragment string) string {
	var b strings.Builder
	for _, seg := range Segments(fragment) {
		b.WriteString(seg.Text)
	}
	return b.String()
}

func elementStyle(tag, class string) Style {
	var s Style
	switch tag {
	case "strong", "b":
		s |= StyleStrong
	case "em", "i":
		s |= StyleEmphasis
	case "del", "s":
		s |= StyleStrike
	case "code":
		s |= StyleCode
	case "a":
		s |= StyleLink
	case "h1":
		s |= StyleHeader1
	case "h2":
		s |= StyleHeader2
	case "h3", "h4", "h5", "h6":
		s |= StyleHeader3
	case "li":
		s |= StyleListItem
	}
	for _, c := range strings.Fields(class) {
		switch c {
		case "syntax-marker":
			s |= StyleMarker
		case "url-part":
			s |= StyleURL
		case "blockquote":
			s |= StyleQuote
		case "code-fence":
			s |= StyleFence
		case "hr-marker":
			s |= StyleRule
		case "raw-line":
			s |= StyleRaw
		case "task-list":
			s |= StyleTask
		}
	}
	return s
}

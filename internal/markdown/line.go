package markdown

import (
	"regexp"
	"strings"
)

var (
	rulePattern    = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})$`)
	fencePattern   = regexp.MustCompile("^```[^`]*$")
	headerPattern  = regexp.MustCompile(`^(#{1,3})\s(.+)$`)
	quotePattern   = regexp.MustCompile(`^&gt; (.+)$`)
	taskPattern    = regexp.MustCompile(`^((?:&nbsp;)*)-\s+\[([ xX])\]\s+(.+)$`)
	bulletPattern  = regexp.MustCompile(`^((?:&nbsp;)*)([-*+])\s(.+)$`)
	orderedPattern = regexp.MustCompile(`^((?:&nbsp;)*)(\d+\.)\s(.+)$`)
)

// IsFence reports whether a raw source line opens or closes a fenced block.
func IsFence(line string) bool {
	return fencePattern.MatchString(line)
}

// lineParser carries the state that spans lines within one render: the link
// anchor counter.
type lineParser struct {
	preview bool
	links   *LinkCounter
}

// ParseLine converts one source line into its "<div>" markup. Every source
// character stays visible; markers are wrapped, never removed.
func ParseLine(line string, preview bool) string {
	p := lineParser{preview: preview, links: &LinkCounter{}}
	html, _ := p.parse(line)
	return html
}

// ParseInline protects code spans and links, formats the rest, and restores
// the protected spans.
func ParseInline(text string) string {
	return parseInline(text, &LinkCounter{})
}

func parseInline(text string, links *LinkCounter) string {
	protected, arena := Protect(text)
	return arena.Restore(FormatInline(protected), links)
}

// parse returns the line markup and the construct that produced it.
func (p *lineParser) parse(line string) (string, LineKind) {
	html := preserveIndentation(EscapeHTML(line), line)

	if rulePattern.MatchString(html) {
		return `<div><span class="hr-marker">` + html + `</span></div>`, LineRule
	}
	if fencePattern.MatchString(html) {
		return `<div><span class="code-fence">` + html + `</span></div>`, LineFence
	}

	kind := LinePlain
	block := false
	if m := headerPattern.FindStringSubmatch(html); m != nil {
		hashes := m[1]
		tag := "h" + string(rune('0'+len(hashes)))
		html = "<" + tag + `><span class="syntax-marker">` + hashes + " </span>" +
			parseInline(m[2], p.links) + "</" + tag + ">"
		kind, block = LineHeader, true
	} else if m := quotePattern.FindStringSubmatch(html); m != nil {
		html = `<span class="blockquote"><span class="syntax-marker">&gt;</span> ` + m[1] + "</span>"
		kind = LineQuote
	} else if m := taskPattern.FindStringSubmatch(html); m != nil {
		html = m[1] + p.taskItem(m[2], parseInline(m[3], p.links))
		kind, block = LineTask, true
	} else if m := bulletPattern.FindStringSubmatch(html); m != nil {
		html = m[1] + `<li class="bullet-list"><span class="syntax-marker">` + m[2] + " </span>" +
			parseInline(m[3], p.links) + "</li>"
		kind, block = LineBullet, true
	} else if m := orderedPattern.FindStringSubmatch(html); m != nil {
		html = m[1] + `<li class="ordered-list"><span class="syntax-marker">` + m[2] + " </span>" +
			parseInline(m[3], p.links) + "</li>"
		kind, block = LineOrdered, true
	}

	if !block {
		html = parseInline(html, p.links)
	}
	if strings.TrimSpace(html) == "" {
		return "<div>&nbsp;</div>", LineBlank
	}
	return "<div>" + html + "</div>", kind
}

func (p *lineParser) taskItem(mark, content string) string {
	if p.preview {
		checked := ""
		if mark == "x" || mark == "X" {
			checked = "checked"
		}
		return `<li class="task-list"><input type="checkbox" ` + checked + "> " + content + "</li>"
	}
	return `<li class="task-list"><span class="syntax-marker">- [` + mark + "] </span>" + content + "</li>"
}

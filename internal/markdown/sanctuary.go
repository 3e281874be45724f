package markdown

import (
	"sort"
	"strconv"
	"strings"
)

// SanctuaryKind distinguishes protected spans.
type SanctuaryKind int

const (
	SanctuaryCode SanctuaryKind = iota
	SanctuaryLink
)

func (k SanctuaryKind) String() string {
	if k == SanctuaryLink {
		return "link"
	}
	return "code"
}

// Sanctuary is one protected span. For code spans Content is the text between
// the backtick runs; for links it is the link text and URL holds the target.
type Sanctuary struct {
	Kind        SanctuaryKind
	Original    string
	OpenMarker  string
	CloseMarker string
	Content     string
	URL         string
}

// Sanctuaries is the token arena produced by Protect. The placeholder for the
// entry at index id is Placeholder(id).
type Sanctuaries struct {
	items []Sanctuary
}

// Len returns the number of protected spans.
func (s *Sanctuaries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the span stored under id.
func (s *Sanctuaries) At(id int) Sanctuary { return s.items[id] }

func (s *Sanctuaries) add(item Sanctuary) string {
	s.items = append(s.items, item)
	return Placeholder(len(s.items) - 1)
}

// Placeholder returns the token standing in for arena entry id. Escaped text
// never contains '<', so the token cannot collide with user input.
func Placeholder(id int) string {
	return "<!" + strconv.Itoa(id) + "!"
}

// parsePlaceholder reads a token at the start of s.
func parsePlaceholder(s string) (id, width int, ok bool) {
	if !strings.HasPrefix(s, "<!") {
		return 0, 0, false
	}
	end := 2
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 2 || end >= len(s) || s[end] != '!' {
		return 0, 0, false
	}
	id, err := strconv.Atoi(s[2:end])
	if err != nil {
		return 0, 0, false
	}
	return id, end + 1, true
}

type region struct{ start, end int }

type linkMatch struct {
	start, end         int
	textStart, textEnd int
	urlStart, urlEnd   int
}

// findLink locates the next [text](url) at or after from. Neither part may be
// empty; text stops at the first ']' and url at the first ')'.
func findLink(s string, from int) (linkMatch, bool) {
	for i := from; i < len(s); i++ {
		if s[i] != '[' {
			continue
		}
		closeText := strings.IndexByte(s[i+1:], ']')
		if closeText <= 0 {
			continue
		}
		textEnd := i + 1 + closeText
		if textEnd+1 >= len(s) || s[textEnd+1] != '(' {
			continue
		}
		urlStart := textEnd + 2
		closeURL := strings.IndexByte(s[urlStart:], ')')
		if closeURL <= 0 {
			continue
		}
		urlEnd := urlStart + closeURL
		return linkMatch{
			start: i, end: urlEnd + 1,
			textStart: i + 1, textEnd: textEnd,
			urlStart: urlStart, urlEnd: urlEnd,
		}, true
	}
	return linkMatch{}, false
}

type codeMatch struct {
	start, end int
	ticks      string
	content    string
}

// findCodeSpans returns every code span in s. An opening run is a maximal run
// of backticks; the span closes at the first run of exactly the same length.
// A longer run at that point abandons the opener.
func findCodeSpans(s string) []codeMatch {
	var out []codeMatch
	i := 0
	for i < len(s) {
		if s[i] != '`' {
			i++
			continue
		}
		n := countRun(s, i, '`')
		ticks := s[i : i+n]
		contentStart := i + n
		if closeAt := findCodeClose(s, contentStart, ticks); closeAt >= 0 {
			out = append(out, codeMatch{
				start:   i,
				end:     closeAt + n,
				ticks:   ticks,
				content: s[contentStart:closeAt],
			})
			i = closeAt + n
			continue
		}
		i = contentStart
	}
	return out
}

func findCodeClose(s string, contentStart int, ticks string) int {
	if contentStart >= len(s) || isLineBreak(s[contentStart]) {
		return -1
	}
	for j := contentStart + 1; j < len(s); j++ {
		if isLineBreak(s[j]) {
			return -1
		}
		if !strings.HasPrefix(s[j:], ticks) {
			continue
		}
		if end := j + len(ticks); end < len(s) && s[end] == '`' {
			return -1
		}
		return j
	}
	return -1
}

func countRun(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// Protect replaces code spans and then links with placeholders. Code spans
// that sit entirely inside a link URL are left for the link to carry.
func Protect(text string) (string, *Sanctuaries) {
	arena := &Sanctuaries{}

	var urls []region
	for pos := 0; ; {
		m, ok := findLink(text, pos)
		if !ok {
			break
		}
		urls = append(urls, region{start: m.urlStart, end: m.urlEnd})
		pos = m.end
	}

	var spans []codeMatch
	for _, c := range findCodeSpans(text) {
		if insideAny(urls, c.start, c.end) {
			continue
		}
		spans = append(spans, c)
	}
	// Replace from the right so earlier offsets stay valid.
	sort.Slice(spans, func(a, b int) bool { return spans[a].start > spans[b].start })
	protected := text
	for _, c := range spans {
		token := arena.add(Sanctuary{
			Kind:        SanctuaryCode,
			Original:    text[c.start:c.end],
			OpenMarker:  c.ticks,
			CloseMarker: c.ticks,
			Content:     c.content,
		})
		protected = protected[:c.start] + token + protected[c.end:]
	}

	var b strings.Builder
	last := 0
	for pos := 0; ; {
		m, ok := findLink(protected, pos)
		if !ok {
			break
		}
		b.WriteString(protected[last:m.start])
		b.WriteString(arena.add(Sanctuary{
			Kind:        SanctuaryLink,
			Original:    protected[m.start:m.end],
			OpenMarker:  "[",
			CloseMarker: "](" + protected[m.urlStart:m.urlEnd] + ")",
			Content:     protected[m.textStart:m.textEnd],
			URL:         protected[m.urlStart:m.urlEnd],
		}))
		last, pos = m.end, m.end
	}
	if last > 0 {
		b.WriteString(protected[last:])
		protected = b.String()
	}
	return protected, arena
}

func insideAny(regions []region, start, end int) bool {
	for _, r := range regions {
		if start >= r.start && end <= r.end {
			return true
		}
	}
	return false
}

// LinkCounter numbers anchors across one render pass.
type LinkCounter struct{ next int }

// Next returns the next anchor index.
func (c *LinkCounter) Next() int {
	n := c.next
	c.next++
	return n
}

// Restore rewrites every placeholder in html, left to right, into its final
// markup. Link text gets strikethrough, bold and italic before any code
// placeholder inside it is resolved, so code stays literal.
func (s *Sanctuaries) Restore(html string, links *LinkCounter) string {
	if s.Len() == 0 {
		return html
	}
	if links == nil {
		links = &LinkCounter{}
	}
	return s.restore(html, links)
}

func (s *Sanctuaries) restore(html string, links *LinkCounter) string {
	if !strings.Contains(html, "<!") {
		return html
	}
	var b strings.Builder
	for i := 0; i < len(html); {
		id, width, ok := parsePlaceholder(html[i:])
		if !ok || id >= len(s.items) {
			b.WriteByte(html[i])
			i++
			continue
		}
		s.writeSanctuary(&b, s.items[id], links)
		i += width
	}
	return b.String()
}

func (s *Sanctuaries) writeSanctuary(b *strings.Builder, item Sanctuary, links *LinkCounter) {
	switch item.Kind {
	case SanctuaryCode:
		writeMarked(b, "code", item.OpenMarker, item.Content, item.CloseMarker)
	case SanctuaryLink:
		n := links.Next()
		text := s.restore(FormatInline(item.Content), links)
		b.WriteString(`<a href="`)
		b.WriteString(SanitizeURL(item.URL))
		b.WriteString(`" style="anchor-name: --link-`)
		b.WriteString(strconv.Itoa(n))
		b.WriteString(`"><span class="syntax-marker">[</span>`)
		b.WriteString(text)
		b.WriteString(`<span class="syntax-marker url-part">`)
		b.WriteString(item.CloseMarker)
		b.WriteString("</span></a>")
	}
}

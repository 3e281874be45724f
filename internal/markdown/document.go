package markdown

import (
	"log/slog"
	"strings"
)

// LineKind is the construct a source line rendered as.
type LineKind int

const (
	LinePlain LineKind = iota
	LineBlank
	LineRaw
	LineRule
	LineFence
	LineHeader
	LineQuote
	LineTask
	LineBullet
	LineOrdered
	LineCode
)

var lineKindNames = [...]string{
	LinePlain:   "plain",
	LineBlank:   "blank",
	LineRaw:     "raw",
	LineRule:    "rule",
	LineFence:   "fence",
	LineHeader:  "header",
	LineQuote:   "quote",
	LineTask:    "task",
	LineBullet:  "bullet",
	LineOrdered: "ordered",
	LineCode:    "code",
}

func (k LineKind) String() string {
	if int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return "unknown"
}

// Options control a render pass.
type Options struct {
	// PreviewMode renders task items as real checkboxes.
	PreviewMode bool
	// ActiveLine is the zero-based line shown raw when ShowActiveLineRaw is
	// set. Negative disables it.
	ActiveLine        int
	ShowActiveLineRaw bool
	Highlighter       Highlighter
	// CustomSyntax post-processes each rendered line outside code blocks.
	CustomSyntax func(html string) string
	Logger       *slog.Logger
}

// Line is one source line after parsing. HTML is the complete "<div>" markup.
// For list kinds Indent holds the &nbsp; run in front of the item and Item
// holds the "<li>" element.
type Line struct {
	Number int
	Source string
	Kind   LineKind
	HTML   string
	Indent string
	Item   string
}

// BlockKind groups lines for output.
type BlockKind int

const (
	BlockLine BlockKind = iota
	BlockList
	BlockCode
)

// Block is one node of the rendered document. A BlockLine holds a single
// line, a BlockList holds consecutive items of one list type and a BlockCode
// holds the interior lines of a fenced block. Fence lines stay BlockLine
// nodes on either side of their BlockCode.
type Block struct {
	Kind    BlockKind
	Lines   []Line
	Ordered bool

	Language    string
	Code        string
	Highlighted string
}

// Document is the node list produced by Parse. The HTML renderer and the
// terminal renderer both read it.
type Document struct {
	lines  []Line
	blocks []Block
}

// Lines returns every source line in order.
func (d *Document) Lines() []Line { return d.lines }

// Blocks returns the grouped node list.
func (d *Document) Blocks() []Block { return d.blocks }

// Parse renders text line by line and groups the result into blocks. It never
// fails; highlighter problems are logged and the plain code is kept.
func Parse(text string, opts Options) *Document {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := &lineParser{preview: opts.PreviewMode, links: &LinkCounter{}}
	sources := strings.Split(text, "\n")
	lines := make([]Line, 0, len(sources))
	inFence := false

	for i, src := range sources {
		var line Line
		switch {
		case opts.ShowActiveLineRaw && i == opts.ActiveLine:
			content := EscapeHTML(src)
			if content == "" {
				content = "&nbsp;"
			}
			line = Line{Kind: LineRaw, HTML: `<div class="raw-line">` + content + "</div>"}
		case IsFence(src):
			inFence = !inFence
			line = p.styledLine(src, opts.CustomSyntax)
		case inFence:
			content := preserveIndentation(EscapeHTML(src), src)
			if content == "" {
				content = "&nbsp;"
			}
			line = Line{Kind: LineCode, HTML: "<div>" + content + "</div>"}
		default:
			line = p.styledLine(src, opts.CustomSyntax)
		}
		line.Number = i
		line.Source = src
		lines = append(lines, line)
	}

	return &Document{
		lines:  lines,
		blocks: groupBlocks(lines, opts.Highlighter, logger),
	}
}

func (p *lineParser) styledLine(src string, custom func(string) string) Line {
	html, kind := p.parse(src)
	if custom != nil {
		html = custom(html)
	}
	line := Line{Kind: kind, HTML: html}
	switch kind {
	case LineBullet, LineOrdered, LineTask:
		indent, item, ok := splitListItem(html)
		if !ok {
			line.Kind = LinePlain
			break
		}
		line.Indent, line.Item = indent, item
	case LineFence:
		if _, ok := fenceText(html); !ok {
			line.Kind = LinePlain
		}
	}
	return line
}

// splitListItem takes "<div>" + indent + "<li ...>...</li>" + "</div>" apart.
func splitListItem(html string) (indent, item string, ok bool) {
	rest, found := strings.CutPrefix(html, "<div>")
	if !found {
		return "", "", false
	}
	rest, found = strings.CutSuffix(rest, "</div>")
	if !found {
		return "", "", false
	}
	n := 0
	for strings.HasPrefix(rest[n:], "&nbsp;") {
		n += len("&nbsp;")
	}
	if !strings.HasPrefix(rest[n:], "<li ") || !strings.HasSuffix(rest, "</li>") {
		return "", "", false
	}
	return rest[:n], rest[n:], true
}

const fenceOpen = `<div><span class="code-fence">`

func fenceText(html string) (string, bool) {
	rest, ok := strings.CutPrefix(html, fenceOpen)
	if !ok {
		return "", false
	}
	end := strings.Index(rest, "</span>")
	if end < 0 {
		return "", false
	}
	text := decodeEntities(rest[:end])
	return text, strings.HasPrefix(text, "```")
}

// groupBlocks merges consecutive bullet or ordered items into lists and
// gathers fenced interiors into code blocks. Task items, fences and any other
// line end the current list.
func groupBlocks(lines []Line, hl Highlighter, logger *slog.Logger) []Block {
	var blocks []Block
	list := -1
	code := -1

	for _, line := range lines {
		if line.Kind == LineFence {
			list = -1
			if code >= 0 {
				highlightBlock(&blocks[code], hl, logger)
				blocks = append(blocks, Block{Kind: BlockLine, Lines: []Line{line}})
				code = -1
				continue
			}
			text, _ := fenceText(line.HTML)
			blocks = append(blocks,
				Block{Kind: BlockLine, Lines: []Line{line}},
				Block{Kind: BlockCode, Language: strings.TrimSpace(strings.TrimPrefix(text, "```"))},
			)
			code = len(blocks) - 1
			continue
		}

		if code >= 0 {
			b := &blocks[code]
			text := decodeEntities(stripTags(line.HTML))
			if len(b.Lines) > 0 {
				b.Code += "\n"
			}
			b.Code += text
			b.Lines = append(b.Lines, line)
			continue
		}

		ordered := line.Kind == LineOrdered
		if line.Kind == LineBullet || ordered {
			if list < 0 || blocks[list].Ordered != ordered {
				blocks = append(blocks, Block{Kind: BlockList, Ordered: ordered})
				list = len(blocks) - 1
			}
			blocks[list].Lines = append(blocks[list].Lines, line)
			continue
		}

		list = -1
		blocks = append(blocks, Block{Kind: BlockLine, Lines: []Line{line}})
	}
	return blocks
}

// highlightBlock replaces the block's plain code with highlighter output when
// the highlighter returns usable markup synchronously.
func highlightBlock(b *Block, hl Highlighter, logger *slog.Logger) {
	if hl == nil || b.Code == "" {
		return
	}
	html, err := runHighlighter(hl, b.Code, b.Language)
	switch {
	case err != nil:
		logger.Warn("code highlighting failed", "language", b.Language, "error", err)
	case strings.TrimSpace(html) != "":
		b.Highlighted = html
	}
}

// stripTags returns the text content of a markup fragment.
func stripTags(html string) string {
	if !strings.Contains(html, "<") {
		return html
	}
	var b strings.Builder
	inTag := false
	for i := 0; i < len(html); i++ {
		switch c := html[i]; {
		case c == '<':
			inTag = true
		case c == '>' && inTag:
			inTag = false
		case !inTag:
			b.WriteByte(c)
		}
	}
	return b.String()
}

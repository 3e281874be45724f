package markdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrAsyncHighlighter is reported when a highlighter answers with a pending
// result. Rendering is synchronous, so the plain code is kept instead.
var ErrAsyncHighlighter = errors.New("markdown: asynchronous highlighters are not supported")

// HighlightResult is what a highlighter hands back for one code block. A
// non-nil Async marks a result that is not ready yet.
type HighlightResult struct {
	HTML  string
	Async <-chan string
}

// Highlighter turns the text of a fenced block into markup. Returning blank
// HTML keeps the escaped plain text.
type Highlighter interface {
	Highlight(code, lang string) (HighlightResult, error)
}

// HighlighterFunc adapts a plain function to Highlighter.
type HighlighterFunc func(code, lang string) (HighlightResult, error)

func (f HighlighterFunc) Highlight(code, lang string) (HighlightResult, error) {
	return f(code, lang)
}

func runHighlighter(hl Highlighter, code, lang string) (html string, err error) {
	defer func() {
		if r := recover(); r != nil {
			html, err = "", fmt.Errorf("markdown: highlighter panic: %v", r)
		}
	}()
	res, err := hl.Highlight(code, lang)
	if err != nil {
		return "", err
	}
	if res.Async != nil {
		return "", ErrAsyncHighlighter
	}
	return res.HTML, nil
}

// ChromaHighlighter renders code blocks with inline-styled chroma markup.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter uses the named chroma style, falling back to the
// chroma default when the name is unknown.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	return &ChromaHighlighter{
		style: LookupStyle(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Highlight returns blank HTML for languages chroma does not know.
func (h *ChromaHighlighter) Highlight(code, lang string) (HighlightResult, error) {
	lexer := LookupLexer(lang)
	if lexer == nil {
		return HighlightResult{}, nil
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return HighlightResult{}, fmt.Errorf("tokenise %s: %w", lang, err)
	}
	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return HighlightResult{}, fmt.Errorf("format %s: %w", lang, err)
	}
	return HighlightResult{HTML: buf.String()}, nil
}

// LookupLexer resolves a fence language by name, then by file extension.
func LookupLexer(lang string) chroma.Lexer {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Match("file." + lang)
	}
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

// LookupStyle returns the named chroma style or the fallback style.
func LookupStyle(name string) *chroma.Style {
	if style := styles.Get(name); style != nil {
		return style
	}
	return styles.Fallback
}

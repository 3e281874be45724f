package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/overtype/internal/markdown"
)

// codeRun colours bytes [start, end) of one visible code line.
type codeRun struct {
	start, end int
	style      chroma.StyleEntry
}

// codeRuns tokenises every fenced block and returns the runs keyed by source
// line number. Blocks with an unknown language are left out.
func codeRuns(doc *markdown.Document, style *chroma.Style) map[int][]codeRun {
	if style == nil {
		return nil
	}
	out := make(map[int][]codeRun)
	for _, block := range doc.Blocks() {
		if block.Kind != markdown.BlockCode || block.Code == "" || len(block.Lines) == 0 {
			continue
		}
		lexer := markdown.LookupLexer(block.Language)
		if lexer == nil {
			continue
		}
		it, err := lexer.Tokenise(nil, block.Code)
		if err != nil {
			continue
		}
		row, col := 0, 0
		for tok := it(); tok != chroma.EOF; tok = it() {
			entry := style.Get(tok.Type)
			parts := strings.Split(tok.Value, "\n")
			for i, part := range parts {
				if i > 0 {
					row++
					col = 0
				}
				if part == "" || row >= len(block.Lines) {
					continue
				}
				n := block.Lines[row].Number
				out[n] = append(out[n], codeRun{start: col, end: col + len(part), style: entry})
				col += len(part)
			}
		}
	}
	return out
}

func runStyle(base tcell.Style, runs []codeRun, offset int) tcell.Style {
	for _, run := range runs {
		if offset < run.start || offset >= run.end {
			continue
		}
		style := base
		if run.style.Colour.IsSet() {
			c := run.style.Colour
			style = style.Foreground(tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue())))
		}
		if run.style.Bold == chroma.Yes {
			style = style.Bold(true)
		}
		if run.style.Italic == chroma.Yes {
			style = style.Italic(true)
		}
		return style
	}
	return base
}

package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/overtype/internal/markdown"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	MarkerFg    tcell.Color
	HeaderFg    tcell.Color
	QuoteFg     tcell.Color
	LinkFg      tcell.Color
	CodeBg      tcell.Color
	CodeFg      tcell.Color
	CodeBlockBg tcell.Color
	CodeBlockFg tcell.Color
	RawLineBg   tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	ErrorFg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		MarkerFg:    tcell.Color244, // grey syntax markers
		HeaderFg:    tcell.Color33,
		QuoteFg:     tcell.Color108,
		LinkFg:      tcell.Color39,
		CodeBg:      tcell.ColorDefault,
		CodeFg:      tcell.Color44,  // brighter cyan text for code
		CodeBlockBg: tcell.Color234, // darker grey background for fenced code
		CodeBlockFg: tcell.Color252, // light grey text for fenced code
		RawLineBg:   tcell.Color236,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
	}
}

// styleForSegment maps markup flags onto terminal attributes. Later flags
// win where they disagree on colour.
func (t ColorTheme) styleForSegment(base tcell.Style, s markdown.Style) tcell.Style {
	style := base
	if s.Has(markdown.StyleHeader1) || s.Has(markdown.StyleHeader2) || s.Has(markdown.StyleHeader3) {
		style = style.Bold(true).Foreground(t.HeaderFg)
	}
	if s.Has(markdown.StyleStrong) {
		style = style.Bold(true)
	}
	if s.Has(markdown.StyleEmphasis) {
		style = style.Italic(true)
	}
	if s.Has(markdown.StyleStrike) {
		style = style.StrikeThrough(true)
	}
	if s.Has(markdown.StyleQuote) {
		style = style.Foreground(t.QuoteFg).Italic(true)
	}
	if s.Has(markdown.StyleLink) {
		style = style.Underline(true).Foreground(t.LinkFg)
	}
	if s.Has(markdown.StyleCode) {
		style = style.Foreground(t.CodeFg)
		if t.CodeBg != tcell.ColorDefault {
			style = style.Background(t.CodeBg)
		}
	}
	if s.Has(markdown.StyleCheckbox) {
		style = style.Bold(true)
	}
	if s.Has(markdown.StyleMarker) || s.Has(markdown.StyleURL) || s.Has(markdown.StyleFence) || s.Has(markdown.StyleRule) {
		style = style.Foreground(t.MarkerFg).Underline(false)
	}
	if s.Has(markdown.StyleRaw) {
		style = style.Background(t.RawLineBg)
	}
	return style
}

func (t ColorTheme) codeBlockStyle(base tcell.Style) tcell.Style {
	style := base
	if t.CodeBlockFg != tcell.ColorDefault {
		style = style.Foreground(t.CodeBlockFg)
	}
	if t.CodeBlockBg != tcell.ColorDefault {
		style = style.Background(t.CodeBlockBg)
	}
	return style
}

package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// entityDecoder reverses htmlEscaper plus the &nbsp; used for indentation.
// &amp; goes last so "&amp;lt;" decodes to "&lt;" rather than "<".
var entityDecoder = strings.NewReplacer(
	"&nbsp;", " ",
	"&quot;", `"`,
	"&#39;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

// EscapeHTML escapes the five HTML special characters.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

func decodeEntities(text string) string {
	return entityDecoder.Replace(text)
}

// leadingWhitespace returns the run of whitespace runes starting line.
func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return line[:i]
}

// preserveIndentation swaps the leading whitespace of html for the original
// line's indentation with spaces turned into &nbsp;.
func preserveIndentation(html, originalLine string) string {
	indent := strings.ReplaceAll(leadingWhitespace(originalLine), " ", "&nbsp;")
	return indent + html[len(leadingWhitespace(html)):]
}

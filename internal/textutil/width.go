package textutil

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the tab stop used when none is configured.
const DefaultTabWidth = 4

// Cell returns what the terminal draws for one grapheme cluster and how many
// columns it takes. Controls become "?" and lone invisible formatting runes
// become "·" so every cluster occupies at least one column. Tabs are left to
// Column.
func Cell(cluster string) (string, int) {
	if cluster == "" {
		return "", 0
	}
	if r := []rune(cluster); len(r) == 1 && r[0] != '\t' {
		switch {
		case isFormattingRune(r[0]):
			return "·", 1
		case requiresSanitization(r[0]):
			return "?", 1
		}
	}
	return cluster, max(uniseg.StringWidth(cluster), 1)
}

// DisplayWidth reports the printable width of text, one Cell per grapheme
// cluster. A tab counts as a single column.
func DisplayWidth(text string) int {
	width := 0
	state := -1
	for text != "" {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		_, w := Cell(cluster)
		width += w
	}
	return width
}

// Column returns the screen column reached after drawing line, expanding tabs
// to multiples of tabWidth.
func Column(line string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	col := 0
	state := -1
	for line != "" {
		var cluster string
		cluster, line, _, state = uniseg.FirstGraphemeClusterInString(line, state)
		col = advance(col, cluster, tabWidth)
	}
	return col
}

// OffsetForColumn returns the byte offset in line of the last cluster
// boundary at or before col.
func OffsetForColumn(line string, col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	offset, x := 0, 0
	state := -1
	rest := line
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		next := advance(x, cluster, tabWidth)
		if next > col {
			break
		}
		x = next
		offset += len(cluster)
	}
	return offset
}

func advance(col int, cluster string, tabWidth int) int {
	if cluster == "\t" {
		return (col/tabWidth + 1) * tabWidth
	}
	_, w := Cell(cluster)
	return col + w
}

// ExpandTabs replaces tab characters with spaces up to the next tab stop.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	col := 0
	state := -1
	for text != "" {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		next := advance(col, cluster, tabWidth)
		if cluster == "\t" {
			builder.WriteString(strings.Repeat(" ", next-col))
		} else {
			builder.WriteString(cluster)
		}
		col = next
	}
	return builder.String()
}

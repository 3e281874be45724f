package markdown

import "strings"

// Render parses text and returns the HTML for the whole document.
func Render(text string, opts Options) string {
	return Parse(text, opts).HTML()
}

// HTML serialises the node list.
func (d *Document) HTML() string {
	var b strings.Builder
	for _, block := range d.blocks {
		switch block.Kind {
		case BlockLine:
			for _, line := range block.Lines {
				b.WriteString(line.HTML)
			}
		case BlockList:
			tag := "ul"
			if block.Ordered {
				tag = "ol"
			}
			b.WriteString("<" + tag + ">")
			for _, line := range block.Lines {
				b.WriteString(indentedItem(line))
			}
			b.WriteString("</" + tag + ">")
		case BlockCode:
			b.WriteString(`<pre class="code-block"><code`)
			if block.Language != "" {
				b.WriteString(` class="language-` + EscapeHTML(block.Language) + `"`)
			}
			b.WriteString(">")
			if block.Highlighted != "" {
				b.WriteString(block.Highlighted)
			} else {
				b.WriteString(EscapeHTML(block.Code))
			}
			b.WriteString("</code></pre>")
		}
	}
	return b.String()
}

// indentedItem moves the indentation that preceded the item to the start of
// the item's content so it survives inside the list element.
func indentedItem(line Line) string {
	if line.Indent == "" {
		return line.Item
	}
	gt := strings.IndexByte(line.Item, '>')
	if gt < 0 {
		return line.Indent + line.Item
	}
	return line.Item[:gt+1] + line.Indent + line.Item[gt+1:]
}

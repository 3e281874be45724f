// Package format implements the markdown formatting commands. Every command
// is a pure function of the buffer text and selection that returns a single
// textedit.Edit; callers decide how to apply it.
package format

import "regexp"

// Style describes one formatting command.
type Style struct {
	Prefix      string
	Suffix      string
	BlockPrefix string
	BlockSuffix string
	// Multiline lets a caret expand to the rest of the line instead of the
	// current word.
	Multiline bool
	// ReplaceNext names a token in Suffix that the caller is expected to
	// overwrite, such as the url in a link.
	ReplaceNext string
	ScanFor     *regexp.Regexp
	PrefixSpace bool
	// SurroundWithNewlines pads the result with blank lines so it forms its
	// own paragraph.
	SurroundWithNewlines bool
	TrimFirst            bool
	OrderedList          bool
	UnorderedList        bool
}

var urlScan = regexp.MustCompile(`https?://`)

var styles = map[Command]Style{
	Bold:         {Prefix: "**", Suffix: "**", TrimFirst: true},
	Italic:       {Prefix: "_", Suffix: "_", TrimFirst: true},
	Code:         {Prefix: "`", Suffix: "`", BlockPrefix: "```", BlockSuffix: "```"},
	Link:         {Prefix: "[", Suffix: "](url)", ReplaceNext: "url", ScanFor: urlScan},
	BulletList:   {Prefix: "- ", Multiline: true, UnorderedList: true},
	NumberedList: {Prefix: "1. ", Multiline: true, OrderedList: true},
	Quote:        {Prefix: "> ", Multiline: true, SurroundWithNewlines: true},
	TaskList:     {Prefix: "- [ ] ", Multiline: true, SurroundWithNewlines: true},
	Header1:      {Prefix: "# "},
	Header2:      {Prefix: "## "},
	Header3:      {Prefix: "### "},
	Header4:      {Prefix: "#### "},
	Header5:      {Prefix: "##### "},
	Header6:      {Prefix: "###### "},
}

// StyleFor returns a copy of the descriptor used by cmd.
func StyleFor(cmd Command) (Style, bool) {
	s, ok := styles[cmd]
	return s, ok
}

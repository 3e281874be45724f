package format

import (
	"errors"
	"fmt"

	"github.com/kk-code-lab/overtype/internal/textedit"
)

// Command names a formatting action.
type Command string

const (
	Bold         Command = "bold"
	Italic       Command = "italic"
	Code         Command = "code"
	Link         Command = "link"
	BulletList   Command = "bullet-list"
	NumberedList Command = "numbered-list"
	Quote        Command = "quote"
	TaskList     Command = "task-list"
	Header1      Command = "h1"
	Header2      Command = "h2"
	Header3      Command = "h3"
	Header4      Command = "h4"
	Header5      Command = "h5"
	Header6      Command = "h6"
	IndentLines  Command = "indent"
	OutdentLines Command = "outdent"
)

// ErrUnknownCommand is returned for names that are not a Command.
var ErrUnknownCommand = errors.New("unknown format command")

var commandOrder = []Command{
	Bold, Italic, Code, Link,
	BulletList, NumberedList, Quote, TaskList,
	Header1, Header2, Header3, Header4, Header5, Header6,
	IndentLines, OutdentLines,
}

// Commands lists every command in toolbar order.
func Commands() []Command {
	return append([]Command(nil), commandOrder...)
}

// ParseCommand validates a command name.
func ParseCommand(name string) (Command, error) {
	for _, cmd := range commandOrder {
		if string(cmd) == name {
			return cmd, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// Apply computes the edit cmd makes to text with the given selection.
// Headers toggle: applying a header at its current level removes it.
func Apply(cmd Command, text string, sel textedit.Selection) (textedit.Edit, error) {
	switch cmd {
	case Bold, Italic, Code:
		return BlockStyle(text, sel, styles[cmd]), nil
	case Link:
		return InsertLink(text, sel, LinkOptions{}), nil
	case BulletList, NumberedList:
		return ListStyle(text, sel, styles[cmd]), nil
	case Quote, TaskList:
		return MultilineStyle(text, sel, styles[cmd]), nil
	case Header1, Header2, Header3, Header4, Header5, Header6:
		return Header(text, sel, len(styles[cmd].Prefix)-1, true), nil
	case IndentLines:
		return Indent(text, sel), nil
	case OutdentLines:
		return Outdent(text, sel), nil
	}
	return textedit.Edit{}, fmt.Errorf("%w: %q", ErrUnknownCommand, string(cmd))
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/overtype/internal/editor"
	"github.com/kk-code-lab/overtype/internal/format"
	"github.com/kk-code-lab/overtype/internal/textedit"
)

type formatResult struct {
	Text      string        `json:"text"`
	Edit      editJSON      `json:"edit"`
	Selection selectionJSON `json:"selection"`
}

type editJSON struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type selectionJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (c *cli) newFormatCmd() *cobra.Command {
	var (
		start, end int
		url        string
		asJSON     bool
		write      bool
	)
	cmd := &cobra.Command{
		Use:   "format <command> [file]",
		Short: "Apply a formatting command to a selection",
		Long: `Apply one toolbar command (see "overtype commands") to the byte range
--start..--end and print the result. Without a range the caret sits at the
end of the text.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := format.ParseCommand(args[0])
			if err != nil {
				return err
			}
			path, text, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}

			sel := textedit.Caret(len(text))
			if start >= 0 {
				sel = textedit.Selection{Start: start, End: max(end, start)}
			}
			buf := editor.NewBuffer(text, editor.BufferOptions{HistoryLimit: -1})
			buf.SetSelection(sel.Normalize(len(text)))

			var edit textedit.Edit
			if command == format.Link && url != "" {
				edit = format.InsertLink(text, buf.Selection(), format.LinkOptions{URL: url})
			} else if edit, err = format.Apply(command, text, buf.Selection()); err != nil {
				return err
			}
			buf.Replace(edit)
			c.logger.Debug("formatted", "command", command, "start", edit.Start, "end", edit.End)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(formatResult{
					Text:      buf.Text(),
					Edit:      editJSON{Start: edit.Start, End: edit.End, Text: edit.Text},
					Selection: selectionJSON{Start: buf.Selection().Start, End: buf.Selection().End},
				})
			}
			return writeOutput(cmd.OutOrStdout(), path, buf.Text(), write)
		},
	}
	cmd.Flags().IntVar(&start, "start", -1, "Selection start (byte offset)")
	cmd.Flags().IntVar(&end, "end", -1, "Selection end (byte offset)")
	cmd.Flags().StringVar(&url, "url", "", "URL for the link command")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the text, edit and new selection as JSON")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the file in place")
	return cmd
}

func (c *cli) newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List formatting command names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, command := range format.Commands() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), command); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

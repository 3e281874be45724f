package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/overtype/internal/markdown"
)

func (c *cli) newRenderCmd() *cobra.Command {
	var (
		asText      bool
		preview     bool
		activeLine  int
		noHighlight bool
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown to aligned preview HTML",
		Long: `Render a file (or stdin) to preview HTML. Every source character keeps its
position, so the output can be overlaid on the editing surface.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts := markdown.Options{
				PreviewMode:       preview || c.cfg.PreviewMode,
				ActiveLine:        activeLine,
				ShowActiveLineRaw: activeLine >= 0,
				Logger:            c.logger,
			}
			if c.cfg.Highlight.Enabled && !noHighlight {
				opts.Highlighter = markdown.NewChromaHighlighter(c.cfg.Highlight.Style)
			}

			out := cmd.OutOrStdout()
			if !asText {
				_, err := fmt.Fprintln(out, markdown.Render(text, opts))
				return err
			}
			for _, line := range markdown.Parse(text, opts).Lines() {
				if _, err := fmt.Fprintln(out, markdown.VisibleText(line.HTML)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asText, "text", false, "Print the visible text of each line instead of HTML")
	cmd.Flags().BoolVar(&preview, "preview", false, "Render task items as checkboxes")
	cmd.Flags().IntVar(&activeLine, "active-line", -1, "Show this zero-based line as raw source")
	cmd.Flags().BoolVar(&noHighlight, "no-highlight", false, "Do not highlight fenced code")
	return cmd
}

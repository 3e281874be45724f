package main

import (
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/overtype/internal/lists"
)

func (c *cli) newRenumberCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "renumber [file]",
		Short: "Renumber every ordered list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := lists.Renumber(text)
			c.logger.Debug("renumbered", "changed", out != text)
			return writeOutput(cmd.OutOrStdout(), path, out, write)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the file in place")
	return cmd
}

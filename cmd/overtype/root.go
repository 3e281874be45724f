package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/overtype/internal/config"
	fsutil "github.com/kk-code-lab/overtype/internal/fs"
)

// cli carries state shared by every subcommand once the root has loaded
// the config.
type cli struct {
	configPath string
	debug      bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "overtype",
		Short: "Markdown live preview that keeps every character in place",
		Long: `overtype renders markdown so the preview lines up character for character
with the source, applies toolbar-style formatting to a selection and keeps
numbered lists in order.

Examples:
  overtype render notes.md              # HTML preview
  overtype render --text notes.md       # what a reader sees, line by line
  overtype format bold --start 0 --end 4 notes.md
  overtype renumber -w notes.md
  overtype edit notes.md                # terminal editor`,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Config file (default ./overtype.yaml, then $XDG_CONFIG_HOME/overtype)")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "Log at debug level")

	root.AddCommand(
		c.newRenderCmd(),
		c.newFormatCmd(),
		c.newCommandsCmd(),
		c.newRenumberCmd(),
		c.newEditCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.LoadOptions{File: c.configPath})
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if c.debug {
		level = slog.LevelDebug
	}
	c.cfg = cfg
	c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	c.logger.Debug("config loaded", "file", c.configPath, "preview_mode", cfg.PreviewMode, "highlight", cfg.Highlight.Enabled)
	return nil
}

// readInput reads the named file, or stdin when the name is empty or "-".
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		text, err := fsutil.ReadText("stdin", cmd.InOrStdin())
		return "", text, err
	}
	text, err := fsutil.ReadDocument(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], text, nil
}

// writeOutput prints text with a single trailing newline, or rewrites path
// when write is set.
func writeOutput(w io.Writer, path, text string, write bool) error {
	if write {
		if path == "" {
			return fmt.Errorf("--write needs a file argument")
		}
		return fsutil.WriteDocument(path, text)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

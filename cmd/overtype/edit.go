package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/overtype/internal/app"
)

func (c *cli) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file>",
		Short: "Open the terminal editor",
		Long: `Open a file in the terminal editor. A missing file is created on the first
save. Logs go to log_file from the config because the terminal is in use.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// UTF-8 fallback keeps non-ASCII text readable on odd locales.
			tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

			logger, closeLog, err := c.editorLogger()
			if err != nil {
				return err
			}
			defer closeLog()

			app, err := apppkg.NewApplication(args[0], c.cfg, logger)
			if err != nil {
				return fmt.Errorf("initializing editor: %w", err)
			}
			defer func() {
				_ = app.Close()
			}()

			app.Run()
			if app.Dirty() {
				logger.Warn("quit with unsaved changes", "path", args[0])
			}
			return nil
		},
	}
}

// editorLogger writes to the configured log file, or nowhere.
func (c *cli) editorLogger() (*slog.Logger, func(), error) {
	level, err := c.cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	if c.debug {
		level = slog.LevelDebug
	}
	if c.cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(c.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

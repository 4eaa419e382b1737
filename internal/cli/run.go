// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/cli/run.go
// Summary: Interactive terminal preview of one output.
// Usage: texeltile run [--config file] [--cell 8x16]
// Notes: The screen owns stderr while running, so logs go to a file only.

package cli

import (
	"io"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/framegrace/texeltile/config"
	"github.com/framegrace/texeltile/internal/logging"
	"github.com/framegrace/texeltile/internal/preview"
	"github.com/framegrace/texeltile/internal/session"
	"github.com/framegrace/texeltile/texel"
)

// RunFlags holds the run command's flags.
type RunFlags struct {
	Output string
	Cell   string
	Watch  bool
}

// AddRunCommand adds the run command.
func AddRunCommand(root *cobra.Command, global *GlobalFlags) {
	flags := &RunFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open an interactive preview in the terminal",
		Long: `Open an interactive preview. The terminal is one output; each tile is drawn
as a box scaled from pixels to cells.

Keys:
  n new window      x close         j/k tab/backtab focus
  h/l mwfact        i/d nmaster     space/L layout
  J/K swap          +/- proportion  f float
  F fullscreen      m maximize      1-9 workspace
  a animations      q/esc quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, global, flags)
		},
	}
	cmd.Flags().StringVar(&flags.Output, "output", "term", "name of the terminal output")
	cmd.Flags().StringVar(&flags.Cell, "cell", "8x16", "pixel size of one terminal cell")
	cmd.Flags().BoolVar(&flags.Watch, "watch", true, "reload the --config file when it changes")

	root.AddCommand(cmd)
}

func runPreview(cmd *cobra.Command, global *GlobalFlags, flags *RunFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cell, err := parseSize(flags.Cell)
	if err != nil {
		return err
	}

	logFile := global.LogFile
	if logFile == "" {
		if logFile, err = logging.DefaultFile(); err != nil {
			return err
		}
	}
	logger, err := logging.New(logging.Options{
		Verbose: global.Verbose,
		Quiet:   global.Quiet,
		File:    logFile,
		Console: io.Discard,
	})
	if err != nil {
		return err
	}
	defer logger.Close()
	ctx = logger.WithContext(ctx)

	cfg, err := config.Load(ctx, global.Config)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.Clear()

	renderer := preview.NewRenderer(screen, cell)
	shell := texel.NewShell(settings, logger.Logger)
	if _, err := shell.AttachOutput(flags.Output, renderer.OutputSize()); err != nil {
		return err
	}

	opts := session.Options{
		Shell:    shell,
		Output:   flags.Output,
		Renderer: renderer,
		Logger:   logger.Logger,
	}
	if flags.Watch {
		opts.ConfigPath = global.Config
	}
	logger.Info().Str("output", flags.Output).Str("config", global.Config).Msg("preview started")
	err = session.New(opts).Run(ctx, preview.Input(screen, renderer, flags.Output))
	logger.Info().Err(err).Msg("preview stopped")
	return err
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/cli/root.go
// Summary: Root cobra command, global flags and logger setup.
// Usage: cmd/texeltile calls Execute; subcommands read the logger with zerolog.Ctx.

// Package cli provides the texeltile command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/framegrace/texeltile/internal/logging"
)

// BuildInfo carries version information set at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	Verbose bool
	Quiet   bool
	// LogFile mirrors log output into a rotating file.
	LogFile string
	// Config is an explicit configuration file layered over the user config.
	Config string
}

// AddGlobalFlags registers the persistent flags on cmd.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "only log warnings and errors")
	cmd.PersistentFlags().StringVar(&flags.LogFile, "log-file", "", "also write logs to this file")
	cmd.PersistentFlags().StringVarP(&flags.Config, "config", "c", "", "configuration file")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	var logger *logging.Logger

	cmd := &cobra.Command{
		Use:   "texeltile",
		Short: "Tiling layout engine with animated transitions",
		Long: `texeltile arranges windows into workspaces with master/stack layouts and
animates every geometry change with easing, bezier or spring curves.

Use "run" for an interactive terminal preview, "simulate" to replay a scripted
session, and "layout" to print the geometry a single layout produces.`,
		Version:       formatVersion(info),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logging.New(logging.Options{
				Verbose: flags.Verbose,
				Quiet:   flags.Quiet,
				File:    flags.LogFile,
				Console: consoleFor(cmd),
			})
			logger = l
			if err != nil {
				l.Warn().Err(err).Str("file", flags.LogFile).Msg("log file disabled")
			}
			cmd.SetContext(l.WithContext(cmd.Context()))
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if logger == nil {
				return nil
			}
			return logger.Close()
		},
	}

	AddGlobalFlags(cmd, flags)

	AddRunCommand(cmd, flags)
	AddLayoutCommand(cmd)
	AddSimulateCommand(cmd, flags)
	AddInspectCommand(cmd)
	AddConfigCommand(cmd, flags)

	return cmd
}

// consoleFor keeps the default stderr writer unless a test redirected it.
func consoleFor(cmd *cobra.Command) io.Writer {
	if w := cmd.ErrOrStderr(); w != io.Writer(os.Stderr) {
		return w
	}
	return nil
}

func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	return newRootCmd(flags, info).ExecuteContext(ctx)
}

// loggerFrom returns the command logger, or a disabled one before setup ran.
func loggerFrom(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/logging/logging.go
// Summary: zerolog construction for the texeltile binaries.
// Usage: cmd/texeltile builds one logger in PersistentPreRunE and passes it down.

// Package logging builds the process logger: console or JSON on stderr plus
// an optional rotating log file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/framegrace/texeltile/internal/errors"
)

// Rotation limits for the log file.
const (
	LogMaxSizeMB   = 10
	LogMaxBackups  = 3
	LogMaxAgeDays  = 14
	DefaultLogName = "texeltile.log"
)

// Options selects level and destinations.
type Options struct {
	Verbose bool
	Quiet   bool
	// File, when set, receives a copy of every entry with rotation.
	File string
	// Console overrides stderr; mainly for tests.
	Console io.Writer
}

// Logger is a configured logger plus whatever must be closed on exit.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// New builds a logger from opts. The log file is optional: when it cannot be
// created the logger falls back to console output and the error is returned
// alongside a usable logger.
func New(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = selectOutput()
	}

	writer := console
	var closer io.Closer
	var fileErr error
	if opts.File != "" {
		lj, err := newFileWriter(opts.File)
		if err != nil {
			fileErr = err
		} else {
			closer = lj
			writer = zerolog.MultiLevelWriter(console, lj)
		}
	}

	logger := zerolog.New(writer).Level(SelectLevel(opts.Verbose, opts.Quiet)).With().Timestamp().Logger()
	return &Logger{Logger: logger, closer: closer}, fileErr
}

// SelectLevel maps verbosity flags to a level; verbose wins over quiet.
func SelectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput uses a console writer on a TTY without NO_COLOR, JSON otherwise.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

func newFileWriter(path string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    LogMaxSizeMB,
		MaxBackups: LogMaxBackups,
		MaxAge:     LogMaxAgeDays,
	}, nil
}

// DefaultFile returns the log path under the user cache directory.
func DefaultFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "texeltile", DefaultLogName), nil
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/session/loop.go
// Summary: Frame loop owning the shell; other goroutines reach it through commands.
// Usage: cmd/texeltile run builds a Loop with a renderer, the preview input source and a config watch.
// Notes: Only the owner goroutine touches the shell.

// Package session drives a texel.Shell from a single owner goroutine.
package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/texeltile/config"
	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/texel"
)

// DefaultInterval is the frame period, about 60 frames per second.
const DefaultInterval = 16 * time.Millisecond

// ErrStop ends Run cleanly when returned by a Command.
var ErrStop = errors.New("session stopped")

// Command mutates the shell on the owner goroutine.
type Command func(*texel.Shell) error

// Source feeds commands until ctx is done. A non-nil error stops the loop.
type Source func(ctx context.Context, submit func(Command) error) error

// Renderer presents one output after it changed.
type Renderer interface {
	Render(o *texel.OutputSpace) error
}

// Options configures a Loop.
type Options struct {
	Shell  *texel.Shell
	Output string
	// Interval defaults to DefaultInterval.
	Interval time.Duration
	Renderer Renderer
	// ConfigPath is watched for changes when set.
	ConfigPath string
	Logger     zerolog.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Loop runs frames and commands against one shell.
type Loop struct {
	shell    *texel.Shell
	output   string
	interval time.Duration
	renderer Renderer
	cfgPath  string
	logger   zerolog.Logger
	clock    func() time.Time

	commands chan Command
	frames   int
}

// New creates a loop. The shell must not be used elsewhere while Run is active.
func New(opts Options) *Loop {
	l := &Loop{
		shell:    opts.Shell,
		output:   opts.Output,
		interval: opts.Interval,
		renderer: opts.Renderer,
		cfgPath:  opts.ConfigPath,
		logger:   opts.Logger.With().Str("component", "session").Logger(),
		clock:    opts.Clock,
		commands: make(chan Command),
	}
	if l.interval <= 0 {
		l.interval = DefaultInterval
	}
	if l.clock == nil {
		l.clock = time.Now
	}
	return l
}

// Frames returns the number of frames rendered so far. Only meaningful after Run returns.
func (l *Loop) Frames() int { return l.frames }

// Run starts the owner goroutine, the config watch and every source, and
// blocks until ctx is done, a command returns ErrStop, or any part fails.
func (l *Loop) Run(ctx context.Context, sources ...Source) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	submit := func(cmd Command) error {
		select {
		case l.commands <- cmd:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	g.Go(func() error {
		defer cancel()
		return l.own(ctx)
	})
	if l.cfgPath != "" {
		g.Go(func() error {
			return l.watch(ctx, submit)
		})
	}
	for _, src := range sources {
		g.Go(func() error {
			if err := src(ctx, submit); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// own is the owner goroutine. Idle outputs are suspended so a long pause
// does not arrive as one huge frame delta.
func (l *Loop) own(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	dirty := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-l.commands:
			l.resume()
			if err := cmd(l.shell); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				l.logger.Warn().Err(err).Msg("command failed")
			}
			dirty = true
		case <-ticker.C:
			animating := l.shell.Tick(l.clock())
			if !animating && !dirty {
				continue
			}
			if err := l.render(); err != nil {
				return err
			}
			dirty = false
			if !animating {
				l.suspend()
			}
		}
	}
}

func (l *Loop) render() error {
	if l.renderer == nil {
		return nil
	}
	o := l.shell.Output(l.output)
	if o == nil {
		return nil
	}
	l.frames++
	return l.renderer.Render(o)
}

func (l *Loop) suspend() {
	for _, o := range l.shell.Outputs() {
		o.Suspend()
	}
}

func (l *Loop) resume() {
	for _, o := range l.shell.Outputs() {
		if o.Suspended() {
			o.Resume()
		}
	}
}

// watch forwards valid config changes to the shell. Rejected files are
// logged and the running settings stay in place.
func (l *Loop) watch(ctx context.Context, submit func(Command) error) error {
	return config.Watch(l.logger.WithContext(ctx), l.cfgPath, func(cfg *config.Config, err error) {
		if err != nil {
			return
		}
		settings, err := cfg.Settings()
		if err != nil {
			l.logger.Warn().Err(err).Msg("config rejected")
			return
		}
		_ = submit(func(sh *texel.Shell) error {
			sh.Reload(settings)
			return nil
		})
	})
}

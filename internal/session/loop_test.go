// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texeltile/internal/geom"
	"github.com/framegrace/texeltile/texel"
)

type signalRenderer struct {
	rendered chan []texel.RenderEntry
}

func (r *signalRenderer) Render(o *texel.OutputSpace) error {
	select {
	case r.rendered <- o.RenderList():
	default:
	}
	return nil
}

func newLoop(t *testing.T) (*Loop, *texel.Shell, *signalRenderer) {
	t.Helper()
	s := texel.DefaultSettings()
	s.Toggles.Disabled = true
	s.InnerGap, s.OuterGap = 0, 0
	sh := texel.NewShell(s, zerolog.Nop())
	_, err := sh.AttachOutput("main", geom.Size{W: 1000, H: 800})
	require.NoError(t, err)

	r := &signalRenderer{rendered: make(chan []texel.RenderEntry, 1)}
	l := New(Options{
		Shell:    sh,
		Output:   "main",
		Interval: time.Millisecond,
		Renderer: r,
		Logger:   zerolog.Nop(),
	})
	return l, sh, r
}

func mapWindow(w texel.WindowID) Command {
	return func(sh *texel.Shell) error {
		_, err := sh.MapWindow(w)
		return err
	}
}

// waitRender runs on source goroutines, so it reports with Errorf.
func waitRender(t *testing.T, r *signalRenderer, want int) []texel.RenderEntry {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case entries := <-r.rendered:
			if len(entries) == want {
				return entries
			}
		case <-deadline:
			t.Errorf("no render with %d entries", want)
			return nil
		}
	}
}

func TestRunAppliesCommandsThenStops(t *testing.T) {
	l, sh, r := newLoop(t)

	src := func(ctx context.Context, submit func(Command) error) error {
		assert.NoError(t, submit(mapWindow("a")))
		assert.NoError(t, submit(mapWindow("b")))
		if entries := waitRender(t, r, 2); assert.Len(t, entries, 2) {
			assert.Equal(t, geom.Rect{X: 500, Y: 0, W: 500, H: 800}, entries[1].Geometry)
		}
		return submit(func(*texel.Shell) error { return ErrStop })
	}

	require.NoError(t, l.Run(context.Background(), src))
	assert.Equal(t, 2, sh.TileCount())
	assert.Positive(t, l.Frames())
}

func TestFailingCommandDoesNotStopLoop(t *testing.T) {
	l, sh, r := newLoop(t)

	src := func(ctx context.Context, submit func(Command) error) error {
		assert.NoError(t, submit(func(sh *texel.Shell) error { return sh.FocusWindow("ghost") }))
		assert.NoError(t, submit(mapWindow("a")))
		waitRender(t, r, 1)
		return submit(func(*texel.Shell) error { return ErrStop })
	}

	require.NoError(t, l.Run(context.Background(), src))
	assert.Equal(t, 1, sh.TileCount())
}

func TestSourceErrorEndsRun(t *testing.T) {
	l, _, _ := newLoop(t)
	boom := stderrors.New("input closed")

	err := l.Run(context.Background(), func(context.Context, func(Command) error) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestIdleOutputIsSuspended(t *testing.T) {
	l, sh, r := newLoop(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := func(ctx context.Context, submit func(Command) error) error {
		assert.NoError(t, submit(mapWindow("a")))
		waitRender(t, r, 1)
		cancel()
		return nil
	}

	require.NoError(t, l.Run(ctx, src))
	assert.True(t, sh.Output("main").Suspended())
}

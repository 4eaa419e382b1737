// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/session"
	"github.com/framegrace/texeltile/texel"
)

// Input polls screen events and turns them into session commands: bound keys
// become shell actions and terminal resizes resize the named output.
func Input(screen tcell.Screen, r *Renderer, output string) session.Source {
	return func(ctx context.Context, submit func(session.Command) error) error {
		go func() {
			<-ctx.Done()
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		}()

		var binder Binder
		for {
			ev := screen.PollEvent()
			if ev == nil || ctx.Err() != nil {
				return nil
			}
			var cmd session.Command
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				size := r.OutputSize()
				cmd = func(sh *texel.Shell) error { return sh.ResizeOutput(output, size) }
			case *tcell.EventKey:
				action, ok := KeyAction(ev)
				if !ok {
					continue
				}
				cmd = func(sh *texel.Shell) error {
					err := binder.Apply(sh, action)
					if errors.Is(err, ErrQuit) {
						return session.ErrStop
					}
					return err
				}
			default:
				continue
			}
			if err := submit(cmd); err != nil {
				return nil
			}
		}
	}
}

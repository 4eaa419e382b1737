// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/switcher.go
// Summary: Sliding transition between the outgoing and incoming workspace of an output.
// Usage: Created by OutputSpace.SetActive; advanced per frame until progress reaches 1.

package texel

import (
	"math"
	"time"

	"github.com/framegrace/texeltile/internal/animation"
	"github.com/framegrace/texeltile/internal/geom"
)

// WorkspaceSwitcher animates progress from the outgoing workspace (0) to the
// incoming one (1).
type WorkspaceSwitcher struct {
	from, to int
	anim     *animation.Animation[animation.Scalar]
}

func newSwitcher(from, to int, startProgress float64, curve animation.Curve) *WorkspaceSwitcher {
	return &WorkspaceSwitcher{
		from: from,
		to:   to,
		anim: animation.New(animation.Scalar(startProgress), 1, curve),
	}
}

// continueSwitcher starts a switch at startProgress that is already moving at
// vel progress per second. Only springs can carry the velocity.
func continueSwitcher(from, to int, startProgress, vel float64, curve animation.Curve) *WorkspaceSwitcher {
	if sc, ok := curve.(animation.SpringCurve); ok {
		v := 0.0
		if left := 1 - startProgress; math.Abs(left) > 1e-9 {
			v = vel / left
		}
		curve = sc.WithInitialVelocity(v)
	}
	return newSwitcher(from, to, startProgress, curve)
}

// From returns the outgoing workspace index.
func (s *WorkspaceSwitcher) From() int { return s.from }

// To returns the incoming workspace index.
func (s *WorkspaceSwitcher) To() int { return s.to }

// Progress returns 0 when fully on the outgoing workspace and 1 when fully on
// the incoming one. Springs may overshoot.
func (s *WorkspaceSwitcher) Progress() float64 {
	return float64(s.anim.Value())
}

// Finished reports whether the switch completed.
func (s *WorkspaceSwitcher) Finished() bool { return s.anim.Finished() }

func (s *WorkspaceSwitcher) advance(dt time.Duration) error {
	return s.anim.Advance(dt)
}

// retarget redirects an in-flight switch towards workspace idx. Going back to
// the outgoing workspace reverses the slide from its current position.
// Otherwise whichever workspace covers most of the output becomes the new
// outgoing one, and the new switch starts where that workspace sits so
// nothing jumps. The other workspace leaves the screen.
func (s *WorkspaceSwitcher) retarget(idx int, curve animation.Curve) *WorkspaceSwitcher {
	p := s.Progress()
	v := s.anim.ValueVelocity()[0]
	switch idx {
	case s.to:
		return s
	case s.from:
		return continueSwitcher(s.to, s.from, 1-p, -v, curve)
	}

	// Offsets in output extents, signed along the slide axis.
	dir := slideSign(s.from, s.to)
	outgoing, at := s.from, dir*p
	if p >= 0.5 {
		outgoing, at = s.to, -dir*(1-p)
	}
	next := slideSign(outgoing, idx)
	return continueSwitcher(outgoing, idx, at*next, dir*next*v, curve)
}

// slideSign is the direction the outgoing workspace moves in when switching
// from one index to another: towards negative coordinates for higher indices.
func slideSign(from, to int) float64 {
	if to < from {
		return 1
	}
	return -1
}

// Offsets returns the translation of the outgoing and incoming workspace.
// Moving to a higher index slides content towards negative coordinates.
func (s *WorkspaceSwitcher) Offsets(size geom.Size, dir SwitchDirection) (from, to geom.Point) {
	p := s.Progress()
	extent := size.W
	if dir == SwitchVertical {
		extent = size.H
	}
	sign := slideSign(s.from, s.to)
	out := int(math.Round(sign * p * float64(extent)))
	in := int(math.Round(-sign * (1 - p) * float64(extent)))
	if dir == SwitchVertical {
		return geom.Point{Y: out}, geom.Point{Y: in}
	}
	return geom.Point{X: out}, geom.Point{X: in}
}

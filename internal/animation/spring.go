// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/animation/spring.go
// Summary: Fixed-step spring integration backed by harmonica.
// Usage: Owned by an Animation whose curve is a SpringCurve.

package animation

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	// springStep is the fixed integration step; frame deltas are consumed in
	// whole steps and the remainder carried to the next frame.
	springStep = time.Millisecond

	// maxSpringAdvance caps how much time a single Advance may integrate.
	maxSpringAdvance = 250 * time.Millisecond

	// maxSpringSettle bounds the settle-time estimate for very soft springs.
	maxSpringSettle = 30 * time.Second
)

// springState integrates normalized progress from 0 towards 1.
type springState struct {
	spring  harmonica.Spring
	clamp   bool
	eps     float64
	pos     float64
	vel     float64
	acc     time.Duration
	elapsed time.Duration
	done    bool
}

func newSpringState(c SpringCurve) *springState {
	omega := math.Sqrt(c.Stiffness / c.Mass)
	return &springState{
		spring: harmonica.NewSpring(harmonica.FPS(int(time.Second/springStep)), omega, c.DampingRatio),
		clamp:  c.Clamp,
		eps:    c.epsilon(),
		vel:    c.InitialVelocity,
	}
}

// advance consumes dt in fixed steps and reports whether the spring settled.
func (s *springState) advance(dt time.Duration) bool {
	if s.done {
		return true
	}
	if dt > maxSpringAdvance {
		dt = maxSpringAdvance
	}
	s.acc += dt
	for s.acc >= springStep {
		s.acc -= springStep
		s.elapsed += springStep
		s.pos, s.vel = s.spring.Update(s.pos, s.vel, 1)

		if s.clamp {
			if s.pos >= 1 {
				s.pos, s.vel = 1, 0
			} else if s.pos < 0 {
				s.pos = 0
				if s.vel < 0 {
					s.vel = 0
				}
			}
		}
		if math.Abs(1-s.pos) < s.eps && math.Abs(s.vel) < s.eps {
			s.done = true
			s.acc = 0
			break
		}
		if !finite(s.pos) || !finite(s.vel) {
			break
		}
	}
	return s.done
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/animation/animation.go
// Summary: Generic start/end animations driven by a Curve and explicit frame deltas.
// Usage: Tiles, workspaces and the switcher advance their animations once per tick.
// Notes: Animations never read the wall clock; owners pass the elapsed delta.

// Package animation provides progress curves and value animations.
package animation

import (
	"time"

	"github.com/framegrace/texeltile/internal/errors"
)

// Value is anything that can be linearly interpolated towards another value of
// the same type. The factor may leave [0,1] when a spring overshoots. Delta
// returns to minus the receiver, one entry per component.
type Value[T any] interface {
	comparable
	Lerp(to T, x float64) T
	Delta(to T) []float64
}

// Scalar is a plain float value, used for opacity, scale and offsets.
type Scalar float64

// Lerp implements Value.
func (s Scalar) Lerp(to Scalar, x float64) Scalar {
	return s + (to-s)*Scalar(x)
}

// Delta implements Value.
func (s Scalar) Delta(to Scalar) []float64 {
	return []float64{float64(to - s)}
}

// Animation moves a value from Start to End following a curve.
type Animation[T Value[T]] struct {
	start   T
	end     T
	current T
	curve   Curve

	elapsed  time.Duration
	progress float64
	spring   *springState
	finished bool
}

// New creates an animation. When start equals end, or the curve has no
// length, the animation is already finished and reports end.
func New[T Value[T]](start, end T, curve Curve) *Animation[T] {
	a := &Animation[T]{start: start, end: end, current: start, curve: curve}
	switch c := curve.(type) {
	case SpringCurve:
		a.spring = newSpringState(c)
	case nil:
		a.Finish()
	default:
		if c.Duration() <= 0 {
			a.Finish()
		}
	}
	if start == end {
		a.Finish()
	}
	return a
}

// Start returns the value the animation started from.
func (a *Animation[T]) Start() T { return a.start }

// End returns the target value.
func (a *Animation[T]) End() T { return a.end }

// Curve returns the curve driving the animation.
func (a *Animation[T]) Curve() Curve { return a.curve }

// Value returns the current interpolated value.
func (a *Animation[T]) Value() T { return a.current }

// Progress returns the current curve output. Springs may exceed 1 transiently.
func (a *Animation[T]) Progress() float64 { return a.progress }

// Elapsed returns the time integrated so far.
func (a *Animation[T]) Elapsed() time.Duration { return a.elapsed }

// Velocity returns the spring velocity in progress units per second, or zero
// for fixed-duration curves.
func (a *Animation[T]) Velocity() float64 {
	if a.spring == nil || a.finished {
		return 0
	}
	return a.spring.vel
}

// Finished reports whether the animation reached its end.
func (a *Animation[T]) Finished() bool { return a.finished }

// Finish jumps to the end value.
func (a *Animation[T]) Finish() {
	a.finished = true
	a.progress = 1
	a.current = a.end
}

// Advance moves the animation forward by dt. Negative deltas are ignored. If
// the curve produces NaN or infinite progress the animation is finished and
// ErrNonFiniteState is returned.
func (a *Animation[T]) Advance(dt time.Duration) error {
	if a.finished {
		return nil
	}
	if dt < 0 {
		dt = 0
	}
	a.elapsed += dt

	var p float64
	done := false
	switch c := a.curve.(type) {
	case EasingCurve:
		p = c.Progress(a.elapsed)
		done = a.elapsed >= c.Length
	case BezierCurve:
		p = c.Progress(a.elapsed)
		done = a.elapsed >= c.Length
	case SpringCurve:
		done = a.spring.advance(dt)
		p = a.spring.pos
		if !finite(a.spring.vel) {
			p = a.spring.vel
		}
	}

	if !finite(p) {
		a.Finish()
		return errors.Wrapf(errors.ErrNonFiniteState, "after %s", a.elapsed)
	}
	if done {
		a.Finish()
		return nil
	}
	a.progress = p
	a.current = a.start.Lerp(a.end, p)
	return nil
}

// Retarget returns a new animation from the current value to end. When both the
// running and the new curve are springs, the current velocity carries over so
// the motion stays continuous.
//
// Spring velocity is measured in progress per second, and one unit of progress
// spans the whole segment. The value-space velocity is projected onto the new
// segment and expressed in its progress units; a new segment of zero length
// starts at rest.
func (a *Animation[T]) Retarget(end T, curve Curve) *Animation[T] {
	if sc, ok := curve.(SpringCurve); ok && a.spring != nil && !a.finished {
		curve = sc.WithInitialVelocity(a.carriedVelocity(end))
	}
	return New(a.current, end, curve)
}

func (a *Animation[T]) carriedVelocity(end T) float64 {
	from := a.start.Delta(a.end)
	to := a.current.Delta(end)
	var dot, norm float64
	for i := range min(len(from), len(to)) {
		dot += from[i] * to[i]
		norm += to[i] * to[i]
	}
	if norm < 1e-12 {
		return 0
	}
	return a.spring.vel * dot / norm
}

// ValueVelocity returns the spring velocity in value units per second, one
// entry per component. It is all zeros for fixed-duration curves.
func (a *Animation[T]) ValueVelocity() []float64 {
	d := a.start.Delta(a.end)
	v := a.Velocity()
	for i := range d {
		d[i] *= v
	}
	return d
}

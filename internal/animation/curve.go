// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/animation/curve.go
// Summary: Progress curves (easing, cubic Bézier, spring) driving every animation.
// Usage: Built from configuration, then handed to New or Animation.Retarget.

package animation

import (
	"math"
	"time"

	"github.com/framegrace/texeltile/internal/errors"
)

// DefaultSpringEpsilon is the settle threshold used when a spring leaves Epsilon at zero.
const DefaultSpringEpsilon = 0.001

// Curve maps elapsed time to progress. The set of variants is closed: EasingCurve,
// BezierCurve and SpringCurve.
type Curve interface {
	// Duration returns the nominal length of the curve. Springs report the
	// time their simulation takes to settle from rest.
	Duration() time.Duration
	isCurve()
}

// EasingCurve applies a predefined easing over a fixed duration.
type EasingCurve struct {
	Kind   Easing
	Length time.Duration
}

// NewEasing returns an easing curve. A negative duration is treated as zero.
func NewEasing(kind Easing, d time.Duration) EasingCurve {
	if d < 0 {
		d = 0
	}
	return EasingCurve{Kind: kind, Length: d}
}

func (c EasingCurve) Duration() time.Duration { return c.Length }
func (EasingCurve) isCurve()                  {}

// Progress evaluates the curve after elapsed time.
func (c EasingCurve) Progress(elapsed time.Duration) float64 {
	if c.Length <= 0 {
		return 1
	}
	return c.Kind.Apply(float64(elapsed) / float64(c.Length))
}

// SpringCurve is a damped harmonic oscillator pulling progress from 0 to 1.
// It has no fixed duration; it ends once both displacement and velocity are
// within Epsilon of rest.
type SpringCurve struct {
	InitialVelocity float64
	DampingRatio    float64
	Mass            float64
	Stiffness       float64
	Epsilon         float64
	// Clamp stops the spring at its first arrival instead of letting it overshoot.
	Clamp bool

	settle time.Duration
}

// NewSpring validates spring parameters and precomputes the settle duration.
func NewSpring(initialVelocity, dampingRatio, mass, stiffness, epsilon float64, clamp bool) (SpringCurve, error) {
	c := SpringCurve{
		InitialVelocity: initialVelocity,
		DampingRatio:    dampingRatio,
		Mass:            mass,
		Stiffness:       stiffness,
		Epsilon:         epsilon,
		Clamp:           clamp,
	}
	if err := c.Validate(); err != nil {
		return SpringCurve{}, err
	}
	c.settle = c.simulateSettle()
	return c, nil
}

// Validate checks that the spring is physically meaningful.
func (c SpringCurve) Validate() error {
	switch {
	case !finite(c.InitialVelocity), !finite(c.DampingRatio), !finite(c.Mass), !finite(c.Stiffness), !finite(c.Epsilon):
		return errors.Wrap(errors.ErrInvalidCurveConfig, "spring parameters must be finite")
	case c.Mass <= 0:
		return errors.Wrapf(errors.ErrInvalidCurveConfig, "spring mass %v must be positive", c.Mass)
	case c.Stiffness <= 0:
		return errors.Wrapf(errors.ErrInvalidCurveConfig, "spring stiffness %v must be positive", c.Stiffness)
	case c.DampingRatio < 0:
		return errors.Wrapf(errors.ErrInvalidCurveConfig, "spring damping ratio %v must not be negative", c.DampingRatio)
	case c.Epsilon < 0:
		return errors.Wrapf(errors.ErrInvalidCurveConfig, "spring epsilon %v must not be negative", c.Epsilon)
	}
	return nil
}

// Duration returns the estimated settle time.
func (c SpringCurve) Duration() time.Duration {
	if c.settle == 0 {
		return c.simulateSettle()
	}
	return c.settle
}

func (SpringCurve) isCurve() {}

// WithInitialVelocity returns a copy of the spring starting at velocity v.
func (c SpringCurve) WithInitialVelocity(v float64) SpringCurve {
	c.InitialVelocity = v
	c.settle = 0
	return c
}

func (c SpringCurve) epsilon() float64 {
	if c.Epsilon <= 0 {
		return DefaultSpringEpsilon
	}
	return c.Epsilon
}

func (c SpringCurve) simulateSettle() time.Duration {
	s := newSpringState(c)
	for !s.done && s.elapsed < maxSpringSettle {
		s.advance(springStep)
		if !finite(s.pos) || !finite(s.vel) {
			break
		}
	}
	return s.elapsed
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

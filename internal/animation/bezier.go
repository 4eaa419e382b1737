// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/animation/bezier.go
// Summary: CSS-style cubic Bézier timing curves with a pre-baked lookup table.
// Usage: NewBezier validates the control points; Progress samples the table.

package animation

import (
	"sort"
	"time"

	"github.com/framegrace/texeltile/internal/errors"
)

// bezierSamples is the number of baked intervals along the curve parameter.
const bezierSamples = 255

// ControlPoint is one of the two free control points of a timing curve.
// The end points are fixed at (0,0) and (1,1).
type ControlPoint struct {
	X, Y float64
}

// BezierCurve is a cubic Bézier timing function over a fixed duration.
type BezierCurve struct {
	P1, P2 ControlPoint
	Length time.Duration

	baked *[bezierSamples + 1]ControlPoint
}

// NewBezier validates the control points and bakes the lookup table. Both x
// coordinates must lie in [0,1] so that x(t) is monotonic; y may overshoot.
func NewBezier(p1, p2 ControlPoint, d time.Duration) (BezierCurve, error) {
	for _, v := range []float64{p1.X, p1.Y, p2.X, p2.Y} {
		if !finite(v) {
			return BezierCurve{}, errors.Wrap(errors.ErrInvalidCurveConfig, "bezier control points must be finite")
		}
	}
	if p1.X < 0 || p1.X > 1 || p2.X < 0 || p2.X > 1 {
		return BezierCurve{}, errors.Wrapf(errors.ErrInvalidCurveConfig,
			"bezier x coordinates (%v, %v) must lie in [0,1]", p1.X, p2.X)
	}
	if d < 0 {
		d = 0
	}
	c := BezierCurve{P1: p1, P2: p2, Length: d}
	c.bake()
	return c, nil
}

func (c BezierCurve) Duration() time.Duration { return c.Length }
func (BezierCurve) isCurve()                  {}

func (c *BezierCurve) bake() {
	var table [bezierSamples + 1]ControlPoint
	for i := range table {
		t := float64(i) / bezierSamples
		table[i] = ControlPoint{
			X: cubic(c.P1.X, c.P2.X, t),
			Y: cubic(c.P1.Y, c.P2.Y, t),
		}
	}
	c.baked = &table
}

// Progress evaluates the curve after elapsed time.
func (c BezierCurve) Progress(elapsed time.Duration) float64 {
	if c.Length <= 0 || elapsed >= c.Length {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return c.At(float64(elapsed) / float64(c.Length))
}

// At returns the curve's y for the given x in [0,1].
func (c BezierCurve) At(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	if c.baked == nil {
		c.bake()
	}
	table := c.baked[:]
	i := sort.Search(len(table), func(i int) bool { return table[i].X >= x })
	if i == 0 {
		return table[0].Y
	}
	lo, hi := table[i-1], table[i]
	if hi.X == lo.X {
		return hi.Y
	}
	f := (x - lo.X) / (hi.X - lo.X)
	return lo.Y + (hi.Y-lo.Y)*f
}

// cubic evaluates one coordinate of a Bézier with end points 0 and 1.
func cubic(a, b, t float64) float64 {
	u := 1 - t
	return 3*u*u*t*a + 3*u*t*t*b + t*t*t
}

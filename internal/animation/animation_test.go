// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/geom"
)

const frame = 16 * time.Millisecond

func TestEasingEndpoints(t *testing.T) {
	for e := Linear; e < easingCount; e++ {
		assert.InDelta(t, 0, e.Apply(0), 1e-9, e.String())
		assert.InDelta(t, 1, e.Apply(1), 1e-9, e.String())
		assert.InDelta(t, 1, e.Func()(1), 1e-9, e.String())
	}
}

func TestParseEasing(t *testing.T) {
	e, err := ParseEasing("EaseOutCubic")
	require.NoError(t, err)
	assert.Equal(t, EaseOutCubic, e)

	e, err = ParseEasing("ease_in_out_expo")
	require.NoError(t, err)
	assert.Equal(t, EaseInOutExpo, e)

	e, err = ParseEasing("ease-out")
	require.NoError(t, err)
	assert.Equal(t, EaseOutSine, e)

	_, err = ParseEasing("bouncy")
	assert.True(t, errors.Is(err, errors.ErrUnknownEasing))
}

func TestEasingAnimationReachesEnd(t *testing.T) {
	a := New(Scalar(0), Scalar(100), NewEasing(Linear, 100*time.Millisecond))
	require.False(t, a.Finished())

	require.NoError(t, a.Advance(50*time.Millisecond))
	assert.InDelta(t, 50, float64(a.Value()), 1e-9)
	assert.False(t, a.Finished())

	require.NoError(t, a.Advance(50*time.Millisecond))
	assert.True(t, a.Finished())
	assert.Equal(t, Scalar(100), a.Value())
	assert.Equal(t, 1.0, a.Progress())
}

func TestAnimationEqualEndpointsIsFinished(t *testing.T) {
	a := New(Scalar(3), Scalar(3), NewEasing(Linear, time.Second))
	assert.True(t, a.Finished())
	assert.Equal(t, Scalar(3), a.Value())
}

func TestZeroDurationFinishesImmediately(t *testing.T) {
	a := New(Scalar(0), Scalar(1), NewEasing(EaseOutCubic, 0))
	assert.True(t, a.Finished())
	assert.Equal(t, Scalar(1), a.Value())
}

func TestNegativeDeltaIgnored(t *testing.T) {
	a := New(Scalar(0), Scalar(10), NewEasing(Linear, time.Second))
	require.NoError(t, a.Advance(-time.Second))
	assert.Equal(t, Scalar(0), a.Value())
	assert.Equal(t, time.Duration(0), a.Elapsed())
}

func TestBezierLinearMatchesIdentity(t *testing.T) {
	c, err := NewBezier(ControlPoint{X: 0.25, Y: 0.25}, ControlPoint{X: 0.75, Y: 0.75}, time.Second)
	require.NoError(t, err)
	for _, x := range []float64{0, 0.1, 0.33, 0.5, 0.9, 1} {
		assert.InDelta(t, x, c.At(x), 1e-6)
	}
}

func TestBezierMonotonicForStandardEase(t *testing.T) {
	c, err := NewBezier(ControlPoint{X: 0.25, Y: 0.1}, ControlPoint{X: 0.25, Y: 1}, 300*time.Millisecond)
	require.NoError(t, err)

	prev := -1.0
	for i := 0; i <= 100; i++ {
		y := c.At(float64(i) / 100)
		assert.GreaterOrEqual(t, y, prev)
		prev = y
	}
	assert.Equal(t, 300*time.Millisecond, c.Duration())
}

func TestBezierRejectsNonMonotonicX(t *testing.T) {
	_, err := NewBezier(ControlPoint{X: 1.5, Y: 0}, ControlPoint{X: 0.5, Y: 1}, time.Second)
	assert.True(t, errors.Is(err, errors.ErrInvalidCurveConfig))

	_, err = NewBezier(ControlPoint{X: 0.5, Y: 0}, ControlPoint{X: -0.1, Y: 1}, time.Second)
	assert.True(t, errors.Is(err, errors.ErrInvalidCurveConfig))
}

func TestBezierAnimationReachesEnd(t *testing.T) {
	c, err := NewBezier(ControlPoint{X: 0.68, Y: -0.55}, ControlPoint{X: 0.27, Y: 1.55}, 200*time.Millisecond)
	require.NoError(t, err)
	a := New(Scalar(0), Scalar(1), c)
	for i := 0; i < 20 && !a.Finished(); i++ {
		require.NoError(t, a.Advance(frame))
	}
	assert.True(t, a.Finished())
	assert.Equal(t, Scalar(1), a.Value())
}

func TestSpringValidation(t *testing.T) {
	_, err := NewSpring(0, 1, 0, 100, 0.001, false)
	assert.True(t, errors.Is(err, errors.ErrInvalidCurveConfig), "zero mass")

	_, err = NewSpring(0, 1, 1, -5, 0.001, false)
	assert.True(t, errors.Is(err, errors.ErrInvalidCurveConfig), "negative stiffness")

	_, err = NewSpring(0, -0.5, 1, 100, 0.001, false)
	assert.True(t, errors.Is(err, errors.ErrInvalidCurveConfig), "negative damping")
}

func TestCriticallyDampedClampedSpringNeverOvershoots(t *testing.T) {
	c, err := NewSpring(0, 1, 1, 500, 0.001, true)
	require.NoError(t, err)

	a := New(Scalar(0), Scalar(1), c)
	prev := Scalar(0)
	for i := 0; i < 400 && !a.Finished(); i++ {
		require.NoError(t, a.Advance(frame))
		v := a.Value()
		assert.LessOrEqual(t, float64(v), 1.0)
		assert.GreaterOrEqual(t, float64(v), float64(prev))
		prev = v
	}
	assert.True(t, a.Finished())
	assert.Equal(t, Scalar(1), a.Value())
	assert.Less(t, a.Elapsed(), 2*time.Second)
}

func TestUnderdampedSpringOvershootsUnlessClamped(t *testing.T) {
	free, err := NewSpring(0, 0.3, 1, 300, 0.001, false)
	require.NoError(t, err)
	clamped, err := NewSpring(0, 0.3, 1, 300, 0.001, true)
	require.NoError(t, err)

	a := New(Scalar(0), Scalar(1), free)
	peak := 0.0
	for i := 0; i < 1000 && !a.Finished(); i++ {
		require.NoError(t, a.Advance(frame))
		peak = max(peak, a.Progress())
	}
	assert.Greater(t, peak, 1.0)
	assert.True(t, a.Finished())

	b := New(Scalar(0), Scalar(1), clamped)
	for i := 0; i < 1000 && !b.Finished(); i++ {
		require.NoError(t, b.Advance(frame))
		assert.LessOrEqual(t, b.Progress(), 1.0)
	}
	assert.True(t, b.Finished())
	assert.Less(t, b.Elapsed(), a.Elapsed(), "clamped spring ends at first arrival")
	assert.Less(t, clamped.Duration(), free.Duration())
}

func TestRetargetKeepsCurrentValue(t *testing.T) {
	a := New(Scalar(0), Scalar(100), NewEasing(Linear, 100*time.Millisecond))
	require.NoError(t, a.Advance(40*time.Millisecond))

	b := a.Retarget(Scalar(0), NewEasing(Linear, 100*time.Millisecond))
	assert.InDelta(t, 40, float64(b.Start()), 1e-9)
	assert.InDelta(t, 40, float64(b.Value()), 1e-9)
	assert.Equal(t, Scalar(0), b.End())
}

func TestRetargetKeepsSpringVelocityInValueUnits(t *testing.T) {
	c, err := NewSpring(0, 0.8, 1, 300, 0.001, false)
	require.NoError(t, err)

	tests := []struct {
		name   string
		target Scalar
	}{
		{"further ahead", 250},
		{"behind the current value", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(Scalar(0), Scalar(100), c)
			for a.Value() < 45 {
				require.NoError(t, a.Advance(time.Millisecond))
			}
			before := a.ValueVelocity()[0]
			require.Greater(t, before, 100.0)

			b := a.Retarget(tt.target, c)
			assert.Equal(t, a.Value(), b.Start())
			assert.InEpsilon(t, before, b.ValueVelocity()[0], 1e-9)

			// The value keeps moving the way it was going for the first step.
			require.NoError(t, b.Advance(time.Millisecond))
			assert.Greater(t, float64(b.Value()), float64(b.Start()))
		})
	}
}

func TestRetargetProjectsRectVelocity(t *testing.T) {
	c, err := NewSpring(0, 1, 1, 200, 0.001, false)
	require.NoError(t, err)
	a := New(geom.Rect{W: 100, H: 100}, geom.Rect{X: 200, W: 100, H: 100}, c)
	require.NoError(t, a.Advance(50*time.Millisecond))
	vx := a.ValueVelocity()[0]
	require.Greater(t, vx, 0.0)

	// Only the X component lies along the new segment.
	end := a.Value()
	end.X += 100
	end.W += 100
	b := a.Retarget(end, c)
	got := b.ValueVelocity()
	assert.InEpsilon(t, vx/2, got[0], 1e-9)
	assert.InEpsilon(t, vx/2, got[2], 1e-9)
	assert.Zero(t, got[1])

	// Moving across the old direction starts at rest.
	end = a.Value()
	end.Y += 50
	assert.Zero(t, a.Retarget(end, c).Velocity())
}

func TestNonFiniteSpringFinishes(t *testing.T) {
	// Bypasses validation: zero mass yields an infinite angular frequency.
	c := SpringCurve{DampingRatio: 1, Mass: 0, Stiffness: 100}
	a := New(Scalar(0), Scalar(5), c)

	err := a.Advance(frame)
	assert.True(t, errors.Is(err, errors.ErrNonFiniteState))
	assert.True(t, a.Finished())
	assert.Equal(t, Scalar(5), a.Value())
}

func TestToggles(t *testing.T) {
	var tg Toggles
	assert.True(t, tg.Enabled(KindWindowGeometry))

	off := tg.With(KindWindowGeometry, false)
	assert.False(t, off.Enabled(KindWindowGeometry))
	assert.True(t, off.Enabled(KindWorkspaceSwitch))
	assert.True(t, tg.Enabled(KindWindowGeometry), "With copies")

	off.Disabled = true
	assert.False(t, off.Enabled(KindWorkspaceSwitch))
}

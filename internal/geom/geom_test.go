// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 50}
	assert.Equal(t, Rect{X: 10, Y: 10, W: 80, H: 30}, r.Inset(10))
	assert.Equal(t, Rect{X: -5, Y: -5, W: 110, H: 60}, r.Inset(-5))
}

func TestRectLerp(t *testing.T) {
	from := Rect{X: 0, Y: 0, W: 100, H: 100}
	to := Rect{X: 100, Y: 50, W: 200, H: 0}

	assert.Equal(t, from, from.Lerp(to, 0))
	assert.Equal(t, to, from.Lerp(to, 1))
	assert.Equal(t, Rect{X: 50, Y: 25, W: 150, H: 50}, from.Lerp(to, 0.5))
	// Overshoot is allowed for spring curves.
	assert.Equal(t, Rect{X: 110, Y: 55, W: 210, H: -10}, from.Lerp(to, 1.1))
}

func TestRectScaleAroundCenter(t *testing.T) {
	r := Rect{X: 100, Y: 100, W: 200, H: 100}
	half := r.ScaleAroundCenter(0.5)
	assert.Equal(t, Rect{X: 150, Y: 125, W: 100, H: 50}, half)
	assert.Equal(t, r.Center(), half.Center())
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, a.Intersects(Rect{X: 9, Y: 9, W: 5, H: 5}))
	assert.False(t, a.Intersects(Rect{X: 10, Y: 0, W: 5, H: 5}), "touching edges do not overlap")
	assert.False(t, a.Intersects(Rect{X: 2, Y: 2, W: 0, H: 5}))
}

func TestRectAtLeast(t *testing.T) {
	assert.Equal(t, Rect{X: 3, Y: 4, W: 1, H: 1}, Rect{X: 3, Y: 4, W: -20, H: 0}.AtLeast(1, 1))
}

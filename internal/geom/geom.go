// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/geom/geom.go
// Summary: Integer points, sizes and rectangles in output-local logical coordinates.
// Usage: Shared by layout algorithms, tiles and the render list.

package geom

import "math"

// Point is a location in output-local coordinates.
type Point struct {
	X, Y int
}

// Add returns p translated by o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Lerp interpolates between p and to. x may leave [0,1] for overshooting curves.
func (p Point) Lerp(to Point, x float64) Point {
	return Point{X: lerpInt(p.X, to.X, x), Y: lerpInt(p.Y, to.Y, x)}
}

// Delta returns to minus p as {dx, dy}.
func (p Point) Delta(to Point) []float64 {
	return []float64{float64(to.X - p.X), float64(to.Y - p.Y)}
}

// Size is a width/height pair.
type Size struct {
	W, H int
}

// Lerp interpolates between s and to.
func (s Size) Lerp(to Size, x float64) Size {
	return Size{W: lerpInt(s.W, to.W, x), H: lerpInt(s.H, to.H, x)}
}

// Delta returns to minus s as {dw, dh}.
func (s Size) Delta(to Size) []float64 {
	return []float64{float64(to.W - s.W), float64(to.H - s.H)}
}

// Rect is an axis-aligned rectangle. W and H may be zero or negative for
// degenerate areas; callers that need a drawable rectangle use AtLeast.
type Rect struct {
	X, Y, W, H int
}

// FromSize returns a rectangle anchored at the origin.
func FromSize(s Size) Rect {
	return Rect{W: s.W, H: s.H}
}

// Loc returns the top-left corner.
func (r Rect) Loc() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's size.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Area returns W*H, or zero for degenerate rectangles.
func (r Rect) Area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Center returns the rectangle's centre point (rounded towards the origin).
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Inset shrinks the rectangle by n on every side. Negative n grows it.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// Translate moves the rectangle by the given offset.
func (r Rect) Translate(off Point) Rect {
	return Rect{X: r.X + off.X, Y: r.Y + off.Y, W: r.W, H: r.H}
}

// AtLeast clamps width and height to the given minimum.
func (r Rect) AtLeast(minW, minH int) Rect {
	if r.W < minW {
		r.W = minW
	}
	if r.H < minH {
		r.H = minH
	}
	return r
}

// ScaleAroundCenter scales the rectangle by factor while keeping its centre fixed.
func (r Rect) ScaleAroundCenter(factor float64) Rect {
	cx := float64(r.X) + float64(r.W)/2
	cy := float64(r.Y) + float64(r.H)/2
	w := float64(r.W) * factor
	h := float64(r.H) * factor
	return Rect{
		X: int(math.Round(cx - w/2)),
		Y: int(math.Round(cy - h/2)),
		W: int(math.Round(w)),
		H: int(math.Round(h)),
	}
}

// Transpose swaps the horizontal and vertical axes.
func (r Rect) Transpose() Rect {
	return Rect{X: r.Y, Y: r.X, W: r.H, H: r.W}
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Lerp interpolates every component between r and to.
func (r Rect) Lerp(to Rect, x float64) Rect {
	return Rect{
		X: lerpInt(r.X, to.X, x),
		Y: lerpInt(r.Y, to.Y, x),
		W: lerpInt(r.W, to.W, x),
		H: lerpInt(r.H, to.H, x),
	}
}

// Delta returns to minus r component-wise as {dx, dy, dw, dh}.
func (r Rect) Delta(to Rect) []float64 {
	return []float64{
		float64(to.X - r.X),
		float64(to.Y - r.Y),
		float64(to.W - r.W),
		float64(to.H - r.H),
	}
}

func lerpInt(a, b int, x float64) int {
	return int(math.Round(float64(a) + float64(b-a)*x))
}

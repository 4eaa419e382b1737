// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/tile.go
// Summary: Tiles and the arena that owns them.
// Usage: Workspaces hold ordered TileIDs; the arena resolves them to tiles.
// Notes: A tile never owns its window, it only carries the WindowID handle.

package texel

import (
	"time"

	"github.com/framegrace/texeltile/internal/animation"
	"github.com/framegrace/texeltile/internal/geom"
)

// Visual ranges of the open and close animations.
const (
	openScaleFrom  = 0.5
	closeScaleTo   = 0.8
	defaultOpacity = 1.0
)

// Tile is the movable unit of a workspace.
type Tile struct {
	id         TileID
	window     WindowID
	proportion float64
	floating   bool
	floatRect  geom.Rect
	fullscreen bool
	maximized  bool

	placed  bool
	target  geom.Rect
	current geom.Rect
	geo     *animation.Animation[geom.Rect]

	// open/close visuals
	scale   *animation.Animation[animation.Scalar]
	alpha   *animation.Animation[animation.Scalar]
	closing bool
}

func newTile(id TileID, window WindowID) *Tile {
	return &Tile{id: id, window: window, proportion: 1}
}

func (t *Tile) ID() TileID               { return t.id }
func (t *Tile) Window() WindowID         { return t.window }
func (t *Tile) Proportion() float64      { return t.proportion }
func (t *Tile) Floating() bool           { return t.floating }
func (t *Tile) Fullscreen() bool         { return t.fullscreen }
func (t *Tile) Maximized() bool          { return t.maximized }
func (t *Tile) Closing() bool            { return t.closing }
func (t *Tile) Target() geom.Rect        { return t.target }
func (t *Tile) FloatGeometry() geom.Rect { return t.floatRect }

// Geometry returns the current interpolated geometry, before open/close scaling.
func (t *Tile) Geometry() geom.Rect { return t.current }

// Scale returns the open/close scale factor.
func (t *Tile) Scale() float64 {
	if t.scale == nil {
		return 1
	}
	return float64(t.scale.Value())
}

// Opacity returns the open/close alpha.
func (t *Tile) Opacity() float64 {
	if t.alpha == nil {
		return defaultOpacity
	}
	return float64(t.alpha.Value())
}

// VisualGeometry is the geometry the renderer should draw, scaled around its centre.
func (t *Tile) VisualGeometry() geom.Rect {
	s := t.Scale()
	if s == 1 {
		return t.current
	}
	return t.current.ScaleAroundCenter(s)
}

// Animating reports whether any of the tile's animations is still running.
func (t *Tile) Animating() bool {
	return running(t.geo) || running(t.scale) || running(t.alpha)
}

func running[T animation.Value[T]](a *animation.Animation[T]) bool {
	return a != nil && !a.Finished()
}

// setTarget moves the tile towards r. The first placement snaps. A running
// animation is retargeted from its current value.
func (t *Tile) setTarget(r geom.Rect, curve animation.Curve, animate bool) {
	if !t.placed {
		t.placed = true
		t.target, t.current = r, r
		return
	}
	if r == t.target {
		return
	}
	t.target = r
	if !animate {
		t.geo = nil
		t.current = r
		return
	}
	if running(t.geo) {
		t.geo = t.geo.Retarget(r, curve)
		return
	}
	t.geo = animation.New(t.current, r, curve)
}

func (t *Tile) startOpen(curve animation.Curve) {
	t.scale = animation.New(animation.Scalar(openScaleFrom), 1, curve)
	t.alpha = animation.New(animation.Scalar(0), 1, curve)
}

func (t *Tile) startClose(curve animation.Curve) {
	t.closing = true
	t.scale = animation.New(animation.Scalar(t.Scale()), closeScaleTo, curve)
	t.alpha = animation.New(animation.Scalar(t.Opacity()), 0, curve)
}

// advance steps every animation. Disabled kinds jump to their end. The first
// non-finite error is returned after all animations have been stepped.
func (t *Tile) advance(dt time.Duration, toggles animation.Toggles) error {
	var first error
	keep := func(err error) {
		if first == nil {
			first = err
		}
	}

	if t.geo != nil {
		if !toggles.Enabled(animation.KindWindowGeometry) {
			t.geo.Finish()
		} else if err := t.geo.Advance(dt); err != nil {
			keep(err)
		}
		t.current = t.geo.Value()
		if t.geo.Finished() {
			t.geo = nil
		}
	}

	openClose := toggles.Enabled(animation.KindWindowOpenClose)
	for _, a := range []*animation.Animation[animation.Scalar]{t.scale, t.alpha} {
		if a == nil {
			continue
		}
		if !openClose {
			a.Finish()
		} else if err := a.Advance(dt); err != nil {
			keep(err)
		}
	}
	// Finished open animations are dropped; closing ones stay so the tile
	// keeps rendering at its end state until the workspace frees it.
	if !t.closing {
		if t.scale != nil && t.scale.Finished() {
			t.scale = nil
		}
		if t.alpha != nil && t.alpha.Finished() {
			t.alpha = nil
		}
	}
	return first
}

// closed reports whether a closing tile finished fading out.
func (t *Tile) closed() bool {
	return t.closing && !running(t.scale) && !running(t.alpha)
}

// arena owns every tile of a shell, keyed by stable handle.
type arena struct {
	next  TileID
	tiles map[TileID]*Tile
}

func newArena() *arena {
	return &arena{tiles: make(map[TileID]*Tile)}
}

func (a *arena) add(window WindowID) *Tile {
	a.next++
	t := newTile(a.next, window)
	a.tiles[t.id] = t
	return t
}

func (a *arena) get(id TileID) *Tile {
	return a.tiles[id]
}

func (a *arena) remove(id TileID) {
	delete(a.tiles, id)
}

func (a *arena) len() int {
	return len(a.tiles)
}

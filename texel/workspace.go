// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/workspace.go
// Summary: Implements a workspace: ordered tiles, layout parameters and per-tile animations.
// Usage: Owned by an OutputSpace; mutated by the Shell and advanced once per frame.
// Notes: Master-ness is purely positional; the first NMaster tiles form the master stack.

package texel

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/framegrace/texeltile/internal/animation"
	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/geom"
	"github.com/framegrace/texeltile/internal/layout"
)

// touched records which parameters were changed at runtime. Touched
// parameters survive configuration reloads.
type touched uint8

const (
	touchedNMaster touched = 1 << iota
	touchedMWFact
	touchedLayout
)

// Workspace is one of the fixed set of workspaces of an output.
type Workspace struct {
	id       uuid.UUID
	index    int
	arena    *arena
	settings *Settings
	logger   zerolog.Logger

	tiles   []TileID
	closing []TileID
	focused int

	area      geom.Rect
	layouts   []layout.Kind
	layoutIdx int
	nmaster   int
	mwfact    float64
	touched   touched
}

func newWorkspace(index int, a *arena, s *Settings, logger zerolog.Logger) *Workspace {
	w := &Workspace{
		id:       uuid.New(),
		index:    index,
		arena:    a,
		settings: s,
		focused:  -1,
		layouts:  append([]layout.Kind(nil), s.layouts()...),
		nmaster:  s.NMaster,
		mwfact:   layout.ClampMWFact(s.MWFact),
	}
	w.logger = logger.With().Int("workspace", index).Logger()
	return w
}

func (w *Workspace) ID() uuid.UUID   { return w.id }
func (w *Workspace) Index() int      { return w.index }
func (w *Workspace) Area() geom.Rect { return w.area }
func (w *Workspace) Len() int        { return len(w.tiles) }

// Layout returns the active layout algorithm.
func (w *Workspace) Layout() layout.Kind { return w.layouts[w.layoutIdx] }

// NMaster returns the effective master count, clamped to [1, tile count].
func (w *Workspace) NMaster() int {
	return clampNMaster(w.nmaster, len(w.tiles))
}

// MWFact returns the master width factor.
func (w *Workspace) MWFact() float64 { return w.mwfact }

// Tiles returns the tiles in stack order.
func (w *Workspace) Tiles() []*Tile {
	out := make([]*Tile, 0, len(w.tiles))
	for _, id := range w.tiles {
		if t := w.arena.get(id); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Tile returns the tile with the given id if it belongs to this workspace.
func (w *Workspace) Tile(id TileID) *Tile {
	if w.indexOf(id) < 0 {
		return nil
	}
	return w.arena.get(id)
}

// Focused returns the focused tile, or nil.
func (w *Workspace) Focused() *Tile {
	if w.focused < 0 || w.focused >= len(w.tiles) {
		return nil
	}
	return w.arena.get(w.tiles[w.focused])
}

// FocusedIndex returns the focused position in the stack, or -1.
func (w *Workspace) FocusedIndex() int { return w.focused }

func (w *Workspace) indexOf(id TileID) int {
	for i, t := range w.tiles {
		if t == id {
			return i
		}
	}
	return -1
}

func clampNMaster(n, count int) int {
	return min(max(n, 1), max(count, 1))
}

// Insert creates a tile for window and places it according to the insert strategy.
func (w *Workspace) Insert(window WindowID) *Tile {
	w.clearFullscreen()
	t := w.arena.add(window)
	pos := len(w.tiles)
	switch w.settings.InsertStrategy {
	case InsertReplaceMaster:
		pos = 0
	case InsertAfterFocused:
		if w.focused >= 0 && w.focused < len(w.tiles) {
			pos = w.focused + 1
		}
	}
	w.insertAt(pos, t.id)

	if w.settings.FocusNewWindows || w.focused < 0 {
		w.focused = pos
	}
	w.arrange(true)
	if w.settings.Toggles.Enabled(animation.KindWindowOpenClose) {
		t.startOpen(w.settings.Curve(animation.KindWindowOpenClose))
	}
	w.logger.Debug().Uint64("tile", uint64(t.id)).Str("window", string(window)).Int("index", pos).Msg("tile inserted")
	return t
}

func (w *Workspace) insertAt(pos int, id TileID) {
	w.tiles = append(w.tiles, 0)
	copy(w.tiles[pos+1:], w.tiles[pos:])
	w.tiles[pos] = id
	if w.focused >= pos {
		w.focused++
	}
}

// Remove takes the tile out of the stack and starts its close animation. The
// tile stays in the arena until the animation finishes. It reports whether the
// tile belonged to this workspace.
func (w *Workspace) Remove(id TileID) bool {
	i := w.indexOf(id)
	if i < 0 {
		return false
	}
	w.tiles = append(w.tiles[:i], w.tiles[i+1:]...)
	switch {
	case len(w.tiles) == 0:
		w.focused = -1
	case i < w.focused:
		w.focused--
	case w.focused >= len(w.tiles):
		w.focused = len(w.tiles) - 1
	}

	t := w.arena.get(id)
	if t != nil && w.settings.Toggles.Enabled(animation.KindWindowOpenClose) {
		t.startClose(w.settings.Curve(animation.KindWindowOpenClose))
		w.closing = append(w.closing, id)
	} else {
		w.arena.remove(id)
	}
	w.arrange(true)
	w.logger.Debug().Uint64("tile", uint64(id)).Msg("tile removed")
	return true
}

// detach removes a tile without any close animation and without freeing it.
func (w *Workspace) detach(id TileID) bool {
	i := w.indexOf(id)
	if i < 0 {
		return false
	}
	w.tiles = append(w.tiles[:i], w.tiles[i+1:]...)
	if i < w.focused || w.focused >= len(w.tiles) {
		w.focused--
	}
	if t := w.arena.get(id); t != nil {
		t.fullscreen = false
	}
	w.arrange(true)
	return true
}

// adopt moves every tile of other into w, appended after the existing ones.
// Closing tiles keep fading out here.
func (w *Workspace) adopt(other *Workspace) {
	if len(other.tiles) == 0 && len(other.closing) == 0 {
		return
	}
	if w.Fullscreen() != nil {
		for _, id := range other.tiles {
			if t := w.arena.get(id); t != nil {
				t.fullscreen = false
			}
		}
	}
	w.tiles = append(w.tiles, other.tiles...)
	w.closing = append(w.closing, other.closing...)
	if w.focused < 0 && len(w.tiles) > 0 {
		w.focused = 0
	}
	other.tiles, other.closing, other.focused = nil, nil, -1
	w.arrange(true)
}

// Focus focuses the tile with the given id.
func (w *Workspace) Focus(id TileID) bool {
	i := w.indexOf(id)
	if i < 0 {
		return false
	}
	w.focused = i
	return true
}

// FocusNext moves focus down the stack, wrapping around.
func (w *Workspace) FocusNext() *Tile { return w.focusBy(1) }

// FocusPrevious moves focus up the stack, wrapping around.
func (w *Workspace) FocusPrevious() *Tile { return w.focusBy(-1) }

func (w *Workspace) focusBy(delta int) *Tile {
	if len(w.tiles) == 0 {
		return nil
	}
	w.focused = wrapIndex(w.focused+delta, len(w.tiles))
	return w.Focused()
}

// SwapWithNext swaps the focused tile with the one after it, wrapping around.
func (w *Workspace) SwapWithNext() bool { return w.swapBy(1) }

// SwapWithPrevious swaps the focused tile with the one before it, wrapping around.
func (w *Workspace) SwapWithPrevious() bool { return w.swapBy(-1) }

func (w *Workspace) swapBy(delta int) bool {
	if len(w.tiles) < 2 || w.focused < 0 {
		return false
	}
	j := wrapIndex(w.focused+delta, len(w.tiles))
	w.tiles[w.focused], w.tiles[j] = w.tiles[j], w.tiles[w.focused]
	w.focused = j
	w.arrange(true)
	return true
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

// SetNMaster stores n clamped to [1, tile count] and re-arranges.
func (w *Workspace) SetNMaster(n int) {
	w.nmaster = clampNMaster(n, len(w.tiles))
	w.touched |= touchedNMaster
	w.arrange(true)
}

// ChangeNMaster adjusts nmaster by delta.
func (w *Workspace) ChangeNMaster(delta int) {
	w.SetNMaster(w.NMaster() + delta)
}

// SetMWFact stores f clamped to [0.01, 0.99] and re-arranges.
func (w *Workspace) SetMWFact(f float64) {
	w.mwfact = layout.ClampMWFact(f)
	w.touched |= touchedMWFact
	w.arrange(true)
}

// ChangeMWFact adjusts mwfact by delta.
func (w *Workspace) ChangeMWFact(delta float64) {
	w.SetMWFact(w.mwfact + delta)
}

// SetProportion sets a tile's weight inside its stack, at least MinProportion.
func (w *Workspace) SetProportion(id TileID, p float64) error {
	t := w.Tile(id)
	if t == nil {
		return errors.Wrapf(errors.ErrTileNotFound, "tile %d", id)
	}
	if !(p >= MinProportion) {
		p = MinProportion
	}
	t.proportion = p
	w.arrange(true)
	return nil
}

// ChangeProportion adjusts a tile's weight by delta.
func (w *Workspace) ChangeProportion(id TileID, delta float64) error {
	t := w.Tile(id)
	if t == nil {
		return errors.Wrapf(errors.ErrTileNotFound, "tile %d", id)
	}
	return w.SetProportion(id, t.proportion+delta)
}

// SetLayout activates kind, adding it to the cycle if it is not part of it.
func (w *Workspace) SetLayout(kind layout.Kind) {
	i := w.layoutIndex(kind)
	if i < 0 {
		w.layouts = append(w.layouts, kind)
		i = len(w.layouts) - 1
	}
	w.layoutIdx = i
	w.touched |= touchedLayout
	w.arrange(true)
}

// SelectNextLayout cycles forward through the configured layouts.
func (w *Workspace) SelectNextLayout() layout.Kind { return w.cycleLayout(1) }

// SelectPreviousLayout cycles backward through the configured layouts.
func (w *Workspace) SelectPreviousLayout() layout.Kind { return w.cycleLayout(-1) }

func (w *Workspace) cycleLayout(delta int) layout.Kind {
	w.layoutIdx = wrapIndex(w.layoutIdx+delta, len(w.layouts))
	w.touched |= touchedLayout
	w.arrange(true)
	return w.Layout()
}

func (w *Workspace) layoutIndex(kind layout.Kind) int {
	for i, k := range w.layouts {
		if k == kind {
			return i
		}
	}
	return -1
}

// SetFloating moves a tile in or out of the tiled arrangement. A tile that
// starts floating keeps its current geometry unless it already has one.
func (w *Workspace) SetFloating(id TileID, floating bool) error {
	t := w.Tile(id)
	if t == nil {
		return errors.Wrapf(errors.ErrTileNotFound, "tile %d", id)
	}
	if t.floating == floating {
		return nil
	}
	t.floating = floating
	if floating && t.floatRect.Empty() {
		t.floatRect = t.target
	}
	w.arrange(true)
	return nil
}

// SetFloatingGeometry sets the explicit geometry used while the tile floats.
func (w *Workspace) SetFloatingGeometry(id TileID, r geom.Rect) error {
	t := w.Tile(id)
	if t == nil {
		return errors.Wrapf(errors.ErrTileNotFound, "tile %d", id)
	}
	t.floatRect = r
	if t.floating || w.Layout() == layout.Floating {
		w.arrange(true)
	}
	return nil
}

// Fullscreen returns the fullscreen tile, or nil. A workspace has at most one.
func (w *Workspace) Fullscreen() *Tile {
	for _, t := range w.Tiles() {
		if t.fullscreen {
			return t
		}
	}
	return nil
}

// SetFullscreen gives a tile the whole output, above every other tile. Any
// other fullscreen tile of the workspace leaves fullscreen, and the tile takes
// focus.
func (w *Workspace) SetFullscreen(id TileID, fullscreen bool) error {
	t := w.Tile(id)
	if t == nil {
		return errors.Wrapf(errors.ErrTileNotFound, "tile %d", id)
	}
	if t.fullscreen == fullscreen {
		return nil
	}
	if fullscreen {
		w.clearFullscreen()
		w.focused = w.indexOf(id)
	}
	t.fullscreen = fullscreen
	w.arrange(true)
	w.logger.Debug().Uint64("tile", uint64(id)).Bool("fullscreen", fullscreen).Msg("fullscreen changed")
	return nil
}

func (w *Workspace) clearFullscreen() {
	for _, t := range w.Tiles() {
		t.fullscreen = false
	}
}

// SetMaximized gives a tile the whole work area, the output minus the outer
// gaps. Floating tiles can be maximized too.
func (w *Workspace) SetMaximized(id TileID, maximized bool) error {
	t := w.Tile(id)
	if t == nil {
		return errors.Wrapf(errors.ErrTileNotFound, "tile %d", id)
	}
	if t.maximized == maximized {
		return nil
	}
	t.maximized = maximized
	w.arrange(true)
	return nil
}

// WorkArea is the area minus the outer gaps, never smaller than 1x1.
func (w *Workspace) WorkArea() geom.Rect {
	return w.area.Inset(w.settings.OuterGap).AtLeast(1, 1)
}

// SetArea updates the usable area and re-arranges.
func (w *Workspace) SetArea(r geom.Rect) {
	if r == w.area {
		return
	}
	w.area = r
	w.arrange(true)
}

// Arrange recomputes targets without animating.
func (w *Workspace) Arrange() {
	w.arrange(false)
}

func (w *Workspace) arrange(animate bool) {
	if len(w.tiles) == 0 {
		return
	}
	tiles := w.Tiles()
	kind := w.Layout()
	targets := make([]geom.Rect, len(tiles))
	items := make([]layout.Item, 0, len(tiles))
	arranged := make([]int, 0, len(tiles))
	for i, t := range tiles {
		switch {
		case t.fullscreen:
			targets[i] = w.area.AtLeast(1, 1)
		case t.maximized:
			targets[i] = w.WorkArea()
		default:
			floating := t.floating || kind == layout.Floating
			var geo geom.Rect
			if floating {
				geo = w.floatGeometry(t)
			}
			items = append(items, layout.Item{Proportion: t.proportion, Floating: t.floating, Geometry: geo})
			arranged = append(arranged, i)
		}
	}
	params := layout.Params{
		NMaster:  w.NMaster(),
		MWFact:   w.mwfact,
		InnerGap: w.settings.InnerGap,
		OuterGap: w.settings.OuterGap,
	}
	for j, r := range layout.Arrange(kind, items, w.area, params) {
		targets[arranged[j]] = r
	}

	animate = animate && w.settings.Toggles.Enabled(animation.KindWindowGeometry)
	curve := w.settings.Curve(animation.KindWindowGeometry)
	for i, t := range tiles {
		t.setTarget(targets[i], curve, animate)
	}
}

// floatGeometry is the geometry a tile keeps while it is not tiled: its
// explicit floating geometry, else where it currently sits. A tile that was
// never placed gets a centred rectangle of half the area, remembered as its
// floating geometry.
func (w *Workspace) floatGeometry(t *Tile) geom.Rect {
	if !t.floatRect.Empty() {
		return t.floatRect
	}
	if !t.target.Empty() {
		return t.target
	}
	if w.area.Empty() {
		return geom.Rect{}
	}
	size := geom.Size{W: max(w.area.W/2, 1), H: max(w.area.H/2, 1)}
	c := w.area.Center()
	t.floatRect = geom.Rect{X: c.X - size.W/2, Y: c.Y - size.H/2, W: size.W, H: size.H}
	return t.floatRect
}

// Reload merges the shell's current settings into every parameter the user
// has not changed at runtime. Shell.Reload calls it after swapping settings.
func (w *Workspace) Reload() {
	if w.touched&touchedNMaster == 0 {
		w.nmaster = w.settings.NMaster
	}
	if w.touched&touchedMWFact == 0 {
		w.mwfact = layout.ClampMWFact(w.settings.MWFact)
	}
	current := w.Layout()
	w.layouts = append([]layout.Kind(nil), w.settings.layouts()...)
	w.layoutIdx = 0
	if w.touched&touchedLayout != 0 {
		if i := w.layoutIndex(current); i >= 0 {
			w.layoutIdx = i
		} else {
			w.layouts = append(w.layouts, current)
			w.layoutIdx = len(w.layouts) - 1
		}
	}
	w.arrange(true)
}

// Advance steps every tile animation and frees tiles whose close animation
// finished. Non-finite animation state is logged and the tile snaps to its end.
// It reports whether any animation is still running.
func (w *Workspace) Advance(dt time.Duration, toggles animation.Toggles) bool {
	animating := false
	step := func(id TileID) {
		t := w.arena.get(id)
		if t == nil {
			return
		}
		if err := t.advance(dt, toggles); err != nil {
			w.logger.Warn().Err(err).Uint64("tile", uint64(id)).Msg("animation snapped to end")
		}
		animating = animating || t.Animating()
	}
	for _, id := range w.tiles {
		step(id)
	}

	kept := w.closing[:0]
	for _, id := range w.closing {
		step(id)
		if t := w.arena.get(id); t != nil && !t.closed() {
			kept = append(kept, id)
			continue
		}
		w.arena.remove(id)
	}
	w.closing = kept
	return animating
}

// Animating reports whether any tile of the workspace is animating or closing.
func (w *Workspace) Animating() bool {
	if len(w.closing) > 0 {
		return true
	}
	for _, t := range w.Tiles() {
		if t.Animating() {
			return true
		}
	}
	return false
}

// RenderEntries returns the tiles to draw, translated by offset. Tiled windows
// come first in stack order, then floating ones, then closing ones, and the
// fullscreen tile last.
func (w *Workspace) RenderEntries(offset geom.Point) []RenderEntry {
	s := w.settings
	entries := make([]RenderEntry, 0, len(w.tiles)+len(w.closing))
	add := func(t *Tile, focused bool) {
		base := s.InactiveOpacity
		if focused {
			base = s.ActiveOpacity
		}
		radius := s.CornerRadius
		if t.fullscreen {
			radius = 0
		}
		entries = append(entries, RenderEntry{
			Tile:         t.id,
			Window:       t.window,
			Workspace:    w.index,
			Geometry:     t.VisualGeometry().Translate(offset),
			Opacity:      clampUnit(t.Opacity() * base),
			CornerRadius: radius,
			Focused:      focused,
			Floating:     t.floating,
			Closing:      t.closing,
			Fullscreen:   t.fullscreen,
		})
	}
	focused := w.Focused()
	for _, floating := range []bool{false, true} {
		for _, t := range w.Tiles() {
			if t.floating == floating && !t.fullscreen {
				add(t, t == focused)
			}
		}
	}
	for _, id := range w.closing {
		if t := w.arena.get(id); t != nil {
			add(t, false)
		}
	}
	if t := w.Fullscreen(); t != nil {
		add(t, t == focused)
	}
	return entries
}

func clampUnit(f float64) float64 {
	if !(f > 0) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

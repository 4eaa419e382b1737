// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/preview/renderer.go
// Summary: Draws an output's render list into a tcell screen.
// Usage: The run command renders one output per frame; tests use tcell.SimulationScreen.
// Notes: Output geometry is in pixels; each terminal cell covers CellSize pixels.

// Package preview renders texeltile outputs in a terminal and maps keys to
// shell actions.
package preview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texeltile/internal/geom"
	"github.com/framegrace/texeltile/texel"
)

// DefaultCellSize approximates the pixel size of a terminal cell.
var DefaultCellSize = geom.Size{W: 8, H: 16}

// dimOpacity is the opacity below which a tile is drawn dimmed.
const dimOpacity = 0.5

// Renderer draws render entries onto a tcell screen.
type Renderer struct {
	screen   tcell.Screen
	cellSize geom.Size

	base    tcell.Style
	border  tcell.Style
	focused tcell.Style
	dim     tcell.Style
	status  tcell.Style
}

// NewRenderer wraps screen. cellSize falls back to DefaultCellSize when empty.
func NewRenderer(screen tcell.Screen, cellSize geom.Size) *Renderer {
	if cellSize.W <= 0 || cellSize.H <= 0 {
		cellSize = DefaultCellSize
	}
	base := tcell.StyleDefault
	return &Renderer{
		screen:   screen,
		cellSize: cellSize,
		base:     base,
		border:   base.Foreground(tcell.ColorSilver),
		focused:  base.Foreground(tcell.ColorAqua).Bold(true),
		dim:      base.Foreground(tcell.ColorGray).Dim(true),
		status:   base.Reverse(true),
	}
}

// OutputSize returns the pixel size of an output filling the screen above
// the status line.
func (r *Renderer) OutputSize() geom.Size {
	w, h := r.screen.Size()
	return geom.Size{W: w * r.cellSize.W, H: max(h-1, 1) * r.cellSize.H}
}

// toCells maps a pixel rectangle onto the cell grid.
func (r *Renderer) toCells(px geom.Rect) geom.Rect {
	x0 := floorDiv(px.X, r.cellSize.W)
	y0 := floorDiv(px.Y, r.cellSize.H)
	x1 := floorDiv(px.X+px.W, r.cellSize.W)
	y1 := floorDiv(px.Y+px.H, r.cellSize.H)
	return geom.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Render draws the output's current render list and a status line.
func (r *Renderer) Render(o *texel.OutputSpace) error {
	r.Draw(o.RenderList(), Status(o))
	return nil
}

// Draw clears the screen, draws entries back to front and shows the result.
func (r *Renderer) Draw(entries []texel.RenderEntry, status string) {
	r.screen.SetStyle(r.base)
	r.screen.Clear()
	w, h := r.screen.Size()
	clip := geom.Rect{W: w, H: max(h-1, 0)}

	for _, e := range entries {
		r.drawEntry(e, clip)
	}
	r.drawText(0, h-1, w, runewidth.FillRight(status, w), r.status)
	r.screen.Show()
}

func (r *Renderer) drawEntry(e texel.RenderEntry, clip geom.Rect) {
	box := r.toCells(e.Geometry)
	if box.W < 1 || box.H < 1 || !box.Intersects(clip) {
		return
	}
	style := r.border
	switch {
	case e.Opacity < dimOpacity || e.Closing:
		style = r.dim
	case e.Focused:
		style = r.focused
	}

	x1, y1 := box.X+box.W-1, box.Y+box.H-1
	for y := box.Y; y <= y1; y++ {
		for x := box.X; x <= x1; x++ {
			ch := ' '
			switch {
			case box.W > 1 && box.H > 1 && (x == box.X || x == x1) && (y == box.Y || y == y1):
				ch = corner(x == box.X, y == box.Y)
			case box.H > 1 && (y == box.Y || y == y1):
				ch = tcell.RuneHLine
			case box.W > 1 && (x == box.X || x == x1):
				ch = tcell.RuneVLine
			}
			r.put(x, y, ch, style, clip)
		}
	}

	label := string(e.Window)
	if e.Floating {
		label += " ^"
	}
	if box.W > 2 && box.H > 2 {
		avail := box.W - 2
		r.drawClipped(box.X+1, box.Y+1, runewidth.Truncate(label, avail, "…"), style, clip)
	}
}

func corner(left, top bool) rune {
	switch {
	case left && top:
		return tcell.RuneULCorner
	case top:
		return tcell.RuneURCorner
	case left:
		return tcell.RuneLLCorner
	default:
		return tcell.RuneLRCorner
	}
}

func (r *Renderer) put(x, y int, ch rune, style tcell.Style, clip geom.Rect) {
	if !clip.Contains(geom.Rect{X: x, Y: y, W: 1, H: 1}) {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) drawClipped(x, y int, s string, style tcell.Style, clip geom.Rect) {
	for _, ch := range s {
		r.put(x, y, ch, style, clip)
		x += max(runewidth.RuneWidth(ch), 1)
	}
}

func (r *Renderer) drawText(x, y, width int, s string, style tcell.Style) {
	end := x + width
	for _, ch := range s {
		if x >= end {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += max(runewidth.RuneWidth(ch), 1)
	}
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/output.go
// Summary: Output spaces: the workspaces bound to one display and their frame clock.
// Usage: The Shell attaches one OutputSpace per display and ticks it every frame.
// Notes: Frame deltas are clamped and a resumed output restarts with a zero delta.

package texel

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/framegrace/texeltile/internal/animation"
	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/geom"
)

// RenderEntry is one window as handed to the render pipeline.
type RenderEntry struct {
	Tile         TileID
	Window       WindowID
	Workspace    int
	Geometry     geom.Rect
	Opacity      float64
	CornerRadius int
	Focused      bool
	Floating     bool
	Closing      bool
	Fullscreen   bool
}

// OutputSpace is the set of workspaces shown on one display.
type OutputSpace struct {
	id       uuid.UUID
	name     string
	size     geom.Size
	settings *Settings
	logger   zerolog.Logger

	workspaces []*Workspace
	active     int
	switcher   *WorkspaceSwitcher

	lastFrame time.Time
	suspended bool
}

func newOutputSpace(name string, size geom.Size, workspaces []*Workspace, s *Settings, logger zerolog.Logger) *OutputSpace {
	o := &OutputSpace{
		id:         uuid.New(),
		name:       name,
		size:       size,
		settings:   s,
		logger:     logger.With().Str("output", name).Logger(),
		workspaces: workspaces,
	}
	for _, ws := range workspaces {
		ws.logger = o.logger.With().Int("workspace", ws.index).Logger()
		ws.area = geom.FromSize(size)
		ws.Arrange()
	}
	return o
}

func (o *OutputSpace) ID() uuid.UUID   { return o.id }
func (o *OutputSpace) Name() string    { return o.name }
func (o *OutputSpace) Size() geom.Size { return o.size }
func (o *OutputSpace) Suspended() bool { return o.suspended }

// Workspaces returns the output's workspaces in index order.
func (o *OutputSpace) Workspaces() []*Workspace { return o.workspaces }

// Workspace returns workspace idx, or nil when out of range.
func (o *OutputSpace) Workspace(idx int) *Workspace {
	if idx < 0 || idx >= len(o.workspaces) {
		return nil
	}
	return o.workspaces[idx]
}

// Active returns the index of the displayed workspace.
func (o *OutputSpace) Active() int { return o.active }

// ActiveWorkspace returns the displayed workspace.
func (o *OutputSpace) ActiveWorkspace() *Workspace { return o.workspaces[o.active] }

// Switcher returns the in-flight workspace switch, or nil when idle.
func (o *OutputSpace) Switcher() *WorkspaceSwitcher { return o.switcher }

// SetActive displays workspace idx, sliding from the current one when the
// workspace-switch animation is enabled.
func (o *OutputSpace) SetActive(idx int) error {
	if idx < 0 || idx >= len(o.workspaces) {
		return errors.Wrapf(errors.ErrWorkspaceIndex, "workspace %d of %d", idx, len(o.workspaces))
	}
	if idx == o.active && o.switcher == nil {
		return nil
	}

	prev := o.active
	o.active = idx
	if !o.settings.Toggles.Enabled(animation.KindWorkspaceSwitch) {
		o.switcher = nil
		return nil
	}
	curve := o.settings.Curve(animation.KindWorkspaceSwitch)
	if o.switcher != nil {
		o.switcher = o.switcher.retarget(idx, curve)
	} else {
		o.switcher = newSwitcher(prev, idx, 0, curve)
	}
	if o.switcher.Finished() {
		o.switcher = nil
	}
	o.logger.Debug().Int("from", prev).Int("to", idx).Msg("workspace switch")
	return nil
}

// Resize changes the output size and re-arranges every workspace.
func (o *OutputSpace) Resize(size geom.Size) {
	o.size = size
	for _, ws := range o.workspaces {
		ws.SetArea(geom.FromSize(size))
	}
}

// Suspend stops advancing animations until Resume.
func (o *OutputSpace) Suspend() {
	o.suspended = true
}

// Resume restarts frame processing. The suspended interval is not counted.
func (o *OutputSpace) Resume() {
	o.suspended = false
	o.lastFrame = time.Time{}
}

// Frame advances animations by the time elapsed since the previous frame.
// The first frame, and the first after Resume, advances by zero.
func (o *OutputSpace) Frame(now time.Time) bool {
	if o.suspended {
		return false
	}
	var dt time.Duration
	if !o.lastFrame.IsZero() {
		dt = now.Sub(o.lastFrame)
	}
	o.lastFrame = now
	return o.Advance(dt)
}

// Advance steps the switcher and every workspace by dt, clamped to the
// configured maximum frame delta. It reports whether anything still animates.
func (o *OutputSpace) Advance(dt time.Duration) bool {
	if o.suspended {
		return false
	}
	if limit := o.settings.MaxFrameDelta; limit > 0 && dt > limit {
		dt = limit
	}
	if dt < 0 {
		dt = 0
	}
	toggles := o.settings.Toggles

	animating := false
	if o.switcher != nil {
		if !toggles.Enabled(animation.KindWorkspaceSwitch) {
			o.switcher = nil
		} else {
			if err := o.switcher.advance(dt); err != nil {
				o.logger.Warn().Err(err).Msg("workspace switch snapped to end")
			}
			if o.switcher.Finished() {
				o.switcher = nil
			} else {
				animating = true
			}
		}
	}
	for _, ws := range o.workspaces {
		if ws.Advance(dt, toggles) {
			animating = true
		}
		if len(ws.closing) > 0 {
			animating = true
		}
	}
	return animating
}

// RenderList flattens the visible workspaces into render entries. During a
// switch both the outgoing and the incoming workspace are listed, offset along
// the switch direction.
func (o *OutputSpace) RenderList() []RenderEntry {
	if o.switcher == nil {
		return o.ActiveWorkspace().RenderEntries(geom.Point{})
	}
	fromOff, toOff := o.switcher.Offsets(o.size, o.settings.SwitchDirection)
	entries := o.workspaces[o.switcher.from].RenderEntries(fromOff)
	return append(entries, o.workspaces[o.switcher.to].RenderEntries(toOff)...)
}

// takeWorkspaces hands the workspaces over, leaving the output empty.
func (o *OutputSpace) takeWorkspaces() []*Workspace {
	ws := o.workspaces
	o.workspaces = nil
	o.switcher = nil
	return ws
}

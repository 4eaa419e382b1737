// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/shell.go
// Summary: The shell routes window, output and frame events to output spaces and workspaces.
// Usage: A single goroutine owns the Shell; it is not safe for concurrent use.
// Notes: All tiles live in one arena so workspaces can move between outputs.

// Package texel implements the tiling layout core: tiles, workspaces,
// workspace switching and per-output render lists.
package texel

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/geom"
	"github.com/framegrace/texeltile/internal/layout"
)

// Shell owns every output, workspace and tile.
type Shell struct {
	settings *Settings
	arena    *arena
	logger   zerolog.Logger

	outputs []*OutputSpace
	focused int
	parked  []*Workspace
	windows map[WindowID]TileID
}

// NewShell creates a shell with no outputs.
func NewShell(s Settings, logger zerolog.Logger) *Shell {
	settings := s
	return &Shell{
		settings: &settings,
		arena:    newArena(),
		logger:   logger.With().Str("component", "shell").Logger(),
		focused:  -1,
		windows:  make(map[WindowID]TileID),
	}
}

// Settings returns a copy of the active settings.
func (s *Shell) Settings() Settings { return *s.settings }

// TileCount returns the number of live tiles, closing ones included.
func (s *Shell) TileCount() int { return s.arena.len() }

// Outputs returns the attached outputs in attach order.
func (s *Shell) Outputs() []*OutputSpace { return s.outputs }

// Output returns the output with the given name, or nil.
func (s *Shell) Output(name string) *OutputSpace {
	if i := s.outputIndex(name); i >= 0 {
		return s.outputs[i]
	}
	return nil
}

// FocusedOutput returns the output receiving new windows, or nil.
func (s *Shell) FocusedOutput() *OutputSpace {
	if s.focused < 0 || s.focused >= len(s.outputs) {
		return nil
	}
	return s.outputs[s.focused]
}

// ActiveWorkspace returns the displayed workspace of the focused output, or nil.
func (s *Shell) ActiveWorkspace() *Workspace {
	if o := s.FocusedOutput(); o != nil {
		return o.ActiveWorkspace()
	}
	return nil
}

func (s *Shell) outputIndex(name string) int {
	for i, o := range s.outputs {
		if o.name == name {
			return i
		}
	}
	return -1
}

// AttachOutput registers a display. Workspaces parked by an earlier detach
// are adopted by the first output attached afterwards.
func (s *Shell) AttachOutput(name string, size geom.Size) (*OutputSpace, error) {
	if s.outputIndex(name) >= 0 {
		return nil, errors.Wrapf(errors.ErrOutputExists, "%q", name)
	}
	workspaces := s.parked
	s.parked = nil
	if len(workspaces) == 0 {
		workspaces = make([]*Workspace, s.settings.workspaceCount())
		for i := range workspaces {
			workspaces[i] = newWorkspace(i, s.arena, s.settings, s.logger)
		}
	}
	o := newOutputSpace(name, size, workspaces, s.settings, s.logger)
	s.outputs = append(s.outputs, o)
	if s.focused < 0 {
		s.focused = len(s.outputs) - 1
	}
	s.logger.Info().Str("output", name).Int("width", size.W).Int("height", size.H).Msg("output attached")
	return o, nil
}

// DetachOutput removes a display. Its workspace i merges into workspace i of
// the first remaining output; without one, the workspaces are parked.
func (s *Shell) DetachOutput(name string) error {
	i := s.outputIndex(name)
	if i < 0 {
		return errors.Wrapf(errors.ErrOutputNotFound, "%q", name)
	}
	o := s.outputs[i]
	s.outputs = append(s.outputs[:i], s.outputs[i+1:]...)
	switch {
	case len(s.outputs) == 0:
		s.focused = -1
	case s.focused > i || s.focused >= len(s.outputs):
		s.focused--
	}

	workspaces := o.takeWorkspaces()
	if len(s.outputs) == 0 {
		s.parked = workspaces
		s.logger.Info().Str("output", name).Msg("output detached, workspaces parked")
		return nil
	}
	fallback := s.outputs[0]
	for idx, ws := range workspaces {
		target := fallback.Workspace(min(idx, len(fallback.workspaces)-1))
		target.adopt(ws)
	}
	s.logger.Info().Str("output", name).Str("fallback", fallback.name).Msg("output detached, tiles merged")
	return nil
}

// ResizeOutput updates an output's size.
func (s *Shell) ResizeOutput(name string, size geom.Size) error {
	o := s.Output(name)
	if o == nil {
		return errors.Wrapf(errors.ErrOutputNotFound, "%q", name)
	}
	o.Resize(size)
	return nil
}

// FocusOutput makes name the output receiving new windows.
func (s *Shell) FocusOutput(name string) error {
	i := s.outputIndex(name)
	if i < 0 {
		return errors.Wrapf(errors.ErrOutputNotFound, "%q", name)
	}
	s.focused = i
	return nil
}

// MapWindow inserts a tile for window into the active workspace of the focused
// output. Mapping a known window returns its existing tile.
func (s *Shell) MapWindow(window WindowID) (*Tile, error) {
	if id, ok := s.windows[window]; ok {
		if t := s.arena.get(id); t != nil {
			return t, nil
		}
	}
	ws := s.ActiveWorkspace()
	if ws == nil {
		return nil, errors.Wrap(errors.ErrOutputNotFound, "no output to map window on")
	}
	t := ws.Insert(window)
	s.windows[window] = t.id
	return t, nil
}

// UnmapWindow removes the window's tile, starting its close animation.
func (s *Shell) UnmapWindow(window WindowID) error {
	_, ws, t, ok := s.Lookup(window)
	if !ok {
		return errors.Wrapf(errors.ErrTileNotFound, "window %q", window)
	}
	delete(s.windows, window)
	ws.Remove(t.id)
	return nil
}

// FocusWindow focuses the window's tile, switching its output to the tile's
// workspace when needed.
func (s *Shell) FocusWindow(window WindowID) error {
	o, ws, t, ok := s.Lookup(window)
	if !ok {
		return errors.Wrapf(errors.ErrTileNotFound, "window %q", window)
	}
	if o == nil {
		return errors.Wrapf(errors.ErrOutputNotFound, "window %q is on a parked workspace", window)
	}
	ws.Focus(t.id)
	s.focused = s.outputIndex(o.name)
	return o.SetActive(ws.index)
}

// Lookup finds the output, workspace and tile holding window. The output is
// nil while the workspace is parked.
func (s *Shell) Lookup(window WindowID) (*OutputSpace, *Workspace, *Tile, bool) {
	id, ok := s.windows[window]
	if !ok {
		return nil, nil, nil, false
	}
	for _, o := range s.outputs {
		for _, ws := range o.workspaces {
			if ws.indexOf(id) >= 0 {
				return o, ws, s.arena.get(id), true
			}
		}
	}
	for _, ws := range s.parked {
		if ws.indexOf(id) >= 0 {
			return nil, ws, s.arena.get(id), true
		}
	}
	return nil, nil, nil, false
}

// SwitchWorkspace displays workspace idx on the focused output.
func (s *Shell) SwitchWorkspace(idx int) error {
	o := s.FocusedOutput()
	if o == nil {
		return errors.Wrap(errors.ErrOutputNotFound, "no focused output")
	}
	return o.SetActive(idx)
}

// MoveFocusedToWorkspace sends the focused tile to workspace idx of the same output.
func (s *Shell) MoveFocusedToWorkspace(idx int) error {
	o := s.FocusedOutput()
	if o == nil {
		return errors.Wrap(errors.ErrOutputNotFound, "no focused output")
	}
	dst := o.Workspace(idx)
	if dst == nil {
		return errors.Wrapf(errors.ErrWorkspaceIndex, "workspace %d of %d", idx, len(o.workspaces))
	}
	src := o.ActiveWorkspace()
	t := src.Focused()
	if t == nil || dst == src {
		return nil
	}
	src.detach(t.id)
	dst.tiles = append(dst.tiles, t.id)
	dst.focused = len(dst.tiles) - 1
	dst.arrange(false)
	return nil
}

// Tick advances every output to now and reports whether any animation is running.
func (s *Shell) Tick(now time.Time) bool {
	animating := false
	for _, o := range s.outputs {
		if o.Frame(now) {
			animating = true
		}
	}
	return animating
}

// RenderList returns the render entries of the named output.
func (s *Shell) RenderList(name string) ([]RenderEntry, error) {
	o := s.Output(name)
	if o == nil {
		return nil, errors.Wrapf(errors.ErrOutputNotFound, "%q", name)
	}
	return o.RenderList(), nil
}

// Reload swaps in new settings. Workspace parameters changed at runtime are
// kept; the rest follow the new baseline. Toggles take effect on the next tick.
func (s *Shell) Reload(next Settings) {
	*s.settings = next
	for _, ws := range s.allWorkspaces() {
		ws.Reload()
	}
	s.logger.Info().Bool("animations", !next.Toggles.Disabled).Msg("settings reloaded")
}

func (s *Shell) allWorkspaces() []*Workspace {
	var out []*Workspace
	for _, o := range s.outputs {
		out = append(out, o.workspaces...)
	}
	return append(out, s.parked...)
}

// The helpers below act on the focused workspace. They are no-ops without an output.

func (s *Shell) ChangeMWFact(delta float64) {
	if ws := s.ActiveWorkspace(); ws != nil {
		ws.ChangeMWFact(delta)
	}
}

func (s *Shell) ChangeNMaster(delta int) {
	if ws := s.ActiveWorkspace(); ws != nil {
		ws.ChangeNMaster(delta)
	}
}

// ChangeProportion adjusts the focused tile's proportion.
func (s *Shell) ChangeProportion(delta float64) error {
	ws := s.ActiveWorkspace()
	if ws == nil || ws.Focused() == nil {
		return nil
	}
	return ws.ChangeProportion(ws.Focused().id, delta)
}

func (s *Shell) SelectNextLayout() {
	if ws := s.ActiveWorkspace(); ws != nil {
		ws.SelectNextLayout()
	}
}

func (s *Shell) SelectPreviousLayout() {
	if ws := s.ActiveWorkspace(); ws != nil {
		ws.SelectPreviousLayout()
	}
}

// SetLayout selects a layout by name on the focused workspace.
func (s *Shell) SetLayout(name string) error {
	kind, err := layout.ParseKind(name)
	if err != nil {
		return err
	}
	if ws := s.ActiveWorkspace(); ws != nil {
		ws.SetLayout(kind)
	}
	return nil
}

func (s *Shell) FocusNext() {
	if ws := s.ActiveWorkspace(); ws != nil {
		ws.FocusNext()
	}
}

func (s *Shell) FocusPrevious() {
	if ws := s.ActiveWorkspace(); ws != nil {
		ws.FocusPrevious()
	}
}

func (s *Shell) SwapWithNext() {
	if ws := s.ActiveWorkspace(); ws != nil {
		ws.SwapWithNext()
	}
}

func (s *Shell) SwapWithPrevious() {
	if ws := s.ActiveWorkspace(); ws != nil {
		ws.SwapWithPrevious()
	}
}

// ToggleFloating flips the floating state of the focused tile.
func (s *Shell) ToggleFloating() error {
	ws := s.ActiveWorkspace()
	if ws == nil || ws.Focused() == nil {
		return nil
	}
	t := ws.Focused()
	return ws.SetFloating(t.id, !t.floating)
}

// SetFullscreen puts the window's tile in or out of fullscreen on its workspace.
func (s *Shell) SetFullscreen(window WindowID, fullscreen bool) error {
	_, ws, t, ok := s.Lookup(window)
	if !ok {
		return errors.Wrapf(errors.ErrTileNotFound, "window %q", window)
	}
	return ws.SetFullscreen(t.id, fullscreen)
}

// SetMaximized maximizes or restores the window's tile.
func (s *Shell) SetMaximized(window WindowID, maximized bool) error {
	_, ws, t, ok := s.Lookup(window)
	if !ok {
		return errors.Wrapf(errors.ErrTileNotFound, "window %q", window)
	}
	return ws.SetMaximized(t.id, maximized)
}

// SetWindowGeometry applies a geometry requested by the client. It becomes the
// tile's floating geometry and takes effect while the tile floats.
func (s *Shell) SetWindowGeometry(window WindowID, r geom.Rect) error {
	_, ws, t, ok := s.Lookup(window)
	if !ok {
		return errors.Wrapf(errors.ErrTileNotFound, "window %q", window)
	}
	if r.Empty() {
		return errors.Wrapf(errors.ErrInvalidArgument, "window %q geometry %dx%d", window, r.W, r.H)
	}
	return ws.SetFloatingGeometry(t.id, r)
}

// ToggleFullscreen flips fullscreen on the focused tile.
func (s *Shell) ToggleFullscreen() error {
	ws := s.ActiveWorkspace()
	if ws == nil || ws.Focused() == nil {
		return nil
	}
	t := ws.Focused()
	return ws.SetFullscreen(t.id, !t.fullscreen)
}

// ToggleMaximized flips maximized on the focused tile.
func (s *Shell) ToggleMaximized() error {
	ws := s.ActiveWorkspace()
	if ws == nil || ws.Focused() == nil {
		return nil
	}
	t := ws.Focused()
	return ws.SetMaximized(t.id, !t.maximized)
}

// CloseFocused unmaps the focused window.
func (s *Shell) CloseFocused() error {
	ws := s.ActiveWorkspace()
	if ws == nil || ws.Focused() == nil {
		return nil
	}
	return s.UnmapWindow(ws.Focused().window)
}

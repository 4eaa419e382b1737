// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package texel

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/geom"
	"github.com/framegrace/texeltile/internal/layout"
)

func TestMapWindowWithoutOutput(t *testing.T) {
	sh := NewShell(staticSettings(), zerolog.Nop())
	_, err := sh.MapWindow("a")
	assert.True(t, errors.Is(err, errors.ErrOutputNotFound))
}

func TestAttachOutputTwice(t *testing.T) {
	sh, _ := newTestShell(t, staticSettings())
	_, err := sh.AttachOutput("main", geom.Size{W: 10, H: 10})
	assert.True(t, errors.Is(err, errors.ErrOutputExists))
}

func TestMapWindowIsIdempotent(t *testing.T) {
	sh, o := newTestShell(t, staticSettings())
	first := mapAll(t, sh, "a")[0]
	again := mapAll(t, sh, "a")[0]
	assert.Equal(t, first.ID(), again.ID())
	assert.Equal(t, 1, o.ActiveWorkspace().Len())
}

func TestUnmapUnknownWindow(t *testing.T) {
	sh, _ := newTestShell(t, staticSettings())
	assert.True(t, errors.Is(sh.UnmapWindow("ghost"), errors.ErrTileNotFound))
	assert.True(t, errors.Is(sh.FocusWindow("ghost"), errors.ErrTileNotFound))
}

func TestDetachMergesIntoFallbackOutput(t *testing.T) {
	sh, main := newTestShell(t, staticSettings())
	mapAll(t, sh, "a")

	side, err := sh.AttachOutput("side", geom.Size{W: 800, H: 600})
	require.NoError(t, err)
	require.NoError(t, sh.FocusOutput("side"))
	mapAll(t, sh, "b")
	require.NoError(t, side.SetActive(3))
	mapAll(t, sh, "c")

	require.NoError(t, sh.DetachOutput("side"))
	assert.Nil(t, sh.Output("side"))
	assert.Equal(t, main, sh.FocusedOutput())

	assert.Equal(t, []WindowID{"a", "b"}, windowsOf(main.Workspace(0)))
	assert.Equal(t, []WindowID{"c"}, windowsOf(main.Workspace(3)))

	o, ws, tile, ok := sh.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, main, o)
	assert.Equal(t, 0, ws.Index())
	assert.Equal(t, geom.Rect{X: 500, Y: 0, W: 500, H: 800}, tile.Geometry())
}

func TestDetachLastOutputParksWorkspaces(t *testing.T) {
	sh, _ := newTestShell(t, staticSettings())
	mapAll(t, sh, "a", "b")
	ws := sh.ActiveWorkspace()
	ws.SetLayout(layout.BottomStack)

	require.NoError(t, sh.DetachOutput("main"))
	assert.Nil(t, sh.FocusedOutput())
	_, parked, _, ok := sh.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, ws, parked)
	assert.True(t, errors.Is(sh.FocusWindow("a"), errors.ErrOutputNotFound))

	o, err := sh.AttachOutput("hdmi", geom.Size{W: 400, H: 300})
	require.NoError(t, err)
	assert.Equal(t, ws, o.Workspace(0), "parked workspaces are adopted")
	assert.Equal(t, layout.BottomStack, o.Workspace(0).Layout())

	_, _, tile, ok := sh.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 400, H: 150}, tile.Geometry())
}

func TestDetachUnknownOutput(t *testing.T) {
	sh, _ := newTestShell(t, staticSettings())
	assert.True(t, errors.Is(sh.DetachOutput("nope"), errors.ErrOutputNotFound))
	assert.True(t, errors.Is(sh.FocusOutput("nope"), errors.ErrOutputNotFound))
	_, err := sh.RenderList("nope")
	assert.True(t, errors.Is(err, errors.ErrOutputNotFound))
}

func TestFocusWindowSwitchesWorkspace(t *testing.T) {
	sh, o := newTestShell(t, staticSettings())
	mapAll(t, sh, "a")
	require.NoError(t, sh.SwitchWorkspace(2))
	mapAll(t, sh, "b")

	require.NoError(t, sh.FocusWindow("a"))
	assert.Equal(t, 0, o.Active())
	assert.Equal(t, WindowID("a"), o.ActiveWorkspace().Focused().Window())
}

func TestMoveFocusedToWorkspace(t *testing.T) {
	sh, o := newTestShell(t, staticSettings())
	mapAll(t, sh, "a", "b")

	require.NoError(t, sh.MoveFocusedToWorkspace(4))
	assert.Equal(t, []WindowID{"a"}, windowsOf(o.Workspace(0)))
	assert.Equal(t, []WindowID{"b"}, windowsOf(o.Workspace(4)))
	assert.Equal(t, geom.Rect{W: 1000, H: 800}, o.Workspace(4).Tiles()[0].Geometry())

	_, ws, _, ok := sh.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, 4, ws.Index())

	assert.True(t, errors.Is(sh.MoveFocusedToWorkspace(12), errors.ErrWorkspaceIndex))
}

func TestShellActionsOnFocusedWorkspace(t *testing.T) {
	sh, o := newTestShell(t, staticSettings())
	mapAll(t, sh, "a", "b", "c")
	ws := o.ActiveWorkspace()

	sh.ChangeNMaster(1)
	assert.Equal(t, 2, ws.NMaster())
	sh.SelectNextLayout()
	assert.Equal(t, layout.BottomStack, ws.Layout())
	sh.SelectPreviousLayout()
	assert.Equal(t, layout.Tile, ws.Layout())

	sh.FocusPrevious()
	assert.Equal(t, WindowID("b"), ws.Focused().Window())
	sh.FocusNext()
	assert.Equal(t, WindowID("c"), ws.Focused().Window())
	sh.SwapWithPrevious()
	assert.Equal(t, []WindowID{"a", "c", "b"}, windowsOf(ws))
	sh.SwapWithNext()
	assert.Equal(t, []WindowID{"a", "b", "c"}, windowsOf(ws))

	require.NoError(t, sh.ChangeProportion(1))
	assert.Equal(t, 2.0, ws.Focused().Proportion())

	require.NoError(t, sh.ToggleFloating())
	assert.True(t, ws.Focused().Floating())

	require.NoError(t, sh.CloseFocused())
	assert.Equal(t, []WindowID{"a", "b"}, windowsOf(ws))
}

func TestSnapshot(t *testing.T) {
	sh, _ := newTestShell(t, staticSettings())
	mapAll(t, sh, "a", "b")

	snap := sh.Snapshot()
	require.Len(t, snap.Outputs, 1)
	out := snap.Outputs[0]
	assert.Equal(t, "main", out.Name)
	assert.True(t, out.Focused)
	require.Len(t, out.Workspaces, DefaultWorkspaces)

	ws := out.Workspaces[0]
	assert.Equal(t, layout.Tile, ws.Layout)
	assert.Equal(t, 1, ws.NMaster)
	require.Len(t, ws.Tiles, 2)
	assert.Equal(t, WindowID("a"), ws.Tiles[0].Window)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 500, H: 800}, ws.Tiles[0].Geometry)
	assert.True(t, ws.Tiles[1].Focused)
	assert.Empty(t, out.Workspaces[1].Tiles)
}

func TestParseInsertStrategyAndDirection(t *testing.T) {
	s, err := ParseInsertStrategy("replace-master")
	require.NoError(t, err)
	assert.Equal(t, InsertReplaceMaster, s)

	_, err = ParseInsertStrategy("random")
	assert.True(t, errors.Is(err, errors.ErrUnknownInsertStrategy))

	d, err := ParseSwitchDirection("Vertical")
	require.NoError(t, err)
	assert.Equal(t, SwitchVertical, d)

	_, err = ParseSwitchDirection("diagonal")
	assert.True(t, errors.Is(err, errors.ErrUnknownDirection))
}

func TestSetWindowGeometry(t *testing.T) {
	sh, o := newTestShell(t, staticSettings())
	tiles := mapAll(t, sh, "a", "b")
	ws := o.ActiveWorkspace()

	want := geom.Rect{X: 40, Y: 30, W: 320, H: 240}
	require.NoError(t, sh.SetWindowGeometry("b", want))
	assert.Equal(t, want, tiles[1].FloatGeometry())
	assert.Equal(t, geom.Rect{X: 500, Y: 0, W: 500, H: 800}, tiles[1].Geometry(), "tiled windows ignore the request")

	require.NoError(t, ws.SetFloating(tiles[1].ID(), true))
	assert.Equal(t, want, tiles[1].Geometry())

	assert.True(t, errors.Is(sh.SetWindowGeometry("ghost", want), errors.ErrTileNotFound))
	assert.True(t, errors.Is(sh.SetWindowGeometry("b", geom.Rect{W: 0, H: 10}), errors.ErrInvalidArgument))
}

func TestShellFullscreenAndMaximized(t *testing.T) {
	sh, o := newTestShell(t, staticSettings())
	tiles := mapAll(t, sh, "a", "b")

	require.NoError(t, sh.SetMaximized("a", true))
	assert.Equal(t, geom.Rect{W: 1000, H: 800}, tiles[0].Geometry())
	require.NoError(t, sh.SetFullscreen("b", true))
	assert.True(t, tiles[1].Fullscreen())

	snap := sh.Snapshot().Outputs[0].Workspaces[0]
	assert.True(t, snap.Tiles[0].Maximized)
	assert.True(t, snap.Tiles[1].Fullscreen)

	require.NoError(t, sh.ToggleFullscreen())
	assert.Nil(t, o.ActiveWorkspace().Fullscreen())
	assert.True(t, errors.Is(sh.SetFullscreen("ghost", true), errors.ErrTileNotFound))
	assert.True(t, errors.Is(sh.SetMaximized("ghost", true), errors.ErrTileNotFound))
}

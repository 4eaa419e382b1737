// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/preview/keys.go
// Summary: Key bindings for the interactive preview.

package preview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/texel"
)

// ErrQuit is returned by Apply for the quit action.
var ErrQuit = errors.New("quit requested")

// ActionKind names a shell action bound to a key.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionMapWindow
	ActionCloseFocused
	ActionShrinkMaster
	ActionGrowMaster
	ActionMoreMasters
	ActionFewerMasters
	ActionNextLayout
	ActionPreviousLayout
	ActionFocusNext
	ActionFocusPrevious
	ActionSwapNext
	ActionSwapPrevious
	ActionGrowTile
	ActionShrinkTile
	ActionToggleFloating
	ActionToggleFullscreen
	ActionToggleMaximized
	ActionSwitchWorkspace
	ActionToggleAnimations
)

// Action is a decoded key press.
type Action struct {
	Kind ActionKind
	// Workspace is the zero-based target of ActionSwitchWorkspace.
	Workspace int
}

var runeBindings = map[rune]ActionKind{
	'q': ActionQuit,
	'n': ActionMapWindow,
	'x': ActionCloseFocused,
	'h': ActionShrinkMaster,
	'l': ActionGrowMaster,
	'i': ActionMoreMasters,
	'd': ActionFewerMasters,
	' ': ActionNextLayout,
	'L': ActionPreviousLayout,
	'j': ActionFocusNext,
	'k': ActionFocusPrevious,
	'J': ActionSwapNext,
	'K': ActionSwapPrevious,
	'+': ActionGrowTile,
	'-': ActionShrinkTile,
	'f': ActionToggleFloating,
	'F': ActionToggleFullscreen,
	'm': ActionToggleMaximized,
	'a': ActionToggleAnimations,
}

// KeyAction maps a key event to an action.
func KeyAction(ev *tcell.EventKey) (Action, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return Action{Kind: ActionQuit}, true
	case tcell.KeyTab:
		return Action{Kind: ActionFocusNext}, true
	case tcell.KeyBacktab:
		return Action{Kind: ActionFocusPrevious}, true
	case tcell.KeyRune:
	default:
		return Action{}, false
	}
	r := ev.Rune()
	if r >= '1' && r <= '9' {
		return Action{Kind: ActionSwitchWorkspace, Workspace: int(r - '1')}, true
	}
	if kind, ok := runeBindings[r]; ok {
		return Action{Kind: kind}, true
	}
	return Action{}, false
}

// Binder applies actions to a shell and names newly mapped windows.
type Binder struct {
	windows int
}

// Apply runs a on sh. It returns ErrQuit for ActionQuit.
func (b *Binder) Apply(sh *texel.Shell, a Action) error {
	s := sh.Settings()
	switch a.Kind {
	case ActionQuit:
		return ErrQuit
	case ActionMapWindow:
		b.windows++
		_, err := sh.MapWindow(texel.WindowID(fmt.Sprintf("window-%d", b.windows)))
		return err
	case ActionCloseFocused:
		return sh.CloseFocused()
	case ActionShrinkMaster:
		sh.ChangeMWFact(-s.MWFactStep)
	case ActionGrowMaster:
		sh.ChangeMWFact(s.MWFactStep)
	case ActionMoreMasters:
		sh.ChangeNMaster(1)
	case ActionFewerMasters:
		sh.ChangeNMaster(-1)
	case ActionNextLayout:
		sh.SelectNextLayout()
	case ActionPreviousLayout:
		sh.SelectPreviousLayout()
	case ActionFocusNext:
		sh.FocusNext()
	case ActionFocusPrevious:
		sh.FocusPrevious()
	case ActionSwapNext:
		sh.SwapWithNext()
	case ActionSwapPrevious:
		sh.SwapWithPrevious()
	case ActionGrowTile:
		return sh.ChangeProportion(s.ProportionStep)
	case ActionShrinkTile:
		return sh.ChangeProportion(-s.ProportionStep)
	case ActionToggleFloating:
		return sh.ToggleFloating()
	case ActionToggleFullscreen:
		return sh.ToggleFullscreen()
	case ActionToggleMaximized:
		return sh.ToggleMaximized()
	case ActionSwitchWorkspace:
		return sh.SwitchWorkspace(a.Workspace)
	case ActionToggleAnimations:
		s.Toggles.Disabled = !s.Toggles.Disabled
		sh.Reload(s)
	}
	return nil
}

// Status summarises the output for the status line.
func Status(o *texel.OutputSpace) string {
	ws := o.ActiveWorkspace()
	focused := "-"
	if t := ws.Focused(); t != nil {
		focused = string(t.Window())
	}
	return fmt.Sprintf(" %s  ws %d/%d  %s  nmaster %d  mwfact %.2f  windows %d  focus %s",
		o.Name(), o.Active()+1, len(o.Workspaces()), ws.Layout(), ws.NMaster(), ws.MWFact(), ws.Len(), focused)
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/settings.go
// Summary: Runtime settings consumed by the shell, plus identifiers and policy enums.
// Usage: Built by the config package and handed to NewShell or Shell.Reload.

package texel

import (
	"strings"
	"time"

	"github.com/framegrace/texeltile/internal/animation"
	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/layout"
)

// TileID is a stable handle into the shell's tile arena.
type TileID uint64

// WindowID is the opaque handle of a window owned by the protocol layer.
type WindowID string

// InsertStrategy decides where a newly mapped window enters the tile order.
type InsertStrategy uint8

const (
	InsertEndOfSlaveStack InsertStrategy = iota
	InsertReplaceMaster
	InsertAfterFocused
)

func (s InsertStrategy) String() string {
	switch s {
	case InsertEndOfSlaveStack:
		return "end-of-slave-stack"
	case InsertReplaceMaster:
		return "replace-master"
	case InsertAfterFocused:
		return "after-focused"
	default:
		return "unknown"
	}
}

// ParseInsertStrategy resolves a strategy name.
func ParseInsertStrategy(name string) (InsertStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "end-of-slave-stack", "end":
		return InsertEndOfSlaveStack, nil
	case "replace-master", "master":
		return InsertReplaceMaster, nil
	case "after-focused":
		return InsertAfterFocused, nil
	}
	return InsertEndOfSlaveStack, errors.Wrapf(errors.ErrUnknownInsertStrategy, "%q", name)
}

func (s InsertStrategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *InsertStrategy) UnmarshalText(b []byte) error {
	v, err := ParseInsertStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// SwitchDirection is the axis along which workspaces slide during a switch.
type SwitchDirection uint8

const (
	SwitchHorizontal SwitchDirection = iota
	SwitchVertical
)

func (d SwitchDirection) String() string {
	if d == SwitchVertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseSwitchDirection resolves "horizontal" or "vertical".
func ParseSwitchDirection(name string) (SwitchDirection, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "horizontal":
		return SwitchHorizontal, nil
	case "vertical":
		return SwitchVertical, nil
	}
	return SwitchHorizontal, errors.Wrapf(errors.ErrUnknownDirection, "%q", name)
}

func (d SwitchDirection) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *SwitchDirection) UnmarshalText(b []byte) error {
	v, err := ParseSwitchDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Settings is the validated runtime configuration of the shell.
type Settings struct {
	Workspaces      int
	InsertStrategy  InsertStrategy
	FocusNewWindows bool

	// Layouts is the cycle order; the first entry is the initial layout.
	Layouts        []layout.Kind
	NMaster        int
	MWFact         float64
	InnerGap       int
	OuterGap       int
	ProportionStep float64
	MWFactStep     float64

	CornerRadius    int
	ActiveOpacity   float64
	InactiveOpacity float64

	Toggles         animation.Toggles
	Curves          map[animation.Kind]animation.Curve
	SwitchDirection SwitchDirection
	// MaxFrameDelta caps the delta a single frame may advance animations by.
	MaxFrameDelta time.Duration
}

// Default values, matching the built-in configuration.
const (
	DefaultWorkspaces    = 9
	DefaultMaxFrameDelta = 100 * time.Millisecond
	MinProportion        = 0.01
)

// DefaultSettings returns the settings used when no configuration is loaded.
func DefaultSettings() Settings {
	return Settings{
		Workspaces:      DefaultWorkspaces,
		InsertStrategy:  InsertEndOfSlaveStack,
		FocusNewWindows: true,
		Layouts:         []layout.Kind{layout.Tile, layout.BottomStack, layout.CenteredMaster, layout.Floating},
		NMaster:         1,
		MWFact:          0.5,
		InnerGap:        8,
		OuterGap:        8,
		ProportionStep:  0.5,
		MWFactStep:      0.05,
		CornerRadius:    10,
		ActiveOpacity:   1,
		InactiveOpacity: 1,
		Curves: map[animation.Kind]animation.Curve{
			animation.KindWorkspaceSwitch: animation.NewEasing(animation.EaseOutCubic, 350*time.Millisecond),
			animation.KindWindowOpenClose: animation.NewEasing(animation.EaseOutCubic, 300*time.Millisecond),
			animation.KindWindowGeometry:  animation.NewEasing(animation.EaseOutCubic, 300*time.Millisecond),
		},
		SwitchDirection: SwitchHorizontal,
		MaxFrameDelta:   DefaultMaxFrameDelta,
	}
}

// Curve returns the curve configured for kind, falling back to the default.
func (s *Settings) Curve(kind animation.Kind) animation.Curve {
	if c, ok := s.Curves[kind]; ok && c != nil {
		return c
	}
	return DefaultSettings().Curves[kind]
}

// workspaceCount returns the configured number of workspaces per output, at least one.
func (s *Settings) workspaceCount() int {
	return max(s.Workspaces, 1)
}

func (s *Settings) layouts() []layout.Kind {
	if len(s.Layouts) == 0 {
		return []layout.Kind{layout.Tile}
	}
	return s.Layouts
}

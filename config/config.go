// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Configuration schema for texeltile.
// Usage: Load or LoadFile return a validated *Config; Settings converts it for the shell.

// Package config loads, validates and watches the texeltile configuration.
package config

import (
	"time"

	"github.com/framegrace/texeltile/internal/animation"
)

// Config is the full configuration file.
type Config struct {
	General     GeneralConfig     `mapstructure:"general" yaml:"general"`
	Decorations DecorationsConfig `mapstructure:"decorations" yaml:"decorations"`
	Animations  AnimationsConfig  `mapstructure:"animations" yaml:"animations"`
}

// GeneralConfig holds tiling behaviour.
type GeneralConfig struct {
	InsertStrategy  string   `mapstructure:"insert-strategy" yaml:"insert-strategy"`
	FocusNewWindows bool     `mapstructure:"focus-new-windows" yaml:"focus-new-windows"`
	Workspaces      int      `mapstructure:"workspaces" yaml:"workspaces"`
	Layouts         []string `mapstructure:"layouts" yaml:"layouts"`
	NMaster         int      `mapstructure:"nmaster" yaml:"nmaster"`
	MWFact          float64  `mapstructure:"mwfact" yaml:"mwfact"`
	// Gaps may be negative, which makes neighbouring tiles overlap.
	InnerGaps      int     `mapstructure:"inner-gaps" yaml:"inner-gaps"`
	OuterGaps      int     `mapstructure:"outer-gaps" yaml:"outer-gaps"`
	ProportionStep float64 `mapstructure:"proportion-step" yaml:"proportion-step"`
	MWFactStep     float64 `mapstructure:"mwfact-step" yaml:"mwfact-step"`
}

// DecorationsConfig holds values handed to the renderer.
type DecorationsConfig struct {
	CornerRadius    int     `mapstructure:"corner-radius" yaml:"corner-radius"`
	ActiveOpacity   float64 `mapstructure:"active-opacity" yaml:"active-opacity"`
	InactiveOpacity float64 `mapstructure:"inactive-opacity" yaml:"inactive-opacity"`
}

// AnimationsConfig holds the global switch and the per-kind animations.
type AnimationsConfig struct {
	Disable         bool                  `mapstructure:"disable" yaml:"disable"`
	MaxFrameDelta   time.Duration         `mapstructure:"max-frame-delta" yaml:"max-frame-delta"`
	WorkspaceSwitch SwitchAnimationConfig `mapstructure:"workspace-switch" yaml:"workspace-switch"`
	WindowOpenClose AnimationConfig       `mapstructure:"window-open-close" yaml:"window-open-close"`
	WindowGeometry  AnimationConfig       `mapstructure:"window-geometry" yaml:"window-geometry"`
}

// AnimationConfig configures one animation kind. Duration is ignored by
// spring curves, whose length follows from the physics.
type AnimationConfig struct {
	Disable  bool          `mapstructure:"disable" yaml:"disable"`
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
	Curve    CurveConfig   `mapstructure:"curve" yaml:"curve,omitempty"`
}

// SwitchAnimationConfig adds the slide direction to the workspace switch.
type SwitchAnimationConfig struct {
	AnimationConfig `mapstructure:",squash" yaml:",inline"`
	Direction       string `mapstructure:"direction" yaml:"direction"`
}

// CurveConfig selects a curve. At most one of the fields may be set; an empty
// value means the default easing. A bare string in the file is read as Easing.
type CurveConfig struct {
	Easing string        `mapstructure:"easing" yaml:"easing,omitempty"`
	Cubic  []float64     `mapstructure:"cubic" yaml:"cubic,omitempty,flow"`
	Spring *SpringConfig `mapstructure:"spring" yaml:"spring,omitempty"`
}

// SpringConfig mirrors animation.SpringCurve.
type SpringConfig struct {
	InitialVelocity float64 `mapstructure:"initial-velocity" yaml:"initial-velocity"`
	DampingRatio    float64 `mapstructure:"damping-ratio" yaml:"damping-ratio"`
	Mass            float64 `mapstructure:"mass" yaml:"mass"`
	Stiffness       float64 `mapstructure:"stiffness" yaml:"stiffness"`
	Epsilon         float64 `mapstructure:"epsilon" yaml:"epsilon"`
	Clamp           bool    `mapstructure:"clamp" yaml:"clamp"`
}

// DefaultEasing is used when a curve is left empty.
const DefaultEasing = animation.EaseOutCubic

// Animation returns the per-kind section for kind.
func (a *AnimationsConfig) Animation(kind animation.Kind) AnimationConfig {
	switch kind {
	case animation.KindWorkspaceSwitch:
		return a.WorkspaceSwitch.AnimationConfig
	case animation.KindWindowOpenClose:
		return a.WindowOpenClose
	default:
		return a.WindowGeometry
	}
}

func (c CurveConfig) empty() bool {
	return c.Easing == "" && len(c.Cubic) == 0 && c.Spring == nil
}

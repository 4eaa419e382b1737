// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"math"

	"github.com/framegrace/texeltile/internal/animation"
	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/layout"
	"github.com/framegrace/texeltile/texel"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - insert strategy, layout names and switch direction must be known
//   - workspaces and nmaster must be at least 1
//   - mwfact must lie in [0.01, 0.99]
//   - steps must be positive, opacities in [0, 1]
//   - every curve must build, durations must not be negative
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if err := validateGeneral(&cfg.General); err != nil {
		return err
	}
	if err := validateDecorations(&cfg.Decorations); err != nil {
		return err
	}
	return validateAnimations(&cfg.Animations)
}

func validateGeneral(g *GeneralConfig) error {
	if _, err := texel.ParseInsertStrategy(g.InsertStrategy); err != nil {
		return errors.Wrap(err, "general.insert-strategy")
	}
	if g.Workspaces < 1 {
		return errors.Wrapf(errors.ErrValueOutOfRange, "general.workspaces must be at least 1, got %d", g.Workspaces)
	}
	if len(g.Layouts) == 0 {
		return errors.Wrap(errors.ErrUnknownLayout, "general.layouts must list at least one layout")
	}
	for _, name := range g.Layouts {
		if _, err := layout.ParseKind(name); err != nil {
			return errors.Wrap(err, "general.layouts")
		}
	}
	if g.NMaster < 1 {
		return errors.Wrapf(errors.ErrValueOutOfRange, "general.nmaster must be at least 1, got %d", g.NMaster)
	}
	if !inRange(g.MWFact, layout.MinMWFact, layout.MaxMWFact) {
		return errors.Wrapf(errors.ErrValueOutOfRange, "general.mwfact must be in [%.2f, %.2f], got %v",
			layout.MinMWFact, layout.MaxMWFact, g.MWFact)
	}
	if !(g.ProportionStep > 0) || math.IsInf(g.ProportionStep, 0) {
		return errors.Wrapf(errors.ErrValueOutOfRange, "general.proportion-step must be positive, got %v", g.ProportionStep)
	}
	if !(g.MWFactStep > 0) || g.MWFactStep >= 1 {
		return errors.Wrapf(errors.ErrValueOutOfRange, "general.mwfact-step must be in (0, 1), got %v", g.MWFactStep)
	}
	return nil
}

func validateDecorations(d *DecorationsConfig) error {
	if d.CornerRadius < 0 {
		return errors.Wrapf(errors.ErrValueOutOfRange, "decorations.corner-radius must not be negative, got %d", d.CornerRadius)
	}
	if !inRange(d.ActiveOpacity, 0, 1) {
		return errors.Wrapf(errors.ErrValueOutOfRange, "decorations.active-opacity must be in [0, 1], got %v", d.ActiveOpacity)
	}
	if !inRange(d.InactiveOpacity, 0, 1) {
		return errors.Wrapf(errors.ErrValueOutOfRange, "decorations.inactive-opacity must be in [0, 1], got %v", d.InactiveOpacity)
	}
	return nil
}

func validateAnimations(a *AnimationsConfig) error {
	if a.MaxFrameDelta < 0 {
		return errors.Wrapf(errors.ErrValueOutOfRange, "animations.max-frame-delta must not be negative, got %s", a.MaxFrameDelta)
	}
	if _, err := texel.ParseSwitchDirection(a.WorkspaceSwitch.Direction); err != nil {
		return errors.Wrap(err, "animations.workspace-switch.direction")
	}
	for _, kind := range []animation.Kind{
		animation.KindWorkspaceSwitch,
		animation.KindWindowOpenClose,
		animation.KindWindowGeometry,
	} {
		sec := a.Animation(kind)
		if sec.Duration < 0 {
			return errors.Wrapf(errors.ErrValueOutOfRange, "animations.%s.duration must not be negative, got %s", kind, sec.Duration)
		}
		if _, err := sec.Curve.Build(sec.Duration); err != nil {
			return errors.Wrapf(err, "animations.%s.curve", kind)
		}
	}
	return nil
}

// inRange reports lo <= f <= hi; NaN is never in range.
func inRange(f, lo, hi float64) bool {
	return f >= lo && f <= hi
}

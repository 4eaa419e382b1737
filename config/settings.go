// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"github.com/framegrace/texeltile/internal/animation"
	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/layout"
	"github.com/framegrace/texeltile/texel"
)

// Settings converts the configuration into shell settings. The config is
// validated first, so a failing call leaves any running shell untouched.
func (c *Config) Settings() (texel.Settings, error) {
	if err := Validate(c); err != nil {
		return texel.Settings{}, err
	}
	g, d, a := c.General, c.Decorations, c.Animations

	strategy, err := texel.ParseInsertStrategy(g.InsertStrategy)
	if err != nil {
		return texel.Settings{}, err
	}
	direction, err := texel.ParseSwitchDirection(a.WorkspaceSwitch.Direction)
	if err != nil {
		return texel.Settings{}, err
	}
	layouts := make([]layout.Kind, 0, len(g.Layouts))
	for _, name := range g.Layouts {
		kind, err := layout.ParseKind(name)
		if err != nil {
			return texel.Settings{}, err
		}
		layouts = append(layouts, kind)
	}

	s := texel.Settings{
		Workspaces:      g.Workspaces,
		InsertStrategy:  strategy,
		FocusNewWindows: g.FocusNewWindows,
		Layouts:         layouts,
		NMaster:         g.NMaster,
		MWFact:          g.MWFact,
		InnerGap:        g.InnerGaps,
		OuterGap:        g.OuterGaps,
		ProportionStep:  g.ProportionStep,
		MWFactStep:      g.MWFactStep,
		CornerRadius:    d.CornerRadius,
		ActiveOpacity:   d.ActiveOpacity,
		InactiveOpacity: d.InactiveOpacity,
		Toggles:         animation.Toggles{Disabled: a.Disable, Off: map[animation.Kind]bool{}},
		Curves:          make(map[animation.Kind]animation.Curve, 3),
		SwitchDirection: direction,
		MaxFrameDelta:   a.MaxFrameDelta,
	}
	for _, kind := range []animation.Kind{
		animation.KindWorkspaceSwitch,
		animation.KindWindowOpenClose,
		animation.KindWindowGeometry,
	} {
		curve, err := c.Curve(kind)
		if err != nil {
			return texel.Settings{}, errors.Wrap(err, "build settings")
		}
		s.Curves[kind] = curve
		if a.Animation(kind).Disable {
			s.Toggles.Off[kind] = true
		}
	}
	return s, nil
}

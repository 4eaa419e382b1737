// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/framegrace/texeltile/internal/animation"
	"github.com/framegrace/texeltile/internal/errors"
)

// Build turns the curve section into an animation curve lasting d.
func (c CurveConfig) Build(d time.Duration) (animation.Curve, error) {
	set := 0
	if c.Easing != "" {
		set++
	}
	if len(c.Cubic) > 0 {
		set++
	}
	if c.Spring != nil {
		set++
	}
	if set > 1 {
		return nil, errors.Wrap(errors.ErrInvalidCurveConfig, "only one of easing, cubic and spring may be set")
	}
	if d < 0 {
		return nil, errors.Wrapf(errors.ErrInvalidCurveConfig, "negative duration %s", d)
	}

	switch {
	case c.Spring != nil:
		s := c.Spring
		spring, err := animation.NewSpring(s.InitialVelocity, s.DampingRatio, s.Mass, s.Stiffness, s.Epsilon, s.Clamp)
		if err != nil {
			return nil, err
		}
		return spring, nil
	case len(c.Cubic) > 0:
		if len(c.Cubic) != 4 {
			return nil, errors.Wrapf(errors.ErrInvalidCurveConfig, "cubic needs 4 numbers, got %d", len(c.Cubic))
		}
		bezier, err := animation.NewBezier(
			animation.ControlPoint{X: c.Cubic[0], Y: c.Cubic[1]},
			animation.ControlPoint{X: c.Cubic[2], Y: c.Cubic[3]},
			d,
		)
		if err != nil {
			return nil, err
		}
		return bezier, nil
	case c.Easing != "":
		e, err := animation.ParseEasing(c.Easing)
		if err != nil {
			return nil, err
		}
		return animation.NewEasing(e, d), nil
	default:
		return animation.NewEasing(DefaultEasing, d), nil
	}
}

// Curve builds the configured curve for kind.
func (c *Config) Curve(kind animation.Kind) (animation.Curve, error) {
	a := c.Animations.Animation(kind)
	curve, err := a.Curve.Build(a.Duration)
	if err != nil {
		return nil, errors.Wrapf(err, "animations.%s.curve", kind)
	}
	return curve, nil
}

var curveConfigType = reflect.TypeOf(CurveConfig{})

// curveShorthandHook lets a curve be written as a bare easing name.
func curveShorthandHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != curveConfigType || from.Kind() != reflect.String {
			return data, nil
		}
		return map[string]any{"easing": data}, nil
	}
}

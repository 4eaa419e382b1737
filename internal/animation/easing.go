// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/animation/easing.go
// Summary: Predefined easing functions mapping linear progress [0,1] to eased progress.
// Usage: Selected by name from configuration and wrapped in an EasingCurve.

package animation

import (
	"math"
	"sort"
	"strings"

	"github.com/framegrace/texeltile/internal/errors"
)

// EasingFunc maps progress in [0,1] to eased progress. It must return 0 at 0 and 1 at 1.
type EasingFunc func(t float64) float64

// Easing identifies one of the predefined easing functions.
type Easing uint8

const (
	Linear Easing = iota
	Smoothstep
	Smootherstep
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInQuart
	EaseOutQuart
	EaseInOutQuart
	EaseInQuint
	EaseOutQuint
	EaseInOutQuint
	EaseInSine
	EaseOutSine
	EaseInOutSine
	EaseInExpo
	EaseOutExpo
	EaseInOutExpo
	easingCount
)

var easingNames = [easingCount]string{
	Linear:         "linear",
	Smoothstep:     "smoothstep",
	Smootherstep:   "smootherstep",
	EaseInQuad:     "ease-in-quad",
	EaseOutQuad:    "ease-out-quad",
	EaseInOutQuad:  "ease-in-out-quad",
	EaseInCubic:    "ease-in-cubic",
	EaseOutCubic:   "ease-out-cubic",
	EaseInOutCubic: "ease-in-out-cubic",
	EaseInQuart:    "ease-in-quart",
	EaseOutQuart:   "ease-out-quart",
	EaseInOutQuart: "ease-in-out-quart",
	EaseInQuint:    "ease-in-quint",
	EaseOutQuint:   "ease-out-quint",
	EaseInOutQuint: "ease-in-out-quint",
	EaseInSine:     "ease-in-sine",
	EaseOutSine:    "ease-out-sine",
	EaseInOutSine:  "ease-in-out-sine",
	EaseInExpo:     "ease-in-expo",
	EaseOutExpo:    "ease-out-expo",
	EaseInOutExpo:  "ease-in-out-expo",
}

// Short aliases accepted by ParseEasing.
var easingAliases = map[string]Easing{
	"ease-in":     EaseInSine,
	"ease-out":    EaseOutSine,
	"ease-in-out": EaseInOutSine,
}

var easingFuncs = [easingCount]EasingFunc{
	Linear: func(t float64) float64 { return t },

	// Smooth S-curve, the default used by layout transitions.
	Smoothstep: func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	},
	Smootherstep: func(t float64) float64 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	},

	EaseInQuad:  func(t float64) float64 { return t * t },
	EaseOutQuad: func(t float64) float64 { return t * (2.0 - t) },
	EaseInOutQuad: func(t float64) float64 {
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	},

	EaseInCubic: func(t float64) float64 { return t * t * t },
	EaseOutCubic: func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	},
	EaseInOutCubic: func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	},

	EaseInQuart: func(t float64) float64 { return t * t * t * t },
	EaseOutQuart: func(t float64) float64 {
		t1 := t - 1.0
		return 1.0 - t1*t1*t1*t1
	},
	EaseInOutQuart: func(t float64) float64 {
		if t < 0.5 {
			return 8.0 * t * t * t * t
		}
		t1 := t - 1.0
		return 1.0 - 8.0*t1*t1*t1*t1
	},

	EaseInQuint: func(t float64) float64 { return t * t * t * t * t },
	EaseOutQuint: func(t float64) float64 {
		t1 := t - 1.0
		return 1.0 + t1*t1*t1*t1*t1
	},
	EaseInOutQuint: func(t float64) float64 {
		if t < 0.5 {
			return 16.0 * t * t * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*t1*t1*0.5
	},

	EaseInSine:    func(t float64) float64 { return 1.0 - math.Cos(t*math.Pi/2.0) },
	EaseOutSine:   func(t float64) float64 { return math.Sin(t * math.Pi / 2.0) },
	EaseInOutSine: func(t float64) float64 { return -(math.Cos(math.Pi*t) - 1.0) / 2.0 },

	EaseInExpo: func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		return math.Pow(2, 10*t-10)
	},
	EaseOutExpo: func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*t)
	},
	EaseInOutExpo: func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		case t < 0.5:
			return math.Pow(2, 20*t-10) / 2
		default:
			return (2 - math.Pow(2, -20*t+10)) / 2
		}
	},
}

// String returns the configuration name of the easing.
func (e Easing) String() string {
	if e >= easingCount {
		return "unknown"
	}
	return easingNames[e]
}

// Func returns the easing function. Unknown values fall back to linear.
func (e Easing) Func() EasingFunc {
	if e >= easingCount {
		return easingFuncs[Linear]
	}
	return easingFuncs[e]
}

// Apply evaluates the easing at t, clamping t to [0,1] first.
func (e Easing) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return e.Func()(t)
}

// ParseEasing resolves a configuration name. Matching ignores case, dashes and
// underscores, so "ease-out-cubic", "EaseOutCubic" and "ease_out_cubic" are equal.
func ParseEasing(name string) (Easing, error) {
	key := normalizeName(name)
	for i, n := range easingNames {
		if normalizeName(n) == key {
			return Easing(i), nil
		}
	}
	for alias, e := range easingAliases {
		if normalizeName(alias) == key {
			return e, nil
		}
	}
	return Linear, errors.Wrapf(errors.ErrUnknownEasing, "%q", name)
}

// EasingNames lists every accepted canonical easing name, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easingNames))
	names = append(names, easingNames[:]...)
	sort.Strings(names)
	return names
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texeltile/internal/animation"
	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/layout"
	"github.com/framegrace/texeltile/texel"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultMatchesShellDefaults(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	got, err := cfg.Settings()
	require.NoError(t, err)
	want := texel.DefaultSettings()

	assert.Equal(t, want.Workspaces, got.Workspaces)
	assert.Equal(t, want.InsertStrategy, got.InsertStrategy)
	assert.Equal(t, want.FocusNewWindows, got.FocusNewWindows)
	assert.Equal(t, want.Layouts, got.Layouts)
	assert.Equal(t, want.NMaster, got.NMaster)
	assert.InDelta(t, want.MWFact, got.MWFact, 1e-9)
	assert.Equal(t, want.InnerGap, got.InnerGap)
	assert.Equal(t, want.OuterGap, got.OuterGap)
	assert.Equal(t, want.CornerRadius, got.CornerRadius)
	assert.Equal(t, want.SwitchDirection, got.SwitchDirection)
	assert.Equal(t, want.MaxFrameDelta, got.MaxFrameDelta)
	assert.Equal(t, want.Curves, got.Curves)
	assert.True(t, got.Toggles.Enabled(animation.KindWindowGeometry))
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
general:
  nmaster: 2
  mwfact: 0.6
  outer-gaps: -4
  layouts: [centered-master, tile]
  insert-strategy: replace-master
decorations:
  inactive-opacity: 0.8
animations:
  window-geometry:
    disable: true
  workspace-switch:
    direction: vertical
    duration: 200ms
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	s, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, 2, s.NMaster)
	assert.InDelta(t, 0.6, s.MWFact, 1e-9)
	assert.Equal(t, -4, s.OuterGap)
	assert.Equal(t, 8, s.InnerGap, "untouched keys keep their default")
	assert.Equal(t, []layout.Kind{layout.CenteredMaster, layout.Tile}, s.Layouts)
	assert.Equal(t, texel.InsertReplaceMaster, s.InsertStrategy)
	assert.InDelta(t, 0.8, s.InactiveOpacity, 1e-9)
	assert.Equal(t, texel.SwitchVertical, s.SwitchDirection)
	assert.False(t, s.Toggles.Enabled(animation.KindWindowGeometry))
	assert.True(t, s.Toggles.Enabled(animation.KindWindowOpenClose))
	assert.Equal(t, 200*time.Millisecond, s.Curve(animation.KindWorkspaceSwitch).Duration())
}

func TestCurveForms(t *testing.T) {
	path := writeConfig(t, `
animations:
  workspace-switch:
    duration: 250ms
    curve: ease-in-out-quad
  window-open-close:
    duration: 400ms
    curve:
      cubic: [0.25, 0.1, 0.25, 1.0]
  window-geometry:
    curve:
      spring:
        damping-ratio: 1.0
        mass: 1.0
        stiffness: 500
        epsilon: 0.001
        clamp: true
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	sw, err := cfg.Curve(animation.KindWorkspaceSwitch)
	require.NoError(t, err)
	assert.Equal(t, animation.NewEasing(animation.EaseInOutQuad, 250*time.Millisecond), sw)

	oc, err := cfg.Curve(animation.KindWindowOpenClose)
	require.NoError(t, err)
	bez, ok := oc.(animation.BezierCurve)
	require.True(t, ok)
	assert.Equal(t, animation.ControlPoint{X: 0.25, Y: 0.1}, bez.P1)
	assert.Equal(t, 400*time.Millisecond, bez.Duration())

	geo, err := cfg.Curve(animation.KindWindowGeometry)
	require.NoError(t, err)
	spring, ok := geo.(animation.SpringCurve)
	require.True(t, ok)
	assert.True(t, spring.Clamp)
	assert.InDelta(t, 500.0, spring.Stiffness, 1e-9)
	assert.Positive(t, spring.Duration())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown layout", "general:\n  layouts: [tile, spiral]\n", errors.ErrUnknownLayout},
		{"empty layouts", "general:\n  layouts: []\n", errors.ErrUnknownLayout},
		{"unknown strategy", "general:\n  insert-strategy: random\n", errors.ErrUnknownInsertStrategy},
		{"nmaster zero", "general:\n  nmaster: 0\n", errors.ErrValueOutOfRange},
		{"mwfact one", "general:\n  mwfact: 1.0\n", errors.ErrValueOutOfRange},
		{"no workspaces", "general:\n  workspaces: 0\n", errors.ErrValueOutOfRange},
		{"opacity", "decorations:\n  active-opacity: 1.5\n", errors.ErrValueOutOfRange},
		{"direction", "animations:\n  workspace-switch:\n    direction: diagonal\n", errors.ErrUnknownDirection},
		{"easing", "animations:\n  window-geometry:\n    curve: bouncy\n", errors.ErrUnknownEasing},
		{"cubic arity", "animations:\n  window-geometry:\n    curve:\n      cubic: [0.1, 0.2]\n", errors.ErrInvalidCurveConfig},
		{"cubic x", "animations:\n  window-geometry:\n    curve:\n      cubic: [1.5, 0, 0.5, 1]\n", errors.ErrInvalidCurveConfig},
		{"spring mass", "animations:\n  window-geometry:\n    curve:\n      spring:\n        stiffness: 100\n", errors.ErrInvalidCurveConfig},
		{"two curves", "animations:\n  window-geometry:\n    curve:\n      easing: linear\n      cubic: [0, 0, 1, 1]\n", errors.ErrInvalidCurveConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidateNil(t *testing.T) {
	assert.True(t, errors.Is(Validate(nil), errors.ErrConfigNil))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.Is(err, errors.ErrConfigNotFound))

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.Is(err, errors.ErrConfigNotFound))
}

func TestLoadReadsUserConfigAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("general:\n  nmaster: 3\n  mwfact: 0.7\n"), 0o600))

	explicit := writeConfig(t, "general:\n  mwfact: 0.4\n")
	t.Setenv("TEXELTILE_GENERAL_INNER_GAPS", "2")

	cfg, err := Load(context.Background(), explicit)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.General.NMaster)
	assert.InDelta(t, 0.4, cfg.General.MWFact, 1e-9, "explicit file wins over the user file")
	assert.Equal(t, 2, cfg.General.InnerGaps, "environment wins over files")
}

func TestWatchForwardsValidAndRejectedConfigs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("general:\n  mwfact: 0.7\n  nmaster: 2\n"), 0o600))

	path := writeConfig(t, "general:\n  nmaster: 1\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		cfg *Config
		err error
	}
	results := make(chan result, 64)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config, err error) {
			select {
			case results <- result{cfg, err}:
			default:
			}
		})
	}()

	// A single write can surface as several events, the first of which may
	// see a truncated file, so wait for the result we are after.
	await := func(match func(result) bool) result {
		t.Helper()
		timeout := time.After(5 * time.Second)
		for {
			select {
			case r := <-results:
				if match(r) {
					return r
				}
			case <-timeout:
				t.Fatal("watcher did not report the change")
				return result{}
			}
		}
	}

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("general:\n  nmaster: 4\n"), 0o600))
	r := await(func(r result) bool { return r.err == nil && r.cfg.General.NMaster == 4 })
	assert.InDelta(t, 0.7, r.cfg.General.MWFact, 1e-9, "the user config stays layered under the watched file")

	require.NoError(t, os.WriteFile(path, []byte("general:\n  nmaster: 0\n"), 0o600))
	r = await(func(r result) bool { return r.err != nil })
	assert.Nil(t, r.cfg)
	assert.True(t, errors.Is(r.err, errors.ErrValueOutOfRange))

	cancel()
	require.NoError(t, <-done)
}

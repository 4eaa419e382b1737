// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/load.go
// Summary: viper-backed loading with embedded defaults, user file and env overrides.

package config

import (
	"bytes"
	"context"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/texeltile/defaults"
	"github.com/framegrace/texeltile/internal/errors"
)

// EnvPrefix prefixes environment overrides, e.g. TEXELTILE_GENERAL_NMASTER.
const EnvPrefix = "TEXELTILE"

// newViperInstance creates a viper instance with the embedded defaults and
// environment overrides registered.
func newViperInstance() (*viper.Viper, error) {
	v := viper.New()
	if err := setDefaults(v); err != nil {
		return nil, err
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v, nil
}

// setDefaults registers every leaf of the embedded config as a viper default.
func setDefaults(v *viper.Viper) error {
	var tree map[string]any
	if err := yaml.NewDecoder(bytes.NewReader(defaults.Config())).Decode(&tree); err != nil {
		return errors.Wrap(err, "failed to parse embedded defaults")
	}
	flattenDefaults(v, "", tree)
	return nil
}

func flattenDefaults(v *viper.Viper, prefix string, tree map[string]any) {
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			flattenDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			curveShorthandHook(),
		),
	)
}

// unmarshalAndValidate unmarshals viper config into Config and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	v := viper.New()
	if err := setDefaults(v); err != nil {
		return nil, err
	}
	return unmarshalAndValidate(v)
}

// Load reads configuration from all sources, lowest precedence first:
//  1. Built-in defaults
//  2. The user config ($XDG_CONFIG_HOME/texeltile/config.yaml), if present
//  3. path, when not empty; it must exist
//  4. Environment variables (TEXELTILE_* prefix)
func Load(ctx context.Context, path string) (*Config, error) {
	v, err := newViperInstance()
	if err != nil {
		return nil, err
	}

	if userPath, err := DefaultPath(); err == nil && fileExists(userPath) {
		if err := mergeFile(v, userPath); err != nil {
			return nil, err
		}
	}
	if path != "" {
		if !fileExists(path) {
			return nil, errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
		}
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("file", v.ConfigFileUsed()).
		Int("workspaces", cfg.General.Workspaces).
		Bool("animations.disable", cfg.Animations.Disable).
		Msg("configuration loaded")
	return cfg, nil
}

// LoadFile reads defaults, the file at path and env overrides. The user
// config directory is not consulted.
func LoadFile(path string) (*Config, error) {
	if !fileExists(path) {
		return nil, errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
	}
	v, err := newViperInstance()
	if err != nil {
		return nil, err
	}
	if err := mergeFile(v, path); err != nil {
		return nil, err
	}
	return unmarshalAndValidate(v)
}

func mergeFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	return nil
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texeltile configuration.

package config

import (
	"os"
	"path/filepath"
)

const (
	appDirName     = "texeltile"
	configFileName = "config.yaml"
)

// Dir returns the per-user configuration directory ($XDG_CONFIG_HOME/texeltile).
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appDirName), nil
}

// DefaultPath returns the per-user config file path.
func DefaultPath() (string, error) {
	root, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, configFileName), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration file.
// The embedded YAML is the single source of truth for built-in values.

package defaults

import (
	_ "embed"
)

//go:embed config.yaml
var configYAML []byte

// Config returns a copy of the embedded default config YAML.
func Config() []byte {
	out := make([]byte, len(configYAML))
	copy(out, configYAML)
	return out
}

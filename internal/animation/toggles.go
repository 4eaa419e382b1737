// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package animation

// Kind groups animations that can be switched off together.
type Kind uint8

const (
	KindWorkspaceSwitch Kind = iota
	KindWindowOpenClose
	KindWindowGeometry
)

func (k Kind) String() string {
	switch k {
	case KindWorkspaceSwitch:
		return "workspace-switch"
	case KindWindowOpenClose:
		return "window-open-close"
	case KindWindowGeometry:
		return "window-geometry"
	default:
		return "unknown"
	}
}

// Toggles is the shared on/off state consulted once per tick. A disabled kind
// makes in-flight animations of that kind jump to their end value.
type Toggles struct {
	// Disabled turns every animation off.
	Disabled bool
	// Off lists individually disabled kinds.
	Off map[Kind]bool
}

// Enabled reports whether animations of kind k should run.
func (t Toggles) Enabled(k Kind) bool {
	if t.Disabled {
		return false
	}
	return !t.Off[k]
}

// With returns a copy with kind k switched on or off.
func (t Toggles) With(k Kind, enabled bool) Toggles {
	off := make(map[Kind]bool, len(t.Off)+1)
	for kind, v := range t.Off {
		off[kind] = v
	}
	off[k] = !enabled
	t.Off = off
	return t
}

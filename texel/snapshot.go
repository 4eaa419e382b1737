// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/snapshot.go
// Summary: Read-only captures of outputs, workspaces and tiles for introspection.
// Usage: Shell.Snapshot feeds the inspect command and the protocol snapshot codec.

package texel

import (
	"github.com/framegrace/texeltile/internal/geom"
	"github.com/framegrace/texeltile/internal/layout"
)

// TileSnapshot captures one tile.
type TileSnapshot struct {
	ID         TileID    `yaml:"id" json:"id"`
	Window     WindowID  `yaml:"window" json:"window"`
	Index      int       `yaml:"index" json:"index"`
	Geometry   geom.Rect `yaml:"geometry" json:"geometry"`
	Target     geom.Rect `yaml:"target" json:"target"`
	Proportion float64   `yaml:"proportion" json:"proportion"`
	Floating   bool      `yaml:"floating" json:"floating"`
	Fullscreen bool      `yaml:"fullscreen,omitempty" json:"fullscreen,omitempty"`
	Maximized  bool      `yaml:"maximized,omitempty" json:"maximized,omitempty"`
	Focused    bool      `yaml:"focused" json:"focused"`
}

// WorkspaceSnapshot captures one workspace and its tiles in stack order.
type WorkspaceSnapshot struct {
	ID      string         `yaml:"id" json:"id"`
	Index   int            `yaml:"index" json:"index"`
	Layout  layout.Kind    `yaml:"layout" json:"layout"`
	NMaster int            `yaml:"nmaster" json:"nmaster"`
	MWFact  float64        `yaml:"mwfact" json:"mwfact"`
	Tiles   []TileSnapshot `yaml:"tiles,omitempty" json:"tiles,omitempty"`
}

// OutputSnapshot captures one output.
type OutputSnapshot struct {
	ID         string              `yaml:"id" json:"id"`
	Name       string              `yaml:"name" json:"name"`
	Size       geom.Size           `yaml:"size" json:"size"`
	Active     int                 `yaml:"active" json:"active"`
	Focused    bool                `yaml:"focused" json:"focused"`
	Workspaces []WorkspaceSnapshot `yaml:"workspaces" json:"workspaces"`
}

// Snapshot is the full geometry state of a shell.
type Snapshot struct {
	Outputs []OutputSnapshot `yaml:"outputs" json:"outputs"`
}

// Snapshot captures the workspace's parameters and tiles.
func (w *Workspace) Snapshot() WorkspaceSnapshot {
	snap := WorkspaceSnapshot{
		ID:      w.id.String(),
		Index:   w.index,
		Layout:  w.Layout(),
		NMaster: w.NMaster(),
		MWFact:  w.mwfact,
	}
	for i, t := range w.Tiles() {
		snap.Tiles = append(snap.Tiles, TileSnapshot{
			ID:         t.id,
			Window:     t.window,
			Index:      i,
			Geometry:   t.current,
			Target:     t.target,
			Proportion: t.proportion,
			Floating:   t.floating,
			Fullscreen: t.fullscreen,
			Maximized:  t.maximized,
			Focused:    i == w.focused,
		})
	}
	return snap
}

// Snapshot captures the output and all of its workspaces.
func (o *OutputSpace) Snapshot() OutputSnapshot {
	snap := OutputSnapshot{
		ID:     o.id.String(),
		Name:   o.name,
		Size:   o.size,
		Active: o.active,
	}
	for _, ws := range o.workspaces {
		snap.Workspaces = append(snap.Workspaces, ws.Snapshot())
	}
	return snap
}

// Snapshot captures every attached output.
func (s *Shell) Snapshot() Snapshot {
	var snap Snapshot
	for i, o := range s.outputs {
		out := o.Snapshot()
		out.Focused = i == s.focused
		snap.Outputs = append(snap.Outputs, out)
	}
	return snap
}

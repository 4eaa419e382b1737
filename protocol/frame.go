// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/frame.go
// Summary: Codecs for render frames and layout snapshots.
// Usage: Frames carry one output's render list; snapshots carry the full shell geometry.

package protocol

import (
	"time"

	"github.com/google/uuid"

	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/geom"
	"github.com/framegrace/texeltile/internal/layout"
	"github.com/framegrace/texeltile/texel"
)

const (
	entryFocused uint8 = 1 << iota
	entryFloating
	entryClosing
	entryFullscreen
)

// Frame is the render list of one output at one instant.
type Frame struct {
	Output  string
	Elapsed time.Duration
	Entries []texel.RenderEntry
}

// FrameOf captures the current render list of o.
func FrameOf(o *texel.OutputSpace, elapsed time.Duration) Frame {
	return Frame{Output: o.Name(), Elapsed: elapsed, Entries: o.RenderList()}
}

func encodeRect(e *encoder, r geom.Rect) {
	e.i32(r.X)
	e.i32(r.Y)
	e.i32(r.W)
	e.i32(r.H)
}

func decodeRect(d *decoder) geom.Rect {
	return geom.Rect{X: d.i32(), Y: d.i32(), W: d.i32(), H: d.i32()}
}

// EncodeFrame serialises a render frame.
func EncodeFrame(f Frame) ([]byte, error) {
	var e encoder
	e.str(f.Output)
	e.u64(uint64(f.Elapsed))
	e.count(len(f.Entries))
	for _, en := range f.Entries {
		e.u64(uint64(en.Tile))
		e.str(string(en.Window))
		e.i32(en.Workspace)
		encodeRect(&e, en.Geometry)
		e.f64(en.Opacity)
		e.i32(en.CornerRadius)
		var flags uint8
		if en.Focused {
			flags |= entryFocused
		}
		if en.Floating {
			flags |= entryFloating
		}
		if en.Closing {
			flags |= entryClosing
		}
		if en.Fullscreen {
			flags |= entryFullscreen
		}
		e.u8(flags)
	}
	return e.bytes()
}

// DecodeFrame deserialises a render frame.
func DecodeFrame(b []byte) (Frame, error) {
	d := decoder{b: b}
	f := Frame{Output: d.str(), Elapsed: time.Duration(d.u64())}
	n := int(d.u16())
	for i := 0; i < n && d.err == nil; i++ {
		en := texel.RenderEntry{
			Tile:      texel.TileID(d.u64()),
			Window:    texel.WindowID(d.str()),
			Workspace: d.i32(),
			Geometry:  decodeRect(&d),
			Opacity:   d.f64(),
		}
		en.CornerRadius = d.i32()
		flags := d.u8()
		en.Focused = flags&entryFocused != 0
		en.Floating = flags&entryFloating != 0
		en.Closing = flags&entryClosing != 0
		en.Fullscreen = flags&entryFullscreen != 0
		f.Entries = append(f.Entries, en)
	}
	if err := d.finish(); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// EncodeSnapshot serialises a shell snapshot.
func EncodeSnapshot(s texel.Snapshot) ([]byte, error) {
	var e encoder
	e.count(len(s.Outputs))
	for _, o := range s.Outputs {
		id, err := uuid.Parse(o.ID)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrProtocol, "output id %q: %v", o.ID, err)
		}
		e.raw(id[:])
		e.str(o.Name)
		e.i32(o.Size.W)
		e.i32(o.Size.H)
		e.i32(o.Active)
		e.bool(o.Focused)
		e.count(len(o.Workspaces))
		for _, ws := range o.Workspaces {
			if err := encodeWorkspace(&e, ws); err != nil {
				return nil, err
			}
		}
	}
	return e.bytes()
}

func encodeWorkspace(e *encoder, ws texel.WorkspaceSnapshot) error {
	id, err := uuid.Parse(ws.ID)
	if err != nil {
		return errors.Wrapf(errors.ErrProtocol, "workspace id %q: %v", ws.ID, err)
	}
	e.raw(id[:])
	e.i32(ws.Index)
	e.str(ws.Layout.String())
	e.i32(ws.NMaster)
	e.f64(ws.MWFact)
	e.count(len(ws.Tiles))
	for _, t := range ws.Tiles {
		e.u64(uint64(t.ID))
		e.str(string(t.Window))
		e.i32(t.Index)
		encodeRect(e, t.Geometry)
		encodeRect(e, t.Target)
		e.f64(t.Proportion)
		e.bool(t.Floating)
		e.bool(t.Fullscreen)
		e.bool(t.Maximized)
		e.bool(t.Focused)
	}
	return nil
}

// DecodeSnapshot deserialises a shell snapshot.
func DecodeSnapshot(b []byte) (texel.Snapshot, error) {
	var snap texel.Snapshot
	d := decoder{b: b}
	outputs := int(d.u16())
	for i := 0; i < outputs && d.err == nil; i++ {
		var id uuid.UUID
		d.id(id[:])
		o := texel.OutputSnapshot{
			ID:   id.String(),
			Name: d.str(),
			Size: geom.Size{W: d.i32(), H: d.i32()},
		}
		o.Active = d.i32()
		o.Focused = d.bool()
		workspaces := int(d.u16())
		for j := 0; j < workspaces && d.err == nil; j++ {
			ws, err := decodeWorkspace(&d)
			if err != nil {
				return texel.Snapshot{}, err
			}
			o.Workspaces = append(o.Workspaces, ws)
		}
		snap.Outputs = append(snap.Outputs, o)
	}
	if err := d.finish(); err != nil {
		return texel.Snapshot{}, err
	}
	return snap, nil
}

func decodeWorkspace(d *decoder) (texel.WorkspaceSnapshot, error) {
	var id uuid.UUID
	d.id(id[:])
	ws := texel.WorkspaceSnapshot{ID: id.String(), Index: d.i32()}
	name := d.str()
	ws.NMaster = d.i32()
	ws.MWFact = d.f64()
	if d.err != nil {
		return ws, d.err
	}
	kind, err := layout.ParseKind(name)
	if err != nil {
		return ws, errors.Wrap(errors.ErrProtocol, err.Error())
	}
	ws.Layout = kind
	tiles := int(d.u16())
	for k := 0; k < tiles && d.err == nil; k++ {
		t := texel.TileSnapshot{
			ID:       texel.TileID(d.u64()),
			Window:   texel.WindowID(d.str()),
			Index:    d.i32(),
			Geometry: decodeRect(d),
			Target:   decodeRect(d),
		}
		t.Proportion = d.f64()
		t.Floating = d.bool()
		t.Fullscreen = d.bool()
		t.Maximized = d.bool()
		t.Focused = d.bool()
		ws.Tiles = append(ws.Tiles, t)
	}
	return ws, d.err
}

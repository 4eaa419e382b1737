// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/messages.go
// Summary: Payload codecs for handshake, keepalive, window and output events.

package protocol

import (
	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/internal/geom"
)

// Hello opens a stream or recording.
type Hello struct {
	ClientID   [16]byte
	ClientName string
}

// Welcome acknowledges Hello and assigns the session.
type Welcome struct {
	SessionID  [16]byte
	ServerName string
}

// Ping/Pong keep a connection alive.
type Ping struct {
	Timestamp int64
}

type Pong struct {
	Timestamp int64
}

// ErrorFrame communicates protocol-level errors.
type ErrorFrame struct {
	Code    uint16
	Message string
}

// WindowEventKind enumerates window lifecycle events.
type WindowEventKind uint8

const (
	WindowMap WindowEventKind = iota
	WindowUnmap
	WindowFocus
	WindowResize
)

func (k WindowEventKind) String() string {
	switch k {
	case WindowMap:
		return "map"
	case WindowUnmap:
		return "unmap"
	case WindowFocus:
		return "focus"
	case WindowResize:
		return "resize"
	default:
		return "unknown"
	}
}

// WindowEvent maps, unmaps, focuses or resizes a window by its external
// handle. Geometry is only carried by resize events.
type WindowEvent struct {
	Kind     WindowEventKind
	Window   string
	Geometry geom.Rect
}

// OutputEventKind enumerates display hotplug events.
type OutputEventKind uint8

const (
	OutputAttach OutputEventKind = iota
	OutputDetach
	OutputResize
	OutputFocus
)

func (k OutputEventKind) String() string {
	switch k {
	case OutputAttach:
		return "attach"
	case OutputDetach:
		return "detach"
	case OutputResize:
		return "resize"
	case OutputFocus:
		return "focus"
	default:
		return "unknown"
	}
}

// OutputEvent attaches, detaches, resizes or focuses a display. Width and
// Height are ignored for detach and focus.
type OutputEvent struct {
	Kind   OutputEventKind
	Name   string
	Width  int
	Height int
}

func EncodeHello(h Hello) ([]byte, error) {
	var e encoder
	e.raw(h.ClientID[:])
	e.str(h.ClientName)
	return e.bytes()
}

func DecodeHello(b []byte) (Hello, error) {
	var h Hello
	d := decoder{b: b}
	d.id(h.ClientID[:])
	h.ClientName = d.str()
	return h, d.finish()
}

func EncodeWelcome(w Welcome) ([]byte, error) {
	var e encoder
	e.raw(w.SessionID[:])
	e.str(w.ServerName)
	return e.bytes()
}

func DecodeWelcome(b []byte) (Welcome, error) {
	var w Welcome
	d := decoder{b: b}
	d.id(w.SessionID[:])
	w.ServerName = d.str()
	return w, d.finish()
}

func EncodePing(p Ping) ([]byte, error) {
	var e encoder
	e.u64(uint64(p.Timestamp))
	return e.bytes()
}

func DecodePing(b []byte) (Ping, error) {
	d := decoder{b: b}
	p := Ping{Timestamp: int64(d.u64())}
	return p, d.finish()
}

func EncodePong(p Pong) ([]byte, error) {
	return EncodePing(Ping(p))
}

func DecodePong(b []byte) (Pong, error) {
	p, err := DecodePing(b)
	return Pong(p), err
}

func EncodeErrorFrame(f ErrorFrame) ([]byte, error) {
	var e encoder
	e.u16(f.Code)
	e.str(f.Message)
	return e.bytes()
}

func DecodeErrorFrame(b []byte) (ErrorFrame, error) {
	d := decoder{b: b}
	f := ErrorFrame{Code: d.u16(), Message: d.str()}
	return f, d.finish()
}

func EncodeWindowEvent(ev WindowEvent) ([]byte, error) {
	if ev.Kind > WindowResize {
		return nil, errors.Wrapf(errors.ErrProtocol, "unknown window event kind %d", ev.Kind)
	}
	var e encoder
	e.u8(uint8(ev.Kind))
	e.str(ev.Window)
	if ev.Kind == WindowResize {
		encodeRect(&e, ev.Geometry)
	}
	return e.bytes()
}

func DecodeWindowEvent(b []byte) (WindowEvent, error) {
	d := decoder{b: b}
	ev := WindowEvent{Kind: WindowEventKind(d.u8()), Window: d.str()}
	if ev.Kind > WindowResize {
		return ev, errors.Wrapf(errors.ErrProtocol, "unknown window event kind %d", ev.Kind)
	}
	if ev.Kind == WindowResize {
		ev.Geometry = decodeRect(&d)
	}
	if err := d.finish(); err != nil {
		return ev, err
	}
	return ev, nil
}

func EncodeOutputEvent(ev OutputEvent) ([]byte, error) {
	if ev.Kind > OutputFocus {
		return nil, errors.Wrapf(errors.ErrProtocol, "unknown output event kind %d", ev.Kind)
	}
	var e encoder
	e.u8(uint8(ev.Kind))
	e.str(ev.Name)
	e.i32(ev.Width)
	e.i32(ev.Height)
	return e.bytes()
}

func DecodeOutputEvent(b []byte) (OutputEvent, error) {
	d := decoder{b: b}
	ev := OutputEvent{Kind: OutputEventKind(d.u8()), Name: d.str(), Width: d.i32(), Height: d.i32()}
	if err := d.finish(); err != nil {
		return ev, err
	}
	if ev.Kind > OutputFocus {
		return ev, errors.Wrapf(errors.ErrProtocol, "unknown output event kind %d", ev.Kind)
	}
	return ev, nil
}

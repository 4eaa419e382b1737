// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/messages_test.go
// Summary: Exercises payload codecs against live shell state.

package protocol

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/framegrace/texeltile/internal/geom"
	"github.com/framegrace/texeltile/texel"
)

func newShell(t *testing.T) (*texel.Shell, *texel.OutputSpace) {
	t.Helper()
	sh := texel.NewShell(texel.DefaultSettings(), zerolog.Nop())
	o, err := sh.AttachOutput("eDP-1", geom.Size{W: 1280, H: 720})
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	for _, w := range []texel.WindowID{"term", "editor", "browser"} {
		if _, err := sh.MapWindow(w); err != nil {
			t.Fatalf("map %s failed: %v", w, err)
		}
	}
	return sh, o
}

func TestHelloRoundTrip(t *testing.T) {
	var id [16]byte
	copy(id[:], []byte("client-abcdefghi"))
	hello := Hello{ClientID: id, ClientName: "texeltile-inspect"}
	payload, err := EncodeHello(hello)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeHello(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != hello {
		t.Fatalf("mismatch: %#v vs %#v", decoded, hello)
	}
}

func TestErrorFrameRejectsTrailingBytes(t *testing.T) {
	payload, err := EncodeErrorFrame(ErrorFrame{Code: 500, Message: "bad things"})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if _, err := DecodeErrorFrame(append(payload, 0)); !errors.Is(err, errExtraBytes) {
		t.Fatalf("expected trailing data error, got %v", err)
	}
	if _, err := DecodeErrorFrame(payload[:3]); !errors.Is(err, errPayloadShort) {
		t.Fatalf("expected short payload error, got %v", err)
	}
}

func TestStringTooLong(t *testing.T) {
	_, err := EncodeWindowEvent(WindowEvent{Kind: WindowMap, Window: strings.Repeat("x", 0x10000)})
	if !errors.Is(err, errStringTooLong) {
		t.Fatalf("expected string too long, got %v", err)
	}
}

func TestEventRoundTrips(t *testing.T) {
	win := WindowEvent{Kind: WindowFocus, Window: "editor"}
	payload, err := EncodeWindowEvent(win)
	if err != nil {
		t.Fatalf("encode window event: %v", err)
	}
	gotWin, err := DecodeWindowEvent(payload)
	if err != nil || gotWin != win {
		t.Fatalf("window event mismatch: %#v (%v)", gotWin, err)
	}

	out := OutputEvent{Kind: OutputResize, Name: "HDMI-A-1", Width: 1920, Height: -1}
	payload, err = EncodeOutputEvent(out)
	if err != nil {
		t.Fatalf("encode output event: %v", err)
	}
	gotOut, err := DecodeOutputEvent(payload)
	if err != nil || gotOut != out {
		t.Fatalf("output event mismatch: %#v (%v)", gotOut, err)
	}

	if _, err := DecodeWindowEvent([]byte{9, 0, 0}); err == nil {
		t.Fatalf("expected unknown kind to be rejected")
	}
}

func TestWindowResizeCarriesGeometry(t *testing.T) {
	ev := WindowEvent{Kind: WindowResize, Window: "editor", Geometry: geom.Rect{X: -20, Y: 40, W: 640, H: 480}}
	payload, err := EncodeWindowEvent(ev)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeWindowEvent(payload)
	if err != nil || got != ev {
		t.Fatalf("resize event mismatch: %#v (%v)", got, err)
	}
	if ev.Kind.String() != "resize" {
		t.Fatalf("unexpected kind name %q", ev.Kind)
	}
	if _, err := DecodeWindowEvent(payload[:len(payload)-4]); !errors.Is(err, errPayloadShort) {
		t.Fatalf("expected short payload error, got %v", err)
	}

	// Geometry is not part of the other kinds.
	focus, err := EncodeWindowEvent(WindowEvent{Kind: WindowFocus, Window: "editor", Geometry: ev.Geometry})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(focus) != len(payload)-16 {
		t.Fatalf("focus payload is %d bytes, resize %d", len(focus), len(payload))
	}
}

func TestFrameMarksFullscreenEntries(t *testing.T) {
	sh, o := newShell(t)
	if err := sh.SetFullscreen("editor", true); err != nil {
		t.Fatalf("fullscreen failed: %v", err)
	}
	frame := FrameOf(o, 0)
	payload, err := EncodeFrame(frame)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeFrame(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	last := decoded.Entries[len(decoded.Entries)-1]
	if last.Window != "editor" || !last.Fullscreen {
		t.Fatalf("expected editor fullscreen on top, got %#v", last)
	}

	snap, err := EncodeSnapshot(sh.Snapshot())
	if err != nil {
		t.Fatalf("encode snapshot failed: %v", err)
	}
	got, err := DecodeSnapshot(snap)
	if err != nil {
		t.Fatalf("decode snapshot failed: %v", err)
	}
	if !reflect.DeepEqual(got, sh.Snapshot()) {
		t.Fatalf("snapshot mismatch after fullscreen")
	}
}

func TestFrameRoundTrip(t *testing.T) {
	sh, o := newShell(t)
	if err := sh.SwitchWorkspace(1); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	sh.Tick(time.Unix(0, 0))
	sh.Tick(time.Unix(0, int64(50*time.Millisecond)))

	frame := FrameOf(o, 50*time.Millisecond)
	if len(frame.Entries) != 3 {
		t.Fatalf("expected 3 entries mid-switch, got %d", len(frame.Entries))
	}
	payload, err := EncodeFrame(frame)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeFrame(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(decoded, frame) {
		t.Fatalf("frame mismatch:\n got %#v\nwant %#v", decoded, frame)
	}
}

func TestSnapshotRoundTripThroughStream(t *testing.T) {
	sh, _ := newShell(t)
	sh.SelectNextLayout()
	snap := sh.Snapshot()

	payload, err := EncodeSnapshot(snap)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, Header{Version: Version, Type: MsgSnapshot, Flags: FlagChecksum}, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	hdr, body, err := ReadMessage(buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if hdr.Type != MsgSnapshot {
		t.Fatalf("unexpected type %v", hdr.Type)
	}
	decoded, err := DecodeSnapshot(body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(decoded, snap) {
		t.Fatalf("snapshot mismatch:\n got %#v\nwant %#v", decoded, snap)
	}
}

func TestSnapshotRejectsTruncation(t *testing.T) {
	sh, _ := newShell(t)
	payload, err := EncodeSnapshot(sh.Snapshot())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if _, err := DecodeSnapshot(payload[:len(payload)-3]); err == nil {
		t.Fatalf("expected truncated snapshot to fail")
	}
}

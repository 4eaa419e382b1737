// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/protocol_test.go
// Summary: Exercises framing to keep recordings and streams readable across releases.
// Notes: Keep changes backward-compatible; any additions require coordinated version bumps.

package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"

	terrors "github.com/framegrace/texeltile/internal/errors"
)

func TestWriteReadRoundTrip(t *testing.T) {
	session := uuid.New()
	header := Header{
		Version:   Version,
		Type:      MsgFrame,
		Flags:     FlagChecksum,
		Sequence:  42,
		SessionID: session,
	}
	payload := []byte("hello world")

	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	gotHeader, gotPayload, err := ReadMessage(buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if gotHeader.Type != header.Type || gotHeader.Sequence != header.Sequence {
		t.Fatalf("header mismatch: %+v vs %+v", gotHeader, header)
	}
	if uuid.UUID(gotHeader.SessionID) != session {
		t.Fatalf("session mismatch: %v vs %v", uuid.UUID(gotHeader.SessionID), session)
	}
	if !bytes.Equal(gotPayload, payload) {
		t.Fatalf("payload mismatch: %q vs %q", gotPayload, payload)
	}

	if _, _, err := ReadMessage(buf); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF at end of stream, got %v", err)
	}
}

func TestReadMessageInvalidMagic(t *testing.T) {
	data := make([]byte, headerSize)
	if _, _, err := ReadMessage(bytes.NewReader(data)); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("expected ErrInvalidMagic, got %v", err)
	}
	if _, _, err := ReadMessage(bytes.NewReader(data)); !terrors.Is(err, terrors.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

func TestChecksumMismatch(t *testing.T) {
	header := Header{Version: Version, Type: MsgPing, Flags: FlagChecksum}
	payload := []byte("ping")
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF

	if _, _, err := ReadMessage(bytes.NewReader(raw)); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestUnsupportedVersion(t *testing.T) {
	header := Header{Version: Version, Type: MsgHello}
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data := buf.Bytes()
	data[4] = Version + 1

	if _, _, err := ReadMessage(bytes.NewReader(data)); !errors.Is(err, ErrUnsupportedVer) {
		t.Fatalf("expected unsupported version, got %v", err)
	}
}

func TestShortPayload(t *testing.T) {
	header := Header{Version: Version, Type: MsgHello, Flags: FlagChecksum}
	payload := []byte("payload")
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	truncated := buf.Bytes()[:headerSize+2]
	if _, _, err := ReadMessage(bytes.NewReader(truncated)); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("expected short payload error, got %v", err)
	}
	if _, _, err := ReadMessage(bytes.NewReader(buf.Bytes()[:10])); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("expected short header error, got %v", err)
	}
}

func TestOversizedPayloadRejected(t *testing.T) {
	header := Header{Version: Version, Type: MsgFrame}
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data := buf.Bytes()
	data[32], data[33], data[34], data[35] = 0xFF, 0xFF, 0xFF, 0x7F

	if _, _, err := ReadMessage(bytes.NewReader(data)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected payload too large, got %v", err)
	}
}

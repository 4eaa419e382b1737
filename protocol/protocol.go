// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/protocol.go
// Summary: Frame header and framing for texeltile recordings and IPC streams.
// Usage: WriteMessage/ReadMessage wrap every payload produced by the codecs in messages.go.
// Notes: Keep changes backward-compatible; any additions require a version bump.

// Package protocol defines the binary framing used to stream render frames,
// layout snapshots and window events between texeltile and its peers.
package protocol

import (
	"encoding/binary"
	stderrors "errors"
	"hash/crc32"
	"io"

	"github.com/framegrace/texeltile/internal/errors"
)

const (
	magic      uint32 = 0x54544c01 // "TTL\x01"
	headerSize        = 40
)

// Flag bits for the header Flags byte.
const (
	FlagChecksum uint8 = 0x01
)

// Version is the protocol version implemented by this package.
const Version uint8 = 1

// MaxPayload bounds the declared payload length accepted by ReadMessage.
const MaxPayload = 16 << 20

// MessageType enumerates the message categories.
type MessageType uint8

const (
	MsgHello MessageType = iota
	MsgWelcome
	MsgPing
	MsgPong
	MsgError
	MsgFrame
	MsgSnapshot
	MsgWindowEvent
	MsgOutputEvent
)

func (t MessageType) String() string {
	switch t {
	case MsgHello:
		return "hello"
	case MsgWelcome:
		return "welcome"
	case MsgPing:
		return "ping"
	case MsgPong:
		return "pong"
	case MsgError:
		return "error"
	case MsgFrame:
		return "frame"
	case MsgSnapshot:
		return "snapshot"
	case MsgWindowEvent:
		return "window-event"
	case MsgOutputEvent:
		return "output-event"
	default:
		return "unknown"
	}
}

// Header describes the fixed portion of every frame exchanged over the wire.
type Header struct {
	Version    uint8
	Type       MessageType
	Flags      uint8
	Reserved   uint8
	SessionID  [16]byte
	Sequence   uint64
	PayloadLen uint32
	Checksum   uint32
}

var (
	ErrInvalidMagic     = errors.Wrap(errors.ErrProtocol, "invalid magic")
	ErrUnsupportedVer   = errors.Wrap(errors.ErrProtocol, "unsupported version")
	ErrShortPayload     = errors.Wrap(errors.ErrProtocol, "payload shorter than declared length")
	ErrChecksumMismatch = errors.Wrap(errors.ErrProtocol, "checksum mismatch")
	ErrPayloadTooLarge  = errors.Wrap(errors.ErrProtocol, "payload too large")
)

// WriteMessage serialises the header and payload to the provided writer. The
// payload slice is written as-is; callers retain ownership of the buffer.
func WriteMessage(w io.Writer, hdr Header, payload []byte) error {
	if len(payload) > MaxPayload {
		return ErrPayloadTooLarge
	}
	hdr.PayloadLen = uint32(len(payload))

	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:], magic)
	buf[4] = hdr.Version
	buf[5] = byte(hdr.Type)
	buf[6] = hdr.Flags
	buf[7] = hdr.Reserved
	copy(buf[8:24], hdr.SessionID[:])
	binary.LittleEndian.PutUint64(buf[24:32], hdr.Sequence)
	binary.LittleEndian.PutUint32(buf[32:36], hdr.PayloadLen)

	checksum := hdr.Checksum
	if hdr.Flags&FlagChecksum != 0 {
		checksum = frameChecksum(buf[4:36], payload)
	}
	binary.LittleEndian.PutUint32(buf[36:40], checksum)

	if _, err := w.Write(buf); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// ReadMessage reads a header and payload from r. The returned payload points to
// a freshly allocated slice sized to the declared payload length. A clean end
// of stream before any header byte returns io.EOF.
func ReadMessage(r io.Reader) (Header, []byte, error) {
	var hdr Header
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return hdr, nil, ErrShortPayload
		}
		return hdr, nil, err
	}

	if binary.LittleEndian.Uint32(buf[0:4]) != magic {
		return hdr, nil, ErrInvalidMagic
	}

	hdr.Version = buf[4]
	hdr.Type = MessageType(buf[5])
	hdr.Flags = buf[6]
	hdr.Reserved = buf[7]
	copy(hdr.SessionID[:], buf[8:24])
	hdr.Sequence = binary.LittleEndian.Uint64(buf[24:32])
	hdr.PayloadLen = binary.LittleEndian.Uint32(buf[32:36])
	hdr.Checksum = binary.LittleEndian.Uint32(buf[36:40])

	if hdr.Version != Version {
		return hdr, nil, ErrUnsupportedVer
	}
	if hdr.PayloadLen > MaxPayload {
		return hdr, nil, ErrPayloadTooLarge
	}

	payload := make([]byte, hdr.PayloadLen)
	if hdr.PayloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if stderrors.Is(err, io.ErrUnexpectedEOF) || stderrors.Is(err, io.EOF) {
				return hdr, nil, ErrShortPayload
			}
			return hdr, nil, err
		}
	}

	if hdr.Flags&FlagChecksum != 0 && frameChecksum(buf[4:36], payload) != hdr.Checksum {
		return hdr, nil, ErrChecksumMismatch
	}

	return hdr, payload, nil
}

func frameChecksum(header, payload []byte) uint32 {
	crc := crc32.NewIEEE()
	_, _ = crc.Write(header)
	if len(payload) > 0 {
		_, _ = crc.Write(payload)
	}
	return crc.Sum32()
}

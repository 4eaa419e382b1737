// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/codec.go
// Summary: Little-endian field helpers shared by the message codecs.

package protocol

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/framegrace/texeltile/internal/errors"
)

var (
	errStringTooLong = errors.Wrap(errors.ErrProtocol, "string exceeds 64KB limit")
	errListTooLong   = errors.Wrap(errors.ErrProtocol, "list exceeds 65535 entries")
	errPayloadShort  = errors.Wrap(errors.ErrProtocol, "payload too short")
	errExtraBytes    = errors.Wrap(errors.ErrProtocol, "payload has trailing data")
)

// encoder appends fields to a buffer. bytes.Buffer writes never fail, so
// only length checks produce errors.
type encoder struct {
	buf bytes.Buffer
	err error
}

func (e *encoder) u8(v uint8) { e.buf.WriteByte(v) }

func (e *encoder) bool(v bool) {
	if v {
		e.u8(1)
	} else {
		e.u8(0)
	}
}

func (e *encoder) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) i32(v int) { e.u32(uint32(int32(v))) }

func (e *encoder) f64(v float64) { e.u64(math.Float64bits(v)) }

func (e *encoder) raw(b []byte) { e.buf.Write(b) }

func (e *encoder) str(s string) {
	if len(s) > 0xFFFF {
		e.fail(errStringTooLong)
		return
	}
	e.u16(uint16(len(s)))
	e.buf.WriteString(s)
}

func (e *encoder) count(n int) {
	if n > 0xFFFF {
		e.fail(errListTooLong)
		return
	}
	e.u16(uint16(n))
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *encoder) bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

// decoder consumes fields from a payload. The first short read sticks; later
// reads return zero values.
type decoder struct {
	b   []byte
	err error
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.b) < n {
		d.err = errPayloadShort
		d.b = nil
		return nil
	}
	out := d.b[:n]
	d.b = d.b[n:]
	return out
}

func (d *decoder) u8() uint8 {
	if b := d.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *decoder) bool() bool { return d.u8() != 0 }

func (d *decoder) u16() uint16 {
	if b := d.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (d *decoder) u32() uint32 {
	if b := d.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (d *decoder) u64() uint64 {
	if b := d.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (d *decoder) i32() int { return int(int32(d.u32())) }

func (d *decoder) f64() float64 { return math.Float64frombits(d.u64()) }

func (d *decoder) id(dst []byte) {
	if b := d.take(len(dst)); b != nil {
		copy(dst, b)
	}
}

func (d *decoder) str() string {
	n := int(d.u16())
	if b := d.take(n); b != nil {
		return string(b)
	}
	return ""
}

// finish reports the first decode error, or trailing bytes.
func (d *decoder) finish() error {
	if d.err != nil {
		return d.err
	}
	if len(d.b) != 0 {
		return errExtraBytes
	}
	return nil
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/stream.go
// Summary: Sequenced writer and reader over WriteMessage/ReadMessage.
// Usage: simulate records frames and snapshots; inspect reads them back.

package protocol

import (
	stderrors "errors"
	"io"

	"github.com/google/uuid"

	"github.com/framegrace/texeltile/internal/errors"
	"github.com/framegrace/texeltile/texel"
)

// Recorder writes checksummed, sequenced messages for one session.
type Recorder struct {
	w       io.Writer
	session uuid.UUID
	seq     uint64
}

// NewRecorder starts a session on w and writes its Hello.
func NewRecorder(w io.Writer, clientName string) (*Recorder, error) {
	r := &Recorder{w: w, session: uuid.New()}
	payload, err := EncodeHello(Hello{ClientID: r.session, ClientName: clientName})
	if err != nil {
		return nil, err
	}
	if err := r.write(MsgHello, payload); err != nil {
		return nil, err
	}
	return r, nil
}

// Session returns the session identifier stamped on every header.
func (r *Recorder) Session() uuid.UUID { return r.session }

func (r *Recorder) write(t MessageType, payload []byte) error {
	hdr := Header{
		Version:   Version,
		Type:      t,
		Flags:     FlagChecksum,
		SessionID: r.session,
		Sequence:  r.seq,
	}
	r.seq++
	return WriteMessage(r.w, hdr, payload)
}

// Frame records a render frame.
func (r *Recorder) Frame(f Frame) error {
	payload, err := EncodeFrame(f)
	if err != nil {
		return err
	}
	return r.write(MsgFrame, payload)
}

// Snapshot records a shell snapshot.
func (r *Recorder) Snapshot(s texel.Snapshot) error {
	payload, err := EncodeSnapshot(s)
	if err != nil {
		return err
	}
	return r.write(MsgSnapshot, payload)
}

// WindowEvent records a window event.
func (r *Recorder) WindowEvent(ev WindowEvent) error {
	payload, err := EncodeWindowEvent(ev)
	if err != nil {
		return err
	}
	return r.write(MsgWindowEvent, payload)
}

// OutputEvent records an output event.
func (r *Recorder) OutputEvent(ev OutputEvent) error {
	payload, err := EncodeOutputEvent(ev)
	if err != nil {
		return err
	}
	return r.write(MsgOutputEvent, payload)
}

// Message is one decoded message. Exactly one of the payload fields is set.
type Message struct {
	Header      Header
	Hello       *Hello
	Frame       *Frame
	Snapshot    *texel.Snapshot
	WindowEvent *WindowEvent
	OutputEvent *OutputEvent
	Error       *ErrorFrame
}

// ReadAll decodes every message in r until EOF. Sequence numbers must be
// contiguous within a session.
func ReadAll(r io.Reader) ([]Message, error) {
	var out []Message
	var next uint64
	for {
		hdr, payload, err := ReadMessage(r)
		if stderrors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if hdr.Type == MsgHello {
			next = hdr.Sequence
		}
		if hdr.Sequence != next {
			return out, errors.Wrapf(errors.ErrProtocol, "sequence %d, expected %d", hdr.Sequence, next)
		}
		next++

		msg, err := decodeMessage(hdr, payload)
		if err != nil {
			return out, errors.Wrapf(err, "message %d (%s)", hdr.Sequence, hdr.Type)
		}
		out = append(out, msg)
	}
}

func decodeMessage(hdr Header, payload []byte) (Message, error) {
	msg := Message{Header: hdr}
	switch hdr.Type {
	case MsgHello:
		v, err := DecodeHello(payload)
		msg.Hello = &v
		return msg, err
	case MsgFrame:
		v, err := DecodeFrame(payload)
		msg.Frame = &v
		return msg, err
	case MsgSnapshot:
		v, err := DecodeSnapshot(payload)
		msg.Snapshot = &v
		return msg, err
	case MsgWindowEvent:
		v, err := DecodeWindowEvent(payload)
		msg.WindowEvent = &v
		return msg, err
	case MsgOutputEvent:
		v, err := DecodeOutputEvent(payload)
		msg.OutputEvent = &v
		return msg, err
	case MsgError:
		v, err := DecodeErrorFrame(payload)
		msg.Error = &v
		return msg, err
	case MsgPing, MsgPong, MsgWelcome:
		return msg, nil
	default:
		return msg, errors.Wrapf(errors.ErrProtocol, "unknown message type %d", hdr.Type)
	}
}

// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "github.com/drawbot/armctl/conn/frame"

// rxState is the receiver's byte-wise framing state, per spec.md §4.9.
type rxState int

const (
	seekSFD rxState = iota
	seekVER
	body
)

// historyLen bounds the diagnostic ring of the last validated inbound CODE
// bytes, carried from the original daemon's own small event history per
// SPEC_FULL.md §3.
const historyLen = 8

// Receiver is the byte-at-a-time V01 framing state machine. It never
// blocks: FeedByte consumes one byte and returns immediately.
type Receiver struct {
	state   rxState
	buf     []byte
	history []byte
}

// NewReceiver returns a Receiver ready to seek the next V01 frame.
func NewReceiver() *Receiver {
	return &Receiver{state: seekSFD}
}

// Outcome reports what happened after feeding one byte.
type Outcome int

const (
	// None means the byte was consumed with no frame-level event to report.
	None Outcome = iota
	// Frame means a complete, CRC-valid V01 frame was assembled.
	Frame
	// BadVersion means the byte following SFD was not the expected version.
	BadVersion
	// Corrupt means a complete frame's CRC did not validate.
	Corrupt
)

// FeedByte advances the state machine by one inbound byte. When the
// returned Outcome is Frame, ef holds the validated frame; it is the zero
// value otherwise.
func (r *Receiver) FeedByte(b byte) (Outcome, frame.EventFrame) {
	switch r.state {
	case seekSFD:
		if b == frame.SFD {
			r.buf = []byte{b}
			r.state = seekVER
		}
		return None, frame.EventFrame{}
	case seekVER:
		if b != byte(frame.V01) {
			// The delimiter found so far is discarded along with the
			// version byte, per spec.md §4.9.
			r.buf = nil
			r.state = seekSFD
			return BadVersion, frame.EventFrame{}
		}
		r.buf = append(r.buf, b)
		r.state = body
		return None, frame.EventFrame{}
	case body:
		r.buf = append(r.buf, b)
		if len(r.buf) < frame.V01.Size() {
			return None, frame.EventFrame{}
		}
		r.state = seekSFD
		buf := r.buf
		r.buf = nil
		ef, err := frame.UnpackEvent(buf)
		if err != nil {
			return Corrupt, frame.EventFrame{}
		}
		r.recordHistory(byte(ef.Code))
		return Frame, ef
	}
	return None, frame.EventFrame{}
}

func (r *Receiver) recordHistory(code byte) {
	r.history = append(r.history, code)
	if len(r.history) > historyLen {
		r.history = r.history[len(r.history)-historyLen:]
	}
}

// History returns the last few validated inbound CODE bytes, newest last,
// for diagnostic use (printing it is outside the core, per spec.md §1).
func (r *Receiver) History() []byte {
	out := make([]byte, len(r.history))
	copy(out, r.history)
	return out
}

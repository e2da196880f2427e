// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import (
	"time"

	"github.com/drawbot/armctl/armerr"
	"github.com/drawbot/armctl/conn/frame"
	"github.com/drawbot/armctl/notify"
)

// txState is the sender's stop-and-wait state, per spec.md §4.8.
type txState int

const (
	// Ready means no frame is outstanding; the next one (if any) may be sent.
	Ready txState = iota
	// AwaitAck means exactly one frame is outstanding, awaiting ACK/RESEND/timeout.
	AwaitAck
	// Done means every frame has been transmitted and acknowledged.
	Done
)

// ResendTimeout is the default time the sender waits for an ACK before
// retransmitting, per spec.md §4.8. Use SetResendTimeout to override it.
const ResendTimeout = 5 * time.Second

// pollInterval bounds CPU use in the cooperative event loop, per spec.md
// §9's "non-blocking serial polled in a tight loop" design note.
const pollInterval = 2 * time.Millisecond

// FrameSource supplies the next outbound V02 wire buffer to transmit, in
// order. It returns ok=false once exhausted.
type FrameSource interface {
	Next() (buf []byte, ok bool, err error)
}

// Sender drives the stop-and-wait loop described in spec.md §4.8 over a
// Port, consuming frames from a FrameSource and reporting to a Notifier.
type Sender struct {
	port     Port
	src      FrameSource
	notifier notify.Notifier
	recv     *Receiver

	state         txState
	current       []byte
	frameIndex    int
	lastTx        time.Time
	resends       int
	resendTimeout time.Duration
}

// NewSender builds a Sender ready to run, using ResendTimeout as the
// default resend timeout.
func NewSender(port Port, src FrameSource, notifier notify.Notifier) *Sender {
	return &Sender{
		port:          port,
		src:           src,
		notifier:      notifier,
		recv:          NewReceiver(),
		state:         Ready,
		frameIndex:    -1,
		resendTimeout: ResendTimeout,
	}
}

// SetResendTimeout overrides the resend timeout; a non-positive value is
// ignored.
func (s *Sender) SetResendTimeout(d time.Duration) {
	if d > 0 {
		s.resendTimeout = d
	}
}

// Run drives the cooperative event loop until every frame is acknowledged
// (returns nil) or a fatal error occurs (ControllerFault, SerialIO, or a
// FrameCorrupt self-check failure on an outbound frame).
func (s *Sender) Run(now func() time.Time) error {
	for {
		if s.state == Done {
			return nil
		}
		if err := s.pollInbound(now); err != nil {
			return err
		}
		if s.state == Done {
			return nil
		}
		if s.state == AwaitAck && now().Sub(s.lastTx) > s.resendTimeout {
			if err := s.retransmit(now); err != nil {
				return err
			}
		}
		if s.state == Ready {
			done, err := s.transmitNext(now)
			if err != nil {
				return err
			}
			if done {
				s.state = Done
				return nil
			}
		}
		time.Sleep(pollInterval)
	}
}

// pollInbound performs one non-blocking read attempt and feeds the byte to
// the receiver if one was available.
func (s *Sender) pollInbound(now func() time.Time) error {
	b, ok, err := s.port.ReadByte()
	if err != nil {
		return armerr.Wrap(armerr.SerialIO, s.frameIndex, "serial read", err)
	}
	if !ok {
		return nil
	}
	outcome, ef := s.recv.FeedByte(b)
	switch outcome {
	case Frame:
		return s.handleEvent(ef.Code, now)
	case BadVersion, Corrupt:
		// Recovered locally: resync at the next SFD, await the timeout.
		return nil
	default:
		return nil
	}
}

func (s *Sender) handleEvent(code int16, now func() time.Time) error {
	if s.state != AwaitAck {
		return nil
	}
	switch classify(code) {
	case EventAck:
		s.state = Ready
		theta1, theta2, d3 := decodeMotionFields(s.current)
		s.notifier.State(s.frameIndex, theta1, theta2, d3)
		s.current = nil
	case EventResend:
		return s.retransmit(now)
	case EventFault:
		info := faultTable[code]
		s.notifier.Message(info.title, info.severity, info.footnote)
		return armerr.New(armerr.ControllerFault, info.title)
	case EventUnknown:
		s.notifier.Message("Unknown Controller Event", notify.Warning, "unrecognized inbound CODE")
	}
	return nil
}

// retransmit re-sends the exact bytes of the current outbound frame:
// retransmissions preserve identity, not a regenerated frame.
func (s *Sender) retransmit(now func() time.Time) error {
	if s.current == nil {
		return nil
	}
	if err := s.port.Write(s.current); err != nil {
		return armerr.Wrap(armerr.SerialIO, s.frameIndex, "serial write", err)
	}
	s.resends++
	s.lastTx = now()
	return nil
}

// transmitNext fetches and sends the next frame if one is available,
// transitioning to AwaitAck. If the source is exhausted, done is true.
func (s *Sender) transmitNext(now func() time.Time) (done bool, err error) {
	buf, ok, err := s.src.Next()
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	if scErr := frameSelfCheck(buf); scErr != nil {
		return false, scErr
	}
	if werr := s.port.Write(buf); werr != nil {
		return false, armerr.Wrap(armerr.SerialIO, s.frameIndex+1, "serial write", werr)
	}
	s.current = buf
	s.frameIndex++
	s.lastTx = now()
	s.state = AwaitAck
	return false, nil
}

// frameSelfCheck runs frame.SelfCheck on an outbound frame immediately
// before transmission and returns its FrameCorrupt error unchanged; the
// failure is fatal to Run.
func frameSelfCheck(buf []byte) error {
	if err := frame.SelfCheck(buf); err != nil {
		return err
	}
	return nil
}

// decodeMotionFields extracts theta1/theta2/d3 from a packed V02 buffer for
// the State notification fired on a successful ACK.
func decodeMotionFields(buf []byte) (theta1, theta2, d3 int16) {
	mf, err := frame.UnpackMotion(buf)
	if err != nil {
		return 0, 0, 0
	}
	return mf.Theta1, mf.Theta2, mf.D3
}

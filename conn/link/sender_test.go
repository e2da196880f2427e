// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import (
	"errors"
	"testing"
	"time"

	"github.com/drawbot/armctl/armerr"
	"github.com/drawbot/armctl/conn/frame"
	"github.com/drawbot/armctl/notify"
)

// fakePort is an in-memory, non-blocking Port: Write appends to sent,
// ReadByte drains a pre-loaded inbound queue one byte at a time.
type fakePort struct {
	sent   [][]byte
	inbox  []byte
	cursor int
}

func (p *fakePort) Write(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	p.sent = append(p.sent, cp)
	return nil
}

func (p *fakePort) ReadByte() (byte, bool, error) {
	if p.cursor >= len(p.inbox) {
		return 0, false, nil
	}
	b := p.inbox[p.cursor]
	p.cursor++
	return b, true, nil
}

func (p *fakePort) queue(buf []byte) {
	p.inbox = append(p.inbox, buf...)
}

// sliceSource is a FrameSource over a fixed slice of wire buffers.
type sliceSource struct {
	bufs [][]byte
	i    int
}

func (s *sliceSource) Next() ([]byte, bool, error) {
	if s.i >= len(s.bufs) {
		return nil, false, nil
	}
	b := s.bufs[s.i]
	s.i++
	return b, true, nil
}

type fakeNotifier struct {
	messages []string
	states   int
}

func (n *fakeNotifier) Message(title string, severity notify.Severity, footnote string) {
	n.messages = append(n.messages, title)
}
func (n *fakeNotifier) State(frameIndex int, theta1, theta2, d3 int16) { n.states++ }

// clock is a controllable time source for deterministic timeout tests.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestSender_HappyPath(t *testing.T) {
	port := &fakePort{}
	src := &sliceSource{bufs: [][]byte{
		frame.PackMotion(frame.MotionFrame{Theta1: 1, Theta2: 2, D3: 3}),
		frame.PackMotion(frame.MotionFrame{Theta1: 4, Theta2: 5, D3: 6}),
	}}
	n := &fakeNotifier{}
	s := NewSender(port, src, n)

	c := &clock{t: time.Unix(0, 0)}
	// Step 1: transmits frame 0, AwaitAck.
	if err := step(s, c); err != nil {
		t.Fatal(err)
	}
	if s.state != AwaitAck || len(port.sent) != 1 {
		t.Fatalf("want AwaitAck with 1 sent frame, got state=%v sent=%d", s.state, len(port.sent))
	}
	port.queue(frame.PackEvent(frame.EventFrame{Code: 41}))
	if err := drain(s, c, port); err != nil {
		t.Fatal(err)
	}
	// The iteration that handles the ACK finds the sender Ready and
	// transmits frame 1 before returning.
	if s.state != AwaitAck || n.states != 1 || len(port.sent) != 2 {
		t.Fatalf("want frame 1 in flight after ACK with 1 state notification, got state=%v states=%d sent=%d", s.state, n.states, len(port.sent))
	}
	if err := step(s, c); err != nil {
		t.Fatal(err)
	}
	if len(port.sent) != 2 {
		t.Fatalf("want 2 frames sent, got %d", len(port.sent))
	}
	port.queue(frame.PackEvent(frame.EventFrame{Code: 41}))
	if err := drain(s, c, port); err != nil {
		t.Fatal(err)
	}
	if s.state != Ready {
		t.Fatalf("want Ready, got %v", s.state)
	}
	done, err := s.transmitNext(c.now)
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Fatal("want source exhausted")
	}
}

// step runs exactly one iteration of the loop body (poll, timeout check,
// send-if-ready) without the blocking Run loop's sleep, for deterministic
// single-step tests.
func step(s *Sender, c *clock) error {
	if err := s.pollInbound(c.now); err != nil {
		return err
	}
	if s.state == AwaitAck && c.now().Sub(s.lastTx) > s.resendTimeout {
		if err := s.retransmit(c.now); err != nil {
			return err
		}
	}
	if s.state == Ready {
		if _, err := s.transmitNext(c.now); err != nil {
			return err
		}
	}
	return nil
}

// drain runs step until every byte queued on port has been fed to the
// receiver, stopping at the first error. The loop reads at most one inbound
// byte per iteration, so a queued V01 frame takes one step per byte.
func drain(s *Sender, c *clock, port *fakePort) error {
	for port.cursor < len(port.inbox) {
		if err := step(s, c); err != nil {
			return err
		}
	}
	return nil
}

func TestSender_ResendOnTimeout(t *testing.T) {
	port := &fakePort{}
	src := &sliceSource{bufs: [][]byte{frame.PackMotion(frame.MotionFrame{Theta1: 1})}}
	n := &fakeNotifier{}
	s := NewSender(port, src, n)
	c := &clock{t: time.Unix(0, 0)}

	if err := step(s, c); err != nil {
		t.Fatal(err)
	}
	if len(port.sent) != 1 {
		t.Fatalf("want 1 frame sent, got %d", len(port.sent))
	}
	c.advance(ResendTimeout + time.Millisecond)
	if err := step(s, c); err != nil {
		t.Fatal(err)
	}
	if len(port.sent) != 2 {
		t.Fatalf("want 2 frames sent after timeout, got %d", len(port.sent))
	}
	if string(port.sent[0]) != string(port.sent[1]) {
		t.Fatal("retransmission must be byte-identical to the original")
	}
}

func TestSender_ResendRequestIsImmediate(t *testing.T) {
	port := &fakePort{}
	src := &sliceSource{bufs: [][]byte{frame.PackMotion(frame.MotionFrame{Theta1: 1})}}
	s := NewSender(port, src, &fakeNotifier{})
	c := &clock{t: time.Unix(0, 0)}

	if err := step(s, c); err != nil {
		t.Fatal(err)
	}
	port.queue(frame.PackEvent(frame.EventFrame{Code: 40}))
	if err := drain(s, c, port); err != nil {
		t.Fatal(err)
	}
	if len(port.sent) != 2 {
		t.Fatalf("want immediate resend, got %d sent", len(port.sent))
	}
	if s.state != AwaitAck {
		t.Fatalf("want to remain AwaitAck, got %v", s.state)
	}
}

func TestSender_CorruptInboundThenResend(t *testing.T) {
	port := &fakePort{}
	src := &sliceSource{bufs: [][]byte{frame.PackMotion(frame.MotionFrame{Theta1: 1})}}
	s := NewSender(port, src, &fakeNotifier{})
	c := &clock{t: time.Unix(0, 0)}

	if err := step(s, c); err != nil {
		t.Fatal(err)
	}
	bad := frame.PackEvent(frame.EventFrame{Code: 41})
	bad[4] ^= 0xFF // corrupt CRC
	port.queue(bad)
	if err := drain(s, c, port); err != nil {
		t.Fatal(err)
	}
	if s.state != AwaitAck {
		t.Fatalf("corrupt inbound must not advance state, got %v", s.state)
	}
	c.advance(ResendTimeout + time.Millisecond)
	if err := step(s, c); err != nil {
		t.Fatal(err)
	}
	if len(port.sent) != 2 {
		t.Fatalf("want retransmit after timeout, got %d sent", len(port.sent))
	}
}

func TestSender_EmergencyStopTerminates(t *testing.T) {
	port := &fakePort{}
	src := &sliceSource{bufs: [][]byte{frame.PackMotion(frame.MotionFrame{Theta1: 1})}}
	n := &fakeNotifier{}
	s := NewSender(port, src, n)
	c := &clock{t: time.Unix(0, 0)}

	if err := step(s, c); err != nil {
		t.Fatal(err)
	}
	port.queue(frame.PackEvent(frame.EventFrame{Code: 1}))
	err := drain(s, c, port)
	var ae *armerr.Error
	if !errors.As(err, &ae) || ae.Kind != armerr.ControllerFault {
		t.Fatalf("want ControllerFault, got %v", err)
	}
	if len(n.messages) != 1 || n.messages[0] != "Emergency Stop (0)" {
		t.Fatalf("want emergency stop notification, got %v", n.messages)
	}
}

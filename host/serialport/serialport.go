// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package serialport is the concrete, non-blocking serial driver that
// satisfies conn/link.Port, the way host/sysfs supplies a concrete driver
// for periph.io's conn interfaces. It opens the real endpoint (default
// /dev/serial0, 115200 8N1, no flow control) via go.bug.st/serial, grounded
// on the same library used by the huskki Arduino reader and the Speeduino
// ECU provider in this module's reference corpus — both non-blocking
// serial consumers of a framed protocol, the closest analogue to this
// link's controller connection.
package serialport

import (
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"github.com/drawbot/armctl/armerr"
)

// DefaultDevice is the serial endpoint path used when none is specified.
const DefaultDevice = "/dev/serial0"

// DefaultBaud is the controller's fixed baud rate.
const DefaultBaud = 115200

// openRetries and openBackoff bound the startup retry loop carried from
// the original daemon's own open-on-startup behavior (SPEC_FULL.md §3):
// the real device node can appear slightly after process start under
// systemd, so a few short retries avoid a spurious SerialIO failure.
const (
	openRetries = 5
	openBackoff = 200 * time.Millisecond
)

// readPollTimeout is the per-call timeout configured on the underlying
// port so that ReadByte never blocks longer than a few milliseconds,
// keeping the sender's cooperative loop responsive.
const readPollTimeout = 5 * time.Millisecond

// Port opens and owns the real serial device. It is exclusively owned by
// the sender task for the duration of a run; no other writer may
// interleave, per spec.md §5.
type Port struct {
	port serial.Port
	buf  [1]byte
}

// Open opens device at baud with 8 data bits, no parity, one stop bit, no
// flow control, retrying briefly if the device is not yet present.
func Open(device string, baud int) (*Port, error) {
	if device == "" {
		device = DefaultDevice
	}
	if baud == 0 {
		baud = DefaultBaud
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	var sp serial.Port
	var err error
	for attempt := 0; attempt < openRetries; attempt++ {
		sp, err = serial.Open(device, mode)
		if err == nil {
			break
		}
		time.Sleep(openBackoff)
	}
	if err != nil {
		return nil, armerr.Wrap(armerr.SerialIO, -1, "open "+device, errors.WithMessage(err, "exhausted retries"))
	}
	if err := sp.SetReadTimeout(readPollTimeout); err != nil {
		sp.Close()
		return nil, armerr.Wrap(armerr.SerialIO, -1, "set read timeout", err)
	}
	return &Port{port: sp}, nil
}

// ReadByte implements link.Port: a short-timeout read that reports ok=false
// rather than blocking when nothing is available.
func (p *Port) ReadByte() (byte, bool, error) {
	n, err := p.port.Read(p.buf[:])
	if err != nil {
		return 0, false, armerr.Wrap(armerr.SerialIO, -1, "serial read", err)
	}
	if n == 0 {
		return 0, false, nil
	}
	return p.buf[0], true, nil
}

// Write implements link.Port.
func (p *Port) Write(b []byte) error {
	_, err := p.port.Write(b)
	if err != nil {
		return armerr.Wrap(armerr.SerialIO, -1, "serial write", err)
	}
	return nil
}

// Close releases the serial device.
func (p *Port) Close() error {
	return p.port.Close()
}

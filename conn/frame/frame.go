// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package frame defines the three bit-exact wire layouts exchanged with the
// motor controller: V01 (controller to host, 7 bytes), V02 (host to
// controller, 12 bytes), and V03 (reserved, 15 bytes). All multi-byte
// fields are little-endian; every frame is bounded by a start and end
// delimiter and protected by the CRC-16 in conn/frame.
//
// As described in https://periph.io/x/periph/conn#hdr-Concepts, periph.io
// models protocols with narrow, version-specific codecs rather than one
// generic reflect-driven struct layout; this package follows the same
// shape: one pack/unpack pair per version, no alignment padding, no
// reinterpret casts.
package frame

import "github.com/drawbot/armctl/armerr"

// Delimiter bytes framing every version.
const (
	SFD byte = 0xAB
	EFD byte = 0xCD
)

// Version identifies which of the three wire layouts a buffer encodes.
type Version byte

const (
	// V01 is the controller-to-host ack/event frame, 7 bytes.
	V01 Version = 1
	// V02 is the host-to-controller motion frame, 12 bytes.
	V02 Version = 2
	// V03 is reserved, 15 bytes.
	V03 Version = 3
)

// Size returns the wire size in bytes of a version, or 0 if unknown.
func (v Version) Size() int {
	switch v {
	case V01:
		return 7
	case V02:
		return 12
	case V03:
		return 15
	default:
		return 0
	}
}

// EventFrame is the V01 controller-to-host ack/event frame:
// SFD(1)·VER(1)·CODE(int16)·CRC(uint16)·EFD(1).
type EventFrame struct {
	Code int16
}

// MotionFrame is the V02 host-to-controller motion frame:
// SFD(1)·VER(1)·CODE(1)·Theta1(int16)·Theta2(int16)·D3(int16)·CRC(uint16)·EFD(1).
type MotionFrame struct {
	Code   byte
	Theta1 int16
	Theta2 int16
	D3     int16
}

// ReservedFrame is the V03 layout:
// SFD(1)·VER(1)·Theta1..Theta4(int16)·D5(int16)·CRC(uint16)·EFD(1).
// Not produced or consumed anywhere in this module; kept only so the wire
// size and version byte are documented alongside V01/V02.
type ReservedFrame struct {
	Theta [4]int16
	D5    int16
}

func putInt16LE(b []byte, v int16) {
	u := uint16(v)
	b[0] = byte(u)
	b[1] = byte(u >> 8)
}

func getInt16LE(b []byte) int16 {
	return int16(uint16(b[0]) | uint16(b[1])<<8)
}

func putUint16LE(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func getUint16LE(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// PackEvent encodes f as a V01 wire buffer. CRC is filled in last, after
// every other field, matching the contract that CRC never participates in
// its own computation.
func PackEvent(f EventFrame) []byte {
	buf := make([]byte, V01.Size())
	buf[0] = SFD
	buf[1] = byte(V01)
	putInt16LE(buf[2:4], f.Code)
	crc := computeCRC(buf[:4])
	putUint16LE(buf[4:6], crc)
	buf[6] = EFD
	return buf
}

// PackMotion encodes f as a V02 wire buffer.
func PackMotion(f MotionFrame) []byte {
	buf := make([]byte, V02.Size())
	buf[0] = SFD
	buf[1] = byte(V02)
	buf[2] = f.Code
	putInt16LE(buf[3:5], f.Theta1)
	putInt16LE(buf[5:7], f.Theta2)
	putInt16LE(buf[7:9], f.D3)
	crc := computeCRC(buf[:9])
	putUint16LE(buf[9:11], crc)
	buf[11] = EFD
	return buf
}

// SelfCheck recomputes the CRC over a just-packed buffer and confirms the
// frame is internally consistent: the running CRC over the buffer up to and
// including its own CRC field (everything but the trailing EFD delimiter)
// must be zero. It is meant to be called on every outbound frame immediately
// before transmission; a failure indicates a codec bug, not a transport
// fault.
func SelfCheck(buf []byte) error {
	if len(buf) < 3 {
		return armerr.New(armerr.FrameCorrupt, "frame too short to self-check")
	}
	if computeCRC(buf[:len(buf)-1]) != 0 {
		return armerr.New(armerr.FrameCorrupt, "outbound CRC self-check failed")
	}
	return nil
}

// UnpackEvent decodes a V01 wire buffer, validating delimiters, version,
// and CRC. Returns a *armerr.Error with Kind BadVersion or FrameCorrupt on
// failure.
func UnpackEvent(buf []byte) (EventFrame, error) {
	if len(buf) != V01.Size() {
		return EventFrame{}, armerr.New(armerr.FrameCorrupt, "V01 buffer has wrong length")
	}
	if buf[0] != SFD || buf[6] != EFD {
		return EventFrame{}, armerr.New(armerr.FrameCorrupt, "V01 missing delimiters")
	}
	if buf[1] != byte(V01) {
		return EventFrame{}, armerr.New(armerr.BadVersion, "V01 version byte mismatch")
	}
	if computeCRC(buf[:len(buf)-1]) != 0 {
		return EventFrame{}, armerr.New(armerr.FrameCorrupt, "V01 CRC mismatch")
	}
	return EventFrame{Code: getInt16LE(buf[2:4])}, nil
}

// UnpackMotion decodes a V02 wire buffer. It exists mainly for round-trip
// testing and for the sender's State notification on ACK, since V02
// normally only flows outbound.
func UnpackMotion(buf []byte) (MotionFrame, error) {
	if len(buf) != V02.Size() {
		return MotionFrame{}, armerr.New(armerr.FrameCorrupt, "V02 buffer has wrong length")
	}
	if buf[0] != SFD || buf[11] != EFD {
		return MotionFrame{}, armerr.New(armerr.FrameCorrupt, "V02 missing delimiters")
	}
	if buf[1] != byte(V02) {
		return MotionFrame{}, armerr.New(armerr.BadVersion, "V02 version byte mismatch")
	}
	if computeCRC(buf[:len(buf)-1]) != 0 {
		return MotionFrame{}, armerr.New(armerr.FrameCorrupt, "V02 CRC mismatch")
	}
	return MotionFrame{
		Code:   buf[2],
		Theta1: getInt16LE(buf[3:5]),
		Theta2: getInt16LE(buf[5:7]),
		D3:     getInt16LE(buf[7:9]),
	}, nil
}

// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package link implements the stop-and-wait sender and the byte-wise
// framing receiver that carry conn/frame buffers over a serial byte
// stream, per spec.md §4.8-4.10. Both state machines operate against the
// narrow Port interface; host/serialport supplies the concrete non-blocking
// serial driver, the same way periph.io's conn packages define a Port
// interface that host/sysfs implements.
package link

// Port is the non-blocking byte transport the sender and receiver operate
// over. ReadByte returns ok=false, with no error, when no byte is
// currently available — it must never block.
type Port interface {
	ReadByte() (b byte, ok bool, err error)
	Write(p []byte) error
}

// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package notify defines the notification sink the link sender publishes
// to. Per spec.md §6 the concrete transport (AMQP, in the original source)
// is external to the core; this package only defines the interface and a
// stdlib-log-backed implementation suitable for local use and testing. No
// AMQP client library is retrieved anywhere in this module's reference
// corpus, so none is introduced here — see DESIGN.md.
package notify

// Severity is the user-facing message type.
type Severity string

const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Err     Severity = "error"
	Success Severity = "success"
)

// Notifier is the abstract publish sink: one routing key for user-facing
// messages, one for motor-state updates, matching the two payload shapes
// in spec.md §6.
type Notifier interface {
	// Message publishes a user-facing notification.
	Message(title string, severity Severity, footnote string)
	// State publishes a motor-state update for one successfully
	// acknowledged frame.
	State(frameIndex int, theta1, theta2, d3 int16)
}

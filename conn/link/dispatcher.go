// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "github.com/drawbot/armctl/notify"

// Event is the semantic classification of a validated inbound V01 CODE
// byte, per spec.md §4.10.
type Event int

const (
	// EventFault covers CODEs 1-3 and 10-20: emergency stops, limit/travel
	// violations, and collision detection. Always terminates the sender.
	// CODEs 4-9 are EventUnknown.
	EventFault Event = iota
	// EventResend is CODE 40: retransmit the current frame immediately.
	EventResend
	// EventAck is CODE 41: advance to the next frame.
	EventAck
	// EventUnknown is any other CODE: notify, stay AwaitAck.
	EventUnknown
)

// eventInfo is the title/severity/footnote triggered by one fault CODE,
// grounded verbatim on the motor controller's own event text.
type eventInfo struct {
	title    string
	severity notify.Severity
	footnote string
}

var faultTable = map[int16]eventInfo{
	1: {"Emergency Stop (0)", notify.Err, "An uncontrolled stop by immediately removing power to the machine actuators."},
	2: {"Emergency Stop (1)", notify.Err, "A controlled stop with power to the machine actuators available to achieve the stop then remove power when the stop is achieved."},
	3: {"Emergency Stop (2)", notify.Err, "A controlled stop with power left available to the machine actuators."},
	10: {"Shoulder Pan Limit Switch 1 Hit", notify.Err, "Shoulder Pan Link has exceeded the movement limits set by the physical hard stop through excessive motion clockwise."},
	11: {"Shoulder Pan Limit Switch 2 Hit", notify.Err, "Shoulder Pan Link has exceeded the movement limits set by the physical hard stop through excessive motion counter-clockwise."},
	12: {"Elbow Pan Limit Switch 1 Hit", notify.Err, "Elbow Pan Link has exceeded the movement limits set by the physical hard stop through excessive motion clockwise."},
	13: {"Elbow Pan Limit Switch 2 Hit", notify.Err, "Elbow Pan Link has exceeded the movement limits set by the physical hard stop through excessive motion counter-clockwise."},
	14: {"Wrist Flex Limit Switch Hit", notify.Err, "Wrist Flex Link has exceeded the movement limits set by the physical hard stop through excessive motion clockwise."},
	15: {"Wrist Flex Soft Limit Hit", notify.Warning, "Wrist Flex Link has exceeded the movement limits set by software through excessive motion counter-clockwise."},
	16: {"Wrist Roll Limit Switch Hit", notify.Err, "Wrist Roll Link has exceeded the movement limits set by the physical hard stop through excessive motion clockwise."},
	17: {"Wrist Roll Soft Limit Hit", notify.Warning, "Wrist Roll Link has exceeded the movement limits set by software through excessive motion counter-clockwise."},
	18: {"Wrist Extension End of Travel Hit", notify.Err, "Wrist Roll Link has exceeded the movement limits set by the physical hard stop through excessive motion driving down into the page."},
	19: {"Wrist Extension Start of Travel Hit", notify.Err, "Wrist Roll Link has exceeded the movement limits set by the physical hard stop through excessive motion driving up out of the page."},
	20: {"Complex Collision Detected", notify.Err, "Some complex combination of motor joints has caused the Robot wrist to collide with the Robot shelf."},
}

// classify maps a CODE byte to its semantic Event, per spec.md §4.10's table.
func classify(code int16) Event {
	switch {
	case code == 40:
		return EventResend
	case code == 41:
		return EventAck
	case code >= 1 && code <= 3, code >= 10 && code <= 20:
		return EventFault
	default:
		return EventUnknown
	}
}

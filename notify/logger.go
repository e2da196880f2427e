// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package notify

import "log"

// Logger is a Notifier that writes to the standard log package, the way
// every serial-attached example in this module's reference corpus reports
// status (no structured-logging library appears anywhere in the corpus).
// It stands in for the AMQP/JSON sink the original system used.
type Logger struct{}

// Message implements Notifier.
func (Logger) Message(title string, severity Severity, footnote string) {
	log.Printf("[%s] %s: %s", severity, title, footnote)
}

// State implements Notifier.
func (Logger) State(frameIndex int, theta1, theta2, d3 int16) {
	log.Printf("frame %d: theta1=%d theta2=%d d3=%d", frameIndex, theta1, theta2, d3)
}

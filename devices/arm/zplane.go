// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package arm

import "github.com/drawbot/armctl/geom"

// Calibration holds the bilinear Z-actuator plane's four corner depths and
// the workspace dimensions they span, plus the drawing-depth baseline and
// the fixed pen-up retract depth. spec.md names Z_DRAW and Z_RETRACT as
// constants but does not pin numeric values (an Open Question this module
// resolves, per DESIGN.md, by making them calibration inputs rather than
// guessed magic numbers — the same way CPFrames.h in the original source
// names its frame constants instead of using literals inline).
type Calibration struct {
	// BL, BR, TL, TR are the actuator depth readings at the workspace's
	// bottom-left, bottom-right, top-left, and top-right corners.
	BL, BR, TL, TR float64
	// WorkspaceLength is the horizontal extent (x) of the workspace, inches.
	WorkspaceLength float64
	// WorkspaceWidth is the vertical extent (y) of the workspace, inches.
	WorkspaceWidth float64
	// ZDraw is the drawing-depth actuator baseline.
	ZDraw float64
	// ZRetract is the fixed pen-up retract depth.
	ZRetract float64
}

// DefaultCalibration is a reasonable starting calibration for an
// uncalibrated arm: a flat plane (all corners equal to ZDraw) over a
// 17x15 inch workspace, matching the sampler's page-size assumption.
var DefaultCalibration = Calibration{
	BL: 0, BR: 0, TL: 0, TR: 0,
	WorkspaceLength: 17,
	WorkspaceWidth:  15,
	ZDraw:           0,
	ZRetract:        -500,
}

// slopes returns the plane's x and y slopes per spec.md §4.5.
func (c Calibration) slopes() (slopeX, slopeY float64) {
	slopeX = ((c.BR - c.BL) + (c.TR - c.TL)) / (2 * c.WorkspaceLength)
	slopeY = ((c.TL - c.BL) + (c.TR - c.BR)) / (2 * c.WorkspaceWidth)
	return slopeX, slopeY
}

// ActuatorDepth returns the pre-quantization actuator depth for a waypoint:
// the bilinear plane value at (x, y) when pen is down, or ZRetract when
// pen is up.
func (c Calibration) ActuatorDepth(x, y float64, pen geom.PenState) (float64, error) {
	if pen == geom.PenUp {
		return c.ZRetract, nil
	}
	slopeX, slopeY := c.slopes()
	return c.ZDraw + x*slopeX + y*slopeY + slopeX*(c.WorkspaceWidth/2), nil
}

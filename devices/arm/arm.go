// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package arm is the "device driver" for the two-link planar drawing arm:
// it turns Cartesian waypoints into quantized motor-angle samples, the way
// devices/apa102 turns an RGB image into APA102 wire bytes. It owns the IK
// solver, the bilinear Z-actuator calibration plane, pen-up transit
// insertion between tool-paths, and saturating quantization to the wire's
// signed 16-bit fields.
package arm

import (
	"math"

	"github.com/drawbot/armctl/geom"
)

// LinkLength is the fixed length, in inches, of both arm links (L1 = L2).
const LinkLength = 8.75

// ThetaScale converts joint-angle radians to the wire's scaled integer
// units: 437.04 units per radian, about 2746 per full turn.
const ThetaScale = 437.04

// DefaultTransitThreshold is the straight-line gap, in inches, above which a
// pen-lift transit is inserted between two consecutive tool-paths.
const DefaultTransitThreshold = 0.1

// Planner ties the IK solver, Z-plane calibration, and quantizer together
// to turn a sequence of per-path waypoint runs into one flat sequence of
// motor-angle samples, inserting pen-up transitions as needed.
type Planner struct {
	cal              Calibration
	transitThreshold float64
	lastPath         *geom.Waypoint // last emitted waypoint of the previous path, nil before the first
}

// NewPlanner builds a Planner calibrated against cal, using
// DefaultTransitThreshold for the pen-lift gap. Use SetTransitThreshold to
// override it.
func NewPlanner(cal Calibration) *Planner {
	return &Planner{cal: cal, transitThreshold: DefaultTransitThreshold}
}

// SetTransitThreshold overrides the pen-lift gap threshold; a non-positive
// value is ignored.
func (p *Planner) SetTransitThreshold(inches float64) {
	if inches > 0 {
		p.transitThreshold = inches
	}
}

// PlanPath consumes one tool-path's sampled waypoints (already in workspace
// inches, pen-down) and returns the full sequence of motor samples to
// emit for it, including any pen-up transit prefix. wps must be non-empty.
func (p *Planner) PlanPath(wps []geom.Waypoint) ([]geom.MotorSample, error) {
	if len(wps) == 0 {
		return nil, nil
	}
	var input []geom.Waypoint
	if p.lastPath != nil {
		prev := *p.lastPath
		first := wps[0]
		if geom.Dist(geom.Point2D{X: prev.X, Y: prev.Y}, geom.Point2D{X: first.X, Y: first.Y}) > p.transitThreshold {
			input = append(input,
				geom.Waypoint{X: prev.X, Y: prev.Y, Z: geom.PenUp},
				geom.Waypoint{X: first.X, Y: first.Y, Z: geom.PenUp},
			)
		}
	}
	input = append(input, wps...)

	out := make([]geom.MotorSample, len(input))
	for i, wp := range input {
		theta1, theta2, err := Solve(wp.X, wp.Y)
		if err != nil {
			return nil, err
		}
		d3, err := p.cal.ActuatorDepth(wp.X, wp.Y, wp.Z)
		if err != nil {
			return nil, err
		}
		sample, err := Quantize(theta1, theta2, d3)
		if err != nil {
			return nil, err
		}
		out[i] = sample
	}
	last := wps[len(wps)-1]
	p.lastPath = &last
	return out, nil
}

// quantizeAngle scales a radian value to wire units, rounds to nearest, and
// saturates to int16, reporting a Quantize error if it is out of range.
func quantizeAngle(radians float64) (int16, error) {
	scaled := math.Round(radians * ThetaScale)
	return saturate16(scaled)
}

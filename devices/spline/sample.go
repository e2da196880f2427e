// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spline

import "github.com/drawbot/armctl/geom"

// lengthEpsilon bounds the geometric error tolerated by arc-length
// estimation; minDepth forces enough refinement even for near-straight
// splines where the chord/two-segment difference converges to zero early.
const (
	lengthEpsilon = 1e-5
	minDepth      = 5
)

// EstimateLength estimates the arc length of ev over [0, 1] by recursive
// midpoint subdivision: compare the chord length between the endpoints to
// the two-segment length through the midpoint, and recurse on both halves
// until the difference is below lengthEpsilon and the recursion depth is
// at least minDepth.
func EstimateLength(ev Evaluator) float64 {
	return subdivide(ev, 0, 1, ev.Eval(0), ev.Eval(1), 0)
}

func subdivide(ev Evaluator, u0, u1 float64, p0, p1 geom.Point2D, depth int) float64 {
	um := (u0 + u1) / 2
	pm := ev.Eval(um)
	chord := geom.Dist(p0, p1)
	twoSeg := geom.Dist(p0, pm) + geom.Dist(pm, p1)
	if depth >= minDepth && twoSeg-chord < lengthEpsilon {
		return twoSeg
	}
	left := subdivide(ev, u0, um, p0, pm, depth+1)
	right := subdivide(ev, um, u1, pm, p1, depth+1)
	return left + right
}

// workspace conversion constants: source points are at 72 PPI, the
// workspace origin is bottom-left with the host's page measured from its
// top-left corner.
const (
	ppi        = 72.0
	originX    = 8.5
	pageHeight = 15.0
)

// toWaypoint converts a source-unit point to a workspace-inch drawing
// waypoint, flipping the y axis.
func toWaypoint(p geom.Point2D) geom.Waypoint {
	return geom.Waypoint{
		X: p.X/ppi - originX,
		Y: pageHeight - p.Y/ppi,
		Z: geom.PenDown,
	}
}

// Sample walks ev from u=0 to u=1 at approximately equal arc-length
// intervals. nominalIncrement is the desired spacing in inches; it is
// divided by the estimated curve length to obtain a step in u. The first
// and last samples are always u=0 and u=1.
func Sample(ev Evaluator, nominalIncrement float64) []geom.Waypoint {
	length := EstimateLength(ev)
	// Convert the PostScript-point estimate to inches to match
	// nominalIncrement's unit, then derive the u-step.
	lengthInches := length / ppi
	if lengthInches <= 0 {
		return []geom.Waypoint{toWaypoint(ev.Eval(0)), toWaypoint(ev.Eval(1))}
	}
	step := nominalIncrement / lengthInches
	if step <= 0 || step > 1 {
		step = 1
	}

	var out []geom.Waypoint
	for u := 0.0; u < 1.0; u += step {
		out = append(out, toWaypoint(ev.Eval(u)))
	}
	out = append(out, toWaypoint(ev.Eval(1.0)))
	return out
}

// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package arm

import (
	"errors"
	"math"
	"testing"

	"github.com/drawbot/armctl/armerr"
	"github.com/drawbot/armctl/geom"
)

func TestSolve_ForwardRecoversTarget(t *testing.T) {
	cases := []struct{ x, y float64 }{
		{x: 10, y: 5},
		{x: LinkLength, y: LinkLength},
		{x: 2 * LinkLength, y: 0},
		{x: 0.2, y: 0.1},
	}
	for _, c := range cases {
		theta1, theta2, err := Solve(c.x, c.y)
		if err != nil {
			t.Fatalf("Solve(%v, %v): %v", c.x, c.y, err)
		}
		// Forward kinematics of a 2-link planar arm.
		x := LinkLength*math.Cos(theta1) + LinkLength*math.Cos(theta1+theta2)
		y := LinkLength*math.Sin(theta1) + LinkLength*math.Sin(theta1+theta2)
		if math.Abs(x-c.x) > 1e-6 || math.Abs(y-c.y) > 1e-6 {
			t.Errorf("Solve(%v, %v): forward kinematics gave (%v, %v)", c.x, c.y, x, y)
		}
	}
}

func TestSolve_Unreachable(t *testing.T) {
	_, _, err := Solve(100, 100)
	var ae *armerr.Error
	if !errors.As(err, &ae) || ae.Kind != armerr.Unreachable {
		t.Fatalf("want Unreachable, got %v", err)
	}
}

func TestCalibration_FlatPlane(t *testing.T) {
	cal := Calibration{WorkspaceLength: 17, WorkspaceWidth: 15, ZDraw: 10, ZRetract: -500}
	d, err := cal.ActuatorDepth(3, 4, geom.PenDown)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d-10) > 1e-9 {
		t.Errorf("flat plane should return ZDraw everywhere, got %v", d)
	}
	d, err = cal.ActuatorDepth(3, 4, geom.PenUp)
	if err != nil {
		t.Fatal(err)
	}
	if d != -500 {
		t.Errorf("pen-up should return ZRetract, got %v", d)
	}
}

func TestQuantize_Saturates(t *testing.T) {
	_, err := Quantize(1000, 0, 0)
	var ae *armerr.Error
	if !errors.As(err, &ae) || ae.Kind != armerr.Quantize {
		t.Fatalf("want Quantize error, got %v", err)
	}
}

func TestPlanner_InsertsTransitBetweenDisjointPaths(t *testing.T) {
	p := NewPlanner(Calibration{WorkspaceLength: 17, WorkspaceWidth: 15, ZDraw: 0, ZRetract: -500})
	first := []geom.Waypoint{{X: -8.5, Y: 15, Z: geom.PenDown}, {X: -7.5, Y: 15, Z: geom.PenDown}}
	samples1, err := p.PlanPath(first)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples1) != 2 {
		t.Fatalf("first path: want 2 samples (no predecessor), got %d", len(samples1))
	}

	second := []geom.Waypoint{{X: 0.5, Y: 7, Z: geom.PenDown}, {X: 1.5, Y: 7, Z: geom.PenDown}}
	samples2, err := p.PlanPath(second)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples2) != 4 {
		t.Fatalf("second path: want 2 transit + 2 drawing samples, got %d", len(samples2))
	}
	if samples2[0].D3 != -500 || samples2[1].D3 != -500 {
		t.Errorf("transit samples should retract: got %+v, %+v", samples2[0], samples2[1])
	}
	if samples2[2].D3 == -500 || samples2[3].D3 == -500 {
		t.Errorf("drawing samples should not retract: got %+v, %+v", samples2[2], samples2[3])
	}
}

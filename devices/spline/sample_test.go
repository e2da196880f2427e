// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spline

import (
	"math"
	"testing"

	"github.com/drawbot/armctl/geom"
)

type line struct {
	a, b geom.Point2D
}

func (l line) Eval(u float64) geom.Point2D {
	return geom.Point2D{
		X: l.a.X + u*(l.b.X-l.a.X),
		Y: l.a.Y + u*(l.b.Y-l.a.Y),
	}
}

func TestEstimateLength_StraightLine(t *testing.T) {
	l := line{a: geom.Point2D{X: 0, Y: 0}, b: geom.Point2D{X: 72, Y: 0}}
	got := EstimateLength(l)
	want := 72.0
	if math.Abs(got-want) > 1e-4 {
		t.Fatalf("want length %v, got %v", want, got)
	}
}

func TestBuild_DegreeSelection(t *testing.T) {
	two := Build([]geom.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if two.degree != 1 {
		t.Errorf("want degree 1 for two points, got %d", two.degree)
	}
	three := Build([]geom.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}})
	if three.degree != 3 {
		t.Errorf("want degree 3 for three points, got %d", three.degree)
	}
}

func TestSample_TrivialLine(t *testing.T) {
	// 1;0,0,72,0 in source units: y-flip maps (0,0)->(-8.5,15), (72,0)->(-7.5,15).
	s := Build([]geom.Point2D{{X: 0, Y: 0}, {X: 72, Y: 0}})
	wps := Sample(s, 1.0)
	if len(wps) < 2 {
		t.Fatalf("expected at least two samples, got %d", len(wps))
	}
	first, last := wps[0], wps[len(wps)-1]
	if math.Abs(first.X-(-8.5)) > 1e-9 || math.Abs(first.Y-15) > 1e-9 {
		t.Errorf("first waypoint: want (-8.5, 15), got (%v, %v)", first.X, first.Y)
	}
	if math.Abs(last.X-(-7.5)) > 1e-9 || math.Abs(last.Y-15) > 1e-9 {
		t.Errorf("last waypoint: want (-7.5, 15), got (%v, %v)", last.X, last.Y)
	}
}

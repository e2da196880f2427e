// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package spline builds clamped B-splines from a tool-path's control points
// and samples them at approximately equal arc-length intervals.
//
// The evaluator itself is treated as a black-box operator — given a spline
// and a parameter u in [0, 1], it returns a point — per spec.md §1. No
// third-party spline/Bézier library is retrieved anywhere in this module's
// reference corpus (see DESIGN.md), so this package supplies its own
// minimal clamped de Boor evaluator behind the Evaluator interface, the
// same way periph.io defines a narrow protocol interface (conn.Conn) and
// lets a concrete driver satisfy it.
package spline

import "github.com/drawbot/armctl/geom"

// Evaluator evaluates a curve at parameter u in [0, 1].
type Evaluator interface {
	Eval(u float64) geom.Point2D
}

// Spline is a B-spline of degree 1 or 3, clamped to its first and last
// control points.
type Spline struct {
	degree int
	pts    []geom.Point2D
	knots  []float64
}

// Build constructs a clamped B-spline from an ordered set of control
// points. Degree 1 is used when exactly two points are given, degree 3
// otherwise, per spec.md §3.
func Build(pts []geom.Point2D) *Spline {
	degree := 3
	if len(pts) == 2 {
		degree = 1
	}
	return &Spline{degree: degree, pts: pts, knots: clampedKnots(len(pts), degree)}
}

// clampedKnots returns a clamped, uniform knot vector for n control points
// and the given degree: degree+1 repeated knots at each end.
func clampedKnots(n, degree int) []float64 {
	m := n + degree + 1
	knots := make([]float64, m)
	interior := n - degree - 1
	for i := 0; i < m; i++ {
		switch {
		case i <= degree:
			knots[i] = 0
		case i >= m-degree-1:
			knots[i] = 1
		default:
			knots[i] = float64(i-degree) / float64(interior+1)
		}
	}
	return knots
}

// Eval implements Evaluator using de Boor's algorithm.
func (s *Spline) Eval(u float64) geom.Point2D {
	if u < 0 {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	n := len(s.pts)
	k := s.degree
	span := s.findSpan(u)

	d := make([]geom.Point2D, k+1)
	for j := 0; j <= k; j++ {
		d[j] = s.pts[span-k+j]
	}
	for r := 1; r <= k; r++ {
		for j := k; j >= r; j-- {
			i := span - k + j
			left := s.knots[i]
			right := s.knots[i+k-r+1]
			var alpha float64
			if right-left < 1e-12 {
				alpha = 0
			} else {
				alpha = (u - left) / (right - left)
			}
			d[j] = geom.Point2D{
				X: (1-alpha)*d[j-1].X + alpha*d[j].X,
				Y: (1-alpha)*d[j-1].Y + alpha*d[j].Y,
			}
		}
	}
	_ = n
	return d[k]
}

// findSpan returns the knot span index containing u.
func (s *Spline) findSpan(u float64) int {
	n := len(s.pts) - 1
	k := s.degree
	if u >= s.knots[n+1] {
		return n
	}
	low, high := k, n+1
	mid := (low + high) / 2
	for u < s.knots[mid] || u >= s.knots[mid+1] {
		if u < s.knots[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package arm

import (
	"math"

	"github.com/drawbot/armctl/armerr"
)

// Solve computes the elbow-up planar two-link inverse kinematics for a
// target (x, y), per spec.md §4.6. L1 = L2 = LinkLength.
//
// Returns armerr.Unreachable if r falls outside [-1, 1].
func Solve(x, y float64) (theta1, theta2 float64, err error) {
	l1, l2 := LinkLength, LinkLength
	r := (x*x + y*y - l1*l1 - l2*l2) / (2 * l1 * l2)
	if r < -1 || r > 1 {
		return 0, 0, armerr.New(armerr.Unreachable, "target outside arm reach")
	}
	theta2 = math.Atan2(math.Sqrt(1-r*r), r)
	theta1 = math.Atan2(y, x) - math.Atan2(l2*math.Sin(theta2), l1+l2*math.Cos(theta2))
	return theta1, theta2, nil
}

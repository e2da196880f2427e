// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package arm

import (
	"math"

	"github.com/drawbot/armctl/armerr"
	"github.com/drawbot/armctl/geom"
)

// saturate16 converts v, which every caller has already rounded to the
// nearest integer, to int16 and reports armerr.Quantize if it does not fit;
// per spec.md §3, out-of-range is an error, not a wrapping truncation.
func saturate16(v float64) (int16, error) {
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, armerr.New(armerr.Quantize, "value does not fit signed 16-bit field")
	}
	return int16(v), nil
}

// Quantize converts joint angles (radians) and an actuator depth (already
// plane-compensated, pre-quantization units) into a wire-ready
// geom.MotorSample.
func Quantize(theta1, theta2, d3 float64) (geom.MotorSample, error) {
	t1, err := quantizeAngle(theta1)
	if err != nil {
		return geom.MotorSample{}, err
	}
	t2, err := quantizeAngle(theta2)
	if err != nil {
		return geom.MotorSample{}, err
	}
	d, err := saturate16(math.Round(d3))
	if err != nil {
		return geom.MotorSample{}, err
	}
	return geom.MotorSample{Theta1: t1, Theta2: t2, D3: d}, nil
}

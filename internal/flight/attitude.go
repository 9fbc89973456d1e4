// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package flight

import "math"

// Vector is a raw 3-axis acceleration sample, in g or device-native units.
// Only the ratios between components matter for attitude estimation.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Norm returns the Euclidean length of v. Components are scaled by the
// largest magnitude first, so very large or very small vectors neither
// overflow nor underflow.
func (v Vector) Norm() float64 {
	m := math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
	if m == 0 || math.IsInf(m, 0) || math.IsNaN(m) {
		return m
	}
	x, y, z := v.X/m, v.Y/m, v.Z/m
	return m * math.Sqrt(x*x+y*y+z*z)
}

// Attitude is the estimated device tilt in degrees.
//
// X and Z are offset by -90° so a zero component reads 0 ("level"),
// which puts them in [-90, 90]. Y carries no offset and lies in [0, 180].
// Z drives forward speed, X drives lateral speed and scroll direction.
type Attitude struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NeutralAttitude is reported for a degenerate (zero-length) reading.
// It is what EstimateAttitude returns when every normalized component is 0.
var NeutralAttitude = Attitude{X: 0, Y: 90, Z: 0}

// EstimateAttitude converts an acceleration vector into an Attitude:
//
//	angle = acos(component / |v|) * 180/π   (-90 on X and Z)
func EstimateAttitude(v Vector) Attitude {
	n := v.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return NeutralAttitude
	}
	return Attitude{
		X: axisAngle(v.X/n) - 90,
		Y: axisAngle(v.Y / n),
		Z: axisAngle(v.Z/n) - 90,
	}
}

// Sub returns a minus trim on the offset axes. Y is left untouched.
func (a Attitude) Sub(trim Attitude) Attitude {
	return Attitude{X: a.X - trim.X, Y: a.Y, Z: a.Z - trim.Z}
}

func axisAngle(ratio float64) float64 {
	// rounding can push |ratio| just past 1, where acos is NaN
	if ratio > 1 {
		ratio = 1
	} else if ratio < -1 {
		ratio = -1
	}
	return math.Acos(ratio) * 180.0 / math.Pi
}

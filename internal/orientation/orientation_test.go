// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"
	"testing"

	"github.com/relabs-tech/sensor_flight/internal/flight"
	"github.com/relabs-tech/sensor_flight/internal/sensors"
)

func rad(deg float64) float64 { return deg * math.Pi / 180 }

func closePose(a, b Pose, eps float64) bool {
	return math.Abs(a.Roll-b.Roll) <= eps && math.Abs(a.Pitch-b.Pitch) <= eps && math.Abs(a.Yaw-b.Yaw) <= eps
}

func TestComputePoseFromAccel(t *testing.T) {
	cases := []struct {
		name       string
		ax, ay, az float64
		want       Pose
	}{
		{"level", 0, -1, 0, Pose{}},
		{"rolled 30", -math.Sin(rad(30)), -math.Cos(rad(30)), 0, Pose{Roll: 30}},
		{"rolled -45 raw counts", 11585, -11585, 0, Pose{Roll: -45}},
		{"pitched 20", 0, -math.Cos(rad(20)), -math.Sin(rad(20)), Pose{Pitch: 20}},
		{"nose straight down", 0, -1e-9, -1, Pose{Pitch: 90}},
	}
	for _, tc := range cases {
		got := ComputePoseFromAccel(tc.ax, tc.ay, tc.az)
		if !closePose(got, tc.want, 1e-6) {
			t.Fatalf("%s: got=%+v want=%+v", tc.name, got, tc.want)
		}
	}
}

func TestInclinationMatchesFlightAttitude(t *testing.T) {
	// A tilt about a single axis reads the same on the inclinometer and in
	// the flight attitude.
	for _, deg := range []float64{-40, -10, 0, 15, 60} {
		r := sensors.Reading{X: -math.Sin(rad(deg)), Y: -math.Cos(rad(deg))}
		if got, want := Inclination(r).Roll, flight.EstimateAttitude(r.Vector()).X; math.Abs(got-want) > 1e-9 {
			t.Fatalf("roll %v: inclination=%v attitude=%v", deg, got, want)
		}
		r = sensors.Reading{Z: -math.Sin(rad(deg)), Y: -math.Cos(rad(deg))}
		if got, want := Inclination(r).Pitch, flight.EstimateAttitude(r.Vector()).Z; math.Abs(got-want) > 1e-9 {
			t.Fatalf("pitch %v: inclination=%v attitude=%v", deg, got, want)
		}
	}
}

func TestWrapAngles(t *testing.T) {
	for _, tc := range []struct{ in, w180, w360 float64 }{
		{0, 0, 0},
		{190, -170, 190},
		{-190, 170, 170},
		{540, 180, 180},
		{-30, -30, 330},
	} {
		if got := wrap180(tc.in); math.Abs(got-tc.w180) > 1e-9 {
			t.Fatalf("wrap180(%v)=%v want=%v", tc.in, got, tc.w180)
		}
		if got := wrap360(tc.in); math.Abs(got-tc.w360) > 1e-9 {
			t.Fatalf("wrap360(%v)=%v want=%v", tc.in, got, tc.w360)
		}
	}
}

func TestLevelPoseHasNoNegativeZero(t *testing.T) {
	p := ComputePoseFromAccel(0, -1, 0)
	if math.Signbit(p.Roll) || math.Signbit(p.Pitch) {
		t.Fatalf("pose=%+v has negative zero", p)
	}
}

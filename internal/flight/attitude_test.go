// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package flight

import (
	"math"
	"testing"
)

func TestEstimateAttitudeLevelAxes(t *testing.T) {
	cases := []struct {
		name string
		in   Vector
		want Attitude
	}{
		{"flat screen up", Vector{0, 0, -1}, Attitude{X: 0, Y: 90, Z: 90}},
		{"gravity on y", Vector{0, -1, 0}, Attitude{X: 0, Y: 180, Z: 0}},
		{"gravity on +x", Vector{1, 0, 0}, Attitude{X: -90, Y: 90, Z: 0}},
		{"gravity on -x", Vector{-2, 0, 0}, Attitude{X: 90, Y: 90, Z: 0}},
	}
	for _, tc := range cases {
		got := EstimateAttitude(tc.in)
		if !closeAttitude(got, tc.want, 1e-9) {
			t.Fatalf("%s: got=%+v want=%+v", tc.name, got, tc.want)
		}
	}
}

func TestEstimateAttitudeZeroNormIsNeutral(t *testing.T) {
	got := EstimateAttitude(Vector{})
	if got != NeutralAttitude {
		t.Fatalf("zero vector: got=%+v want=%+v", got, NeutralAttitude)
	}
	got = EstimateAttitude(Vector{X: math.NaN(), Y: 1})
	if got != NeutralAttitude {
		t.Fatalf("NaN vector: got=%+v want=%+v", got, NeutralAttitude)
	}
}

func TestEstimateAttitudeRangeAndPurity(t *testing.T) {
	for x := -2.0; x <= 2.0; x += 0.37 {
		for y := -2.0; y <= 2.0; y += 0.41 {
			for z := -2.0; z <= 2.0; z += 0.43 {
				v := Vector{x, y, z}
				if v.Norm() == 0 {
					continue
				}
				a := EstimateAttitude(v)
				for _, deg := range []float64{a.X, a.Y, a.Z} {
					if math.IsNaN(deg) || deg < -90 || deg > 180 {
						t.Fatalf("angle out of range for %+v: %+v", v, a)
					}
				}
				if b := EstimateAttitude(v); a != b {
					t.Fatalf("not deterministic for %+v: %+v vs %+v", v, a, b)
				}
			}
		}
	}
}

func TestEstimateAttitudeScaleInvariant(t *testing.T) {
	a := EstimateAttitude(Vector{0.2, -0.5, 0.8})
	b := EstimateAttitude(Vector{2000, -5000, 8000})
	if !closeAttitude(a, b, 1e-9) {
		t.Fatalf("scaled input changed attitude: %+v vs %+v", a, b)
	}
}

func TestEstimateAttitudeExtremeMagnitudes(t *testing.T) {
	cases := []struct {
		name string
		in   Vector
		want Attitude
	}{
		{"huge", Vector{1e200, 1e200, 0}, Attitude{X: -45, Y: 45, Z: 0}},
		{"tiny", Vector{1e-200, 0, 1e-200}, Attitude{X: -45, Y: 90, Z: -45}},
		{"max float", Vector{-math.MaxFloat64, 0, 0}, Attitude{X: 90, Y: 90, Z: 0}},
	}
	for _, tc := range cases {
		got := EstimateAttitude(tc.in)
		if !closeAttitude(got, tc.want, 1e-9) {
			t.Fatalf("%s: got=%+v want=%+v", tc.name, got, tc.want)
		}
	}

	if n := (Vector{3e200, 4e200, 0}).Norm(); math.Abs(n/5e200-1) > 1e-12 {
		t.Fatalf("norm=%v want=5e200", n)
	}
	if n := (Vector{0, 3e-200, 4e-200}).Norm(); math.Abs(n/5e-200-1) > 1e-12 {
		t.Fatalf("norm=%v want=5e-200", n)
	}
}

func TestAttitudeSubLeavesY(t *testing.T) {
	got := Attitude{X: 10, Y: 80, Z: -5}.Sub(Attitude{X: 3, Y: 40, Z: -2})
	want := Attitude{X: 7, Y: 80, Z: -3}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func closeAttitude(a, b Attitude, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

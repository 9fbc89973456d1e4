// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"math"
	"time"
)

// mockTurnRate is the heading change of the mock device in degrees per second.
const mockTurnRate = 30.0

type mockSource struct {
	start time.Time
	now   func() time.Time
}

// NewMockSource creates a mock accelerometer that slowly rocks the device
// around both control axes, so the attitude sweeps through and past the
// vertical tolerance.
func NewMockSource() Source {
	return newMockSource(time.Now)
}

func newMockSource(now func() time.Time) *mockSource {
	return &mockSource{start: now(), now: now}
}

func (m *mockSource) Next() (Reading, error) {
	t := m.now()
	elapsed := t.Sub(m.start).Seconds()

	roll := 20 * math.Sin(elapsed) * math.Pi / 180
	pitch := 25 * math.Cos(elapsed*0.7) * math.Pi / 180

	// unit gravity vector whose X/Z angles are roll/pitch
	x := -math.Sin(roll)
	z := -math.Sin(pitch)
	y := -math.Sqrt(math.Max(0, 1-x*x-z*z))

	// angular rates matching the motion above, plus a slow constant turn
	gyro := &Rates{
		X: -17.5 * math.Sin(elapsed*0.7), // d(pitch)/dt
		Y: mockTurnRate,
		Z: 20 * math.Cos(elapsed), // d(roll)/dt
	}

	return Reading{Source: "mock", X: x, Y: y, Z: z, Gyro: gyro, Time: t}, nil
}

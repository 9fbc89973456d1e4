// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"

	"github.com/relabs-tech/sensor_flight/internal/sensors"
)

// Pose is the representation of orientation shown by the viewers, in degrees.
type Pose struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// ComputePoseFromAccel computes roll and pitch from accelerometer data only,
// in any unit. The device is level when gravity lies along -Y. Roll leans X
// towards the ground, pitch leans Z. Yaw is 0: gravity carries no heading.
//
//	roll  = atan2(-ax, -ay)
//	pitch = atan2(-az, sqrt(ax² + ay²))
func ComputePoseFromAccel(ax, ay, az float64) Pose {
	rollRad := math.Atan2(-ax, -ay)
	pitchRad := math.Atan2(-az, math.Hypot(ax, ay))

	return Pose{
		Roll:  degrees(rollRad),
		Pitch: degrees(pitchRad),
	}
}

// Inclination is the inclinometer view of a reading.
func Inclination(r sensors.Reading) Pose {
	return ComputePoseFromAccel(r.X, r.Y, r.Z)
}

func degrees(rad float64) float64 {
	if rad == 0 {
		return 0 // no "-0.0" on the viewers
	}
	return rad * 180.0 / math.Pi
}

// wrap180 folds an angle into (-180, 180].
func wrap180(deg float64) float64 {
	deg = math.Mod(deg, 360)
	switch {
	case deg > 180:
		deg -= 360
	case deg <= -180:
		deg += 360
	}
	return deg
}

// wrap360 folds a heading into [0, 360).
func wrap360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

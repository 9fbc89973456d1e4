// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"time"

	"github.com/relabs-tech/sensor_flight/internal/sensors"
)

const (
	// DefaultGyroWeight is the share of the integrated gyro angle kept on
	// every update; the rest pulls roll and pitch towards the inclination.
	DefaultGyroWeight = 0.98

	// maxGap is the longest pause between readings that is still integrated.
	maxGap = time.Second
)

// Tracker fuses accelerometer inclination with gyro rates into a full pose
// (complementary filter). Roll follows the Z rate, pitch the X rate and yaw
// the Y rate. Yaw is a relative heading from where tracking started.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	weight  float64
	pose    Pose
	last    time.Time
	started bool
}

// NewTracker returns a tracker keeping weight (0..1) of the gyro estimate per
// update. Values outside the range fall back to DefaultGyroWeight.
func NewTracker(weight float64) *Tracker {
	if weight < 0 || weight > 1 {
		weight = DefaultGyroWeight
	}
	return &Tracker{weight: weight}
}

// Update folds one reading into the pose and returns it. Readings without
// gyro data, without a usable time step, or after a long pause reset roll
// and pitch to the inclination and keep the heading.
func (t *Tracker) Update(r sensors.Reading) Pose {
	acc := Inclination(r)

	var dt float64
	if t.started && !r.Time.IsZero() && !t.last.IsZero() {
		dt = r.Time.Sub(t.last).Seconds()
	}

	if r.Gyro == nil || dt <= 0 || dt > maxGap.Seconds() {
		t.pose.Roll = acc.Roll
		t.pose.Pitch = acc.Pitch
	} else {
		roll := t.pose.Roll + r.Gyro.Z*dt
		pitch := t.pose.Pitch + r.Gyro.X*dt
		t.pose.Roll = wrap180(roll + (1-t.weight)*wrap180(acc.Roll-roll))
		t.pose.Pitch = pitch + (1-t.weight)*(acc.Pitch-pitch)
		t.pose.Yaw = wrap360(t.pose.Yaw + r.Gyro.Y*dt)
	}

	t.started = true
	t.last = r.Time
	return t.pose
}

// Pose returns the last computed pose.
func (t *Tracker) Pose() Pose { return t.pose }

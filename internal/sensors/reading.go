// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"time"

	"github.com/relabs-tech/sensor_flight/internal/flight"
)

// Reading is a single accelerometer sample suitable for JSON and MQTT.
// Gyro is set when the source also reports angular rate.
type Reading struct {
	Source string    `json:"source"` // "mpu9250" or "mock"
	X      float64   `json:"x"`      // g
	Y      float64   `json:"y"`
	Z      float64   `json:"z"`
	Gyro   *Rates    `json:"gyro,omitempty"`
	Time   time.Time `json:"time"`
}

// Rates is an angular rate sample in degrees per second, one value per
// device axis.
type Rates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector returns the acceleration part of the reading.
func (r Reading) Vector() flight.Vector {
	return flight.Vector{X: r.X, Y: r.Y, Z: r.Z}
}

// Source is anything that can provide accelerometer readings over time.
type Source interface {
	Next() (Reading, error)
}

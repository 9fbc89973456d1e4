// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"time"

	"github.com/relabs-tech/sensor_flight/internal/flight"
	"github.com/relabs-tech/sensor_flight/internal/location"
)

// Control actions accepted on the flight control topic.
const (
	ActionReset = "reset"
)

// Control is a command for the running flight session.
type Control struct {
	Action string `json:"action"`
}

// StateMessage is published on the flight state topic after every tick.
type StateMessage struct {
	Tick     uint64             `json:"tick"`
	State    flight.State       `json:"state"`
	Layers   []flight.TileLayer `json:"layers,omitempty"`
	Location location.Location  `json:"location"`
	Time     time.Time          `json:"time"`
}

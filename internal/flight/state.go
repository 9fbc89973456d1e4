// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package flight

import (
	"encoding/json"
	"fmt"
)

// Status is the flight state machine: Running until forward speed drops
// below the minimum, then Stopped until Reset.
type Status int

const (
	Running Status = iota
	Stopped
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case Running, Stopped:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid status %d", int(s))
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "running":
		*s = Running
	case "stopped":
		*s = Stopped
	default:
		return fmt.Errorf("invalid status %q", string(b))
	}
	return nil
}

// Point is a 2D world position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is everything the flight loop mutates once per tick.
type State struct {
	ForwardSpeed float64  `json:"speed_y"`
	LateralSpeed float64  `json:"speed_x"`
	Score        float64  `json:"score"`
	Position     Point    `json:"position"`
	Status       Status   `json:"status"`
	Attitude     Attitude `json:"attitude"`
}

var _ json.Marshaler = (*State)(nil)

// MarshalJSON adds a derived "running" flag for consumers that only
// care about the boolean.
func (s State) MarshalJSON() ([]byte, error) {
	type plain State
	return json.Marshal(struct {
		plain
		IsRunning bool `json:"is_running"`
	}{plain(s), s.Running()})
}

// NewState returns a fresh running state at the initial speeds.
func NewState(set Settings) State {
	return State{
		ForwardSpeed: set.InitialSpeedY,
		LateralSpeed: set.InitialSpeedX,
		Status:       Running,
		Attitude:     NeutralAttitude,
	}
}

// Running reports whether the state still accepts ticks.
func (s State) Running() bool { return s.Status == Running }

// Reset restarts a flight: speeds go back to their initial values and the
// attitude history is dropped. Score and position are kept.
func (s State) Reset(set Settings) State {
	s.ForwardSpeed = set.InitialSpeedY
	s.LateralSpeed = set.InitialSpeedX
	s.Attitude = NeutralAttitude
	s.Status = Running
	return s
}

// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package companion

import (
	"math/rand/v2"
	"net/url"
	"strconv"

	"github.com/relabs-tech/sensor_flight/internal/flight"
	"github.com/relabs-tech/sensor_flight/internal/location"
	"github.com/relabs-tech/sensor_flight/internal/store"
)

// GameState is the server-side shape of an exported flight.
type GameState struct {
	ID           int     `json:"id"`
	UserID       int     `json:"userID"`
	Score        float64 `json:"score"`
	IsRunning    bool    `json:"isRunning"`
	LocationName string  `json:"locationName"`
	PositionX    float64 `json:"positionX"`
	PositionY    float64 `json:"positionY"`
	SpeedX       float64 `json:"speedX"`
	SpeedY       float64 `json:"speedY"`
}

// FromSnapshot converts a local snapshot for upload.
func FromSnapshot(userID int, snap store.Snapshot) GameState {
	st := snap.State
	return GameState{
		UserID:       userID,
		Score:        st.Score,
		IsRunning:    st.Running(),
		LocationName: snap.Location.Name,
		PositionX:    st.Position.X,
		PositionY:    st.Position.Y,
		SpeedX:       st.LateralSpeed,
		SpeedY:       st.ForwardSpeed,
	}
}

// Snapshot seeds a local snapshot from a server state. The attitude is not
// stored remotely and starts neutral.
func (g GameState) Snapshot(set flight.Settings, rng *rand.Rand) store.Snapshot {
	loc, _ := location.ByName(g.LocationName, rng)
	st := flight.State{
		ForwardSpeed: g.SpeedY,
		LateralSpeed: g.SpeedX,
		Score:        g.Score,
		Position:     flight.Point{X: g.PositionX, Y: g.PositionY},
		Status:       flight.Stopped,
		Attitude:     flight.NeutralAttitude,
	}
	if g.IsRunning {
		st.Status = flight.Running
	}
	return store.Snapshot{
		SchemaVersion: store.SchemaVersion,
		State:         st,
		Location:      loc,
		Settings:      set,
	}
}

func (g GameState) form() url.Values {
	running := "0"
	if g.IsRunning {
		running = "1"
	}
	return url.Values{
		"userID":       {strconv.Itoa(g.UserID)},
		"score":        {formatFloat(g.Score)},
		"isRunning":    {running},
		"locationName": {g.LocationName},
		"positionX":    {formatFloat(g.PositionX)},
		"positionY":    {formatFloat(g.PositionY)},
		"speedX":       {formatFloat(g.SpeedX)},
		"speedY":       {formatFloat(g.SpeedY)},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

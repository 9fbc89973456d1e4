// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package flight

// Step advances s by one tick for the given attitude. It is pure: the
// returned state is the only output. A stopped state is returned as is.
func Step(att Attitude, s State, set Settings) State {
	if !s.Running() {
		return s
	}

	s.Attitude = att
	sp := UpdateSpeeds(att, s.ForwardSpeed, set)
	s.ForwardSpeed = sp.Forward
	s.LateralSpeed = sp.Lateral
	if sp.Stalled {
		s.Status = Stopped
		return s
	}

	s.Position.X += direction(att.X) * s.LateralSpeed
	s.Position.Y += s.ForwardSpeed
	s.Score = AccumulateScore(s.Score, s.ForwardSpeed, s.LateralSpeed)
	return s
}

// Frame is what one tick produces for renderers and publishers.
type Frame struct {
	Tick   uint64      `json:"tick"`
	State  State       `json:"state"`
	Layers []TileLayer `json:"layers"`
}

// Flight owns a State and its Scroller and advances both per reading.
// It is not safe for concurrent use; one goroutine drives it.
type Flight struct {
	settings Settings
	trim     Attitude
	state    State
	scroller *Scroller
	tick     uint64
}

// New starts a flight from an existing state (for example a loaded
// snapshot). The layers are placed for the state's position. Pass
// NewState(set) for a fresh one.
func New(set Settings, st State) *Flight {
	sc := NewScroller(set)
	sc.Seek(st.Position)
	return &Flight{
		settings: set,
		state:    st,
		scroller: sc,
	}
}

// SetTrim sets the level offset subtracted from every estimated attitude.
func (f *Flight) SetTrim(trim Attitude) { f.trim = trim }

// Settings returns the tunables the flight was started with.
func (f *Flight) Settings() Settings { return f.settings }

// State returns a copy of the current state.
func (f *Flight) State() State { return f.state }

// Update runs one full tick for a raw acceleration reading.
func (f *Flight) Update(v Vector) Frame {
	return f.Apply(EstimateAttitude(v).Sub(f.trim))
}

// Apply runs one tick for an already estimated attitude. Layers only
// scroll while the flight is running.
func (f *Flight) Apply(att Attitude) Frame {
	if f.state.Running() {
		f.state = Step(att, f.state, f.settings)
		if f.state.Running() {
			f.scroller.Advance(att.X, f.state.ForwardSpeed, f.state.LateralSpeed)
		}
		f.tick++
	}
	return f.Frame()
}

// Reset restarts a stopped (or running) flight at the initial speeds.
func (f *Flight) Reset() {
	f.state = f.state.Reset(f.settings)
}

// Frame snapshots the current state and layer positions.
func (f *Flight) Frame() Frame {
	layers := f.scroller.Layers()
	out := Frame{Tick: f.tick, State: f.state, Layers: make([]TileLayer, len(layers))}
	for i, l := range layers {
		cp := *l
		cp.Tiles = append([]Tile(nil), l.Tiles...)
		out.Layers[i] = cp
	}
	return out
}

// Scroller exposes the layers for renderers.
func (f *Flight) Scroller() *Scroller { return f.scroller }

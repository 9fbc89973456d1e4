// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/relabs-tech/sensor_flight/internal/flight"
	"github.com/relabs-tech/sensor_flight/internal/gps"
	"github.com/relabs-tech/sensor_flight/internal/location"
	"github.com/relabs-tech/sensor_flight/internal/sensors"
	"github.com/relabs-tech/sensor_flight/internal/store"
)

// Session adapts a sensor stream to a flight. It owns the flight and must
// be driven from a single goroutine.
type Session struct {
	flight  *flight.Flight
	loc     location.Location
	cycler  location.Cycler
	divider uint64
	seen    uint64
	fix     *gps.Fix
	now     func() time.Time
}

// NewSession resumes the flight stored in snap. Only every divider-th
// reading is turned into a tick.
func NewSession(snap store.Snapshot, divider int, trim flight.Attitude) *Session {
	if divider < 1 {
		divider = 1
	}
	f := flight.New(snap.Settings, snap.State)
	f.SetTrim(trim)

	s := &Session{
		flight:  f,
		loc:     snap.Location,
		divider: uint64(divider),
		now:     time.Now,
	}
	s.cycler.StartAt(snap.Location.Name)
	return s
}

// HandleReading feeds one sensor reading. ok is false when the reading was
// skipped by the divider.
func (s *Session) HandleReading(r sensors.Reading) (msg StateMessage, ok bool) {
	s.seen++
	if (s.seen-1)%s.divider != 0 {
		return StateMessage{}, false
	}
	return s.message(s.flight.Update(r.Vector()), r.Time), true
}

// HandleControl applies a control command.
func (s *Session) HandleControl(c Control) (StateMessage, error) {
	switch c.Action {
	case ActionReset:
		s.flight.Reset()
		s.loc = s.nextLocation()
		log.Printf("session: reset, departing from %s", s.loc.Name)
		return s.message(s.flight.Frame(), s.now()), nil
	default:
		return StateMessage{}, fmt.Errorf("unknown control action %q", c.Action)
	}
}

// HandleFix records the latest GPS fix. Before the first tick a valid fix
// relabels the flight with the nearest airport.
func (s *Session) HandleFix(f gps.Fix) {
	if !f.Valid() {
		return
	}
	s.fix = &f
	if s.flight.Frame().Tick == 0 {
		s.loc, _ = location.Nearest(f.Latitude, f.Longitude)
	}
}

// Location is the current departure label.
func (s *Session) Location() location.Location { return s.loc }

// Snapshot captures the session for persistence.
func (s *Session) Snapshot() store.Snapshot {
	return store.Snapshot{
		SchemaVersion: store.SchemaVersion,
		State:         s.flight.State(),
		Location:      s.loc,
		Settings:      s.flight.Settings(),
	}
}

func (s *Session) nextLocation() location.Location {
	if s.fix != nil {
		loc, _ := location.Nearest(s.fix.Latitude, s.fix.Longitude)
		return loc
	}
	return s.cycler.Next()
}

func (s *Session) message(fr flight.Frame, t time.Time) StateMessage {
	if t.IsZero() {
		t = s.now()
	}
	return StateMessage{
		Tick:     fr.Tick,
		State:    fr.State,
		Layers:   fr.Layers,
		Location: s.loc,
		Time:     t,
	}
}

// Inputs are the event streams a session consumes. Nil channels are never
// ready, so unused inputs can be left out.
type Inputs struct {
	Readings <-chan sensors.Reading
	Controls <-chan Control
	Fixes    <-chan gps.Fix
}

// Run processes inputs one at a time until ctx is cancelled or the readings
// channel is closed. publish is called for every produced state.
func (s *Session) Run(ctx context.Context, in Inputs, publish func(StateMessage)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case r, ok := <-in.Readings:
			if !ok {
				return nil
			}
			if msg, ok := s.HandleReading(r); ok {
				publish(msg)
			}

		case c := <-in.Controls:
			msg, err := s.HandleControl(c)
			if err != nil {
				log.Printf("session: %v", err)
				continue
			}
			publish(msg)

		case f := <-in.Fixes:
			s.HandleFix(f)
		}
	}
}

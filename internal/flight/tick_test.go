// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package flight

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func scenarioSettings() Settings {
	set := DefaultSettings()
	set.InitialSpeedY = 14
	set.InitialSpeedX = 0
	set.MinSpeedY = 3
	set.MaxSpeedY = 20
	set.VerticalTolerance = 15
	return set
}

func TestStepLevelFlightKeepsSpeed(t *testing.T) {
	set := scenarioSettings()
	s := NewState(set)
	level := Attitude{X: 0, Y: 90, Z: 0}

	for i := 1; i <= 10; i++ {
		s = Step(level, s, set)
		if s.ForwardSpeed != 14 {
			t.Fatalf("tick %d: forward=%v want=14", i, s.ForwardSpeed)
		}
		if s.LateralSpeed != 0 {
			t.Fatalf("tick %d: lateral=%v want=0", i, s.LateralSpeed)
		}
		if want := float64(14 * i); s.Score != want {
			t.Fatalf("tick %d: score=%v want=%v", i, s.Score, want)
		}
	}
	if !s.Running() {
		t.Fatalf("expected running after level flight")
	}
}

func TestStepConstantSpeedScore(t *testing.T) {
	set := scenarioSettings()
	set.InitialSpeedY = 10
	s := NewState(set)
	for i := 0; i < 5; i++ {
		s = Step(Attitude{}, s, set)
	}
	if s.Score != 50 {
		t.Fatalf("score=%v want=50", s.Score)
	}
	if s.Position.Y != 50 || s.Position.X != 0 {
		t.Fatalf("position=%+v want={0 50}", s.Position)
	}
}

func TestStepStopIsTerminalUntilReset(t *testing.T) {
	set := scenarioSettings()
	s := NewState(set)
	dive := Attitude{Z: -90}

	ticks := 0
	for s.Running() {
		s = Step(dive, s, set)
		ticks++
		if ticks > 1000 {
			t.Fatalf("never stopped, forward=%v", s.ForwardSpeed)
		}
	}
	if s.Status != Stopped {
		t.Fatalf("status=%v want=stopped", s.Status)
	}

	frozen := s
	for i := 0; i < 10; i++ {
		s = Step(Attitude{Z: 90, X: 40}, s, set)
	}
	if s != frozen {
		t.Fatalf("stopped state changed: %+v -> %+v", frozen, s)
	}

	s = s.Reset(set)
	if !s.Running() || s.ForwardSpeed != set.InitialSpeedY || s.Attitude != NeutralAttitude {
		t.Fatalf("reset state=%+v", s)
	}
	if s.Score != frozen.Score {
		t.Fatalf("reset changed score %v -> %v", frozen.Score, s.Score)
	}
}

func TestStepScoreNeverDecreases(t *testing.T) {
	set := DefaultSettings()
	s := NewState(set)
	atts := []Attitude{{Z: 40, X: -30}, {Z: -20, X: 10}, {Z: 0, X: 60}, {Z: -60}}
	prev := s.Score
	for i := 0; i < 200; i++ {
		s = Step(atts[i%len(atts)], s, set)
		if s.Score < prev {
			t.Fatalf("tick %d: score went %v -> %v", i, prev, s.Score)
		}
		if s.ForwardSpeed < set.MinSpeedY || s.ForwardSpeed > set.MaxSpeedY {
			t.Fatalf("tick %d: forward %v out of bounds", i, s.ForwardSpeed)
		}
		if s.LateralSpeed < 0 || s.LateralSpeed > set.MaxSpeedX {
			t.Fatalf("tick %d: lateral %v out of bounds", i, s.LateralSpeed)
		}
		prev = s.Score
	}
}

func TestFlightFreezesLayersWhenStopped(t *testing.T) {
	set := scenarioSettings()
	st := NewState(set)
	st.ForwardSpeed = set.MinSpeedY + 0.01
	f := New(set, st)

	fr := f.Apply(Attitude{Z: -90, X: 20})
	if fr.State.Running() {
		t.Fatalf("expected stop on first dive tick")
	}
	before := f.Frame()
	f.Apply(Attitude{Z: 0, X: 45})
	after := f.Frame()
	if after.Tick != before.Tick {
		t.Fatalf("tick advanced while stopped: %d -> %d", before.Tick, after.Tick)
	}
	for i := range before.Layers {
		for j := range before.Layers[i].Tiles {
			if before.Layers[i].Tiles[j] != after.Layers[i].Tiles[j] {
				t.Fatalf("layer %s moved while stopped", before.Layers[i].Name)
			}
		}
	}

	f.Reset()
	fr = f.Apply(Attitude{})
	if !fr.State.Running() || fr.Tick != after.Tick+1 {
		t.Fatalf("after reset: running=%v tick=%d", fr.State.Running(), fr.Tick)
	}
}

func TestFlightUpdateAppliesTrim(t *testing.T) {
	set := scenarioSettings()
	f := New(set, NewState(set))
	// raw reading tilted 30° on X; trim cancels it
	f.SetTrim(EstimateAttitude(Vector{X: -0.5, Y: 0, Z: -0.8660254037844386}))
	fr := f.Update(Vector{X: -0.5, Y: 0, Z: -0.8660254037844386})
	if fr.State.LateralSpeed != 0 {
		t.Fatalf("lateral=%v want=0 with trim", fr.State.LateralSpeed)
	}
}

func TestFrameIsACopy(t *testing.T) {
	set := DefaultSettings()
	f := New(set, NewState(set))
	fr := f.Frame()
	fr.Layers[0].Tiles[0].X = 12345
	if f.Scroller().Sky.Tiles[0].X == 12345 {
		t.Fatalf("frame shares tiles with flight")
	}
}

func TestStateJSON(t *testing.T) {
	set := DefaultSettings()
	s := NewState(set)
	s.Status = Stopped
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"status":"stopped"`) || !strings.Contains(string(b), `"is_running":false`) {
		t.Fatalf("unexpected json %s", b)
	}
	var back State
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != s {
		t.Fatalf("got=%+v want=%+v", back, s)
	}
}

func TestResumedFlightContinuesLayers(t *testing.T) {
	set := scenarioSettings()
	f := New(set, NewState(set))

	tilts := []Attitude{
		{X: 20, Y: 90, Z: 30},
		{X: -35, Y: 90, Z: 0},
		{X: 5, Y: 90, Z: -20},
		{X: 0, Y: 90, Z: 40},
	}
	for i := 0; i < 37; i++ {
		f.Apply(tilts[i%len(tilts)])
	}
	if !f.State().Running() {
		t.Fatalf("flight stalled: %+v", f.State())
	}

	resumed := New(set, f.State())
	want := f.Frame().Layers
	got := resumed.Frame().Layers
	for i := range want {
		w, g := want[i], got[i]
		for j := range w.Tiles {
			if !closeMod(g.Tiles[j].X, w.Tiles[j].X, w.TileWidth*float64(w.Cols)) {
				t.Fatalf("%s tile %d: x=%v want=%v", w.Name, j, g.Tiles[j].X, w.Tiles[j].X)
			}
			if w.Rows >= 2 && !closeMod(g.Tiles[j].Y, w.Tiles[j].Y, w.TileHeight*float64(w.Rows)) {
				t.Fatalf("%s tile %d: y=%v want=%v", w.Name, j, g.Tiles[j].Y, w.Tiles[j].Y)
			}
			if w.Rows < 2 && g.Tiles[j].Y != w.Tiles[j].Y {
				t.Fatalf("%s tile %d: y=%v want=%v", w.Name, j, g.Tiles[j].Y, w.Tiles[j].Y)
			}
		}
	}
}

func TestNewFlightAtOriginKeepsLayout(t *testing.T) {
	set := scenarioSettings()
	f := New(set, NewState(set))
	fresh := NewScroller(set)
	for i, l := range fresh.Layers() {
		for j, tile := range l.Tiles {
			if got := f.Frame().Layers[i].Tiles[j]; got != tile {
				t.Fatalf("%s tile %d: got=%+v want=%+v", l.Name, j, got, tile)
			}
		}
	}
}

func closeMod(a, b, m float64) bool {
	d := math.Mod(math.Abs(a-b), m)
	return d < 1e-6 || m-d < 1e-6
}

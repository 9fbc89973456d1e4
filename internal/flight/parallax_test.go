// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package flight

import (
	"math"
	"testing"
)

func TestNewTileLayerLayout(t *testing.T) {
	l := NewTileLayer("ground", 100, 100, 2, 2, 1, 1)
	want := []Tile{{-100, -100}, {0, -100}, {-100, 0}, {0, 0}}
	if len(l.Tiles) != len(want) {
		t.Fatalf("tiles=%d want=%d", len(l.Tiles), len(want))
	}
	for i := range want {
		if l.Tiles[i] != want[i] {
			t.Fatalf("tile %d: got=%+v want=%+v", i, l.Tiles[i], want[i])
		}
	}
}

func TestTileLayerWrapStaysInBounds(t *testing.T) {
	l := NewTileLayer("ground", 100, 100, 2, 2, 1, 1)
	for i := 0; i < 500; i++ {
		dx := 37.5
		if i%3 == 0 {
			dx = -61.25
		}
		l.Advance(dx, 14)
		for _, tile := range l.Tiles {
			if tile.X < -100 || tile.X >= 100 || tile.Y < -100 || tile.Y >= 100 {
				t.Fatalf("tick %d: tile out of bounds %+v", i, tile)
			}
		}
	}
}

func TestTileLayerWrapPreservesDistance(t *testing.T) {
	const w = 480.0
	l := NewTileLayer("ground", w, w, 2, 2, 1, 1)
	start := append([]Tile(nil), l.Tiles...)

	var rawX, rawY float64
	steps := []struct{ dx, dy float64 }{
		{2.5, 14}, {-7.25, 20}, {10, 3}, {0, 19.5}, {-10, 14},
	}
	for n := 0; n < 400; n++ {
		s := steps[n%len(steps)]
		l.Advance(s.dx, s.dy)
		rawX += s.dx
		rawY += s.dy

		for i, tile := range l.Tiles {
			if !sameMod(tile.X, start[i].X+rawX, 2*w) {
				t.Fatalf("tick %d tile %d: x=%v raw=%v differ mod %v", n, i, tile.X, start[i].X+rawX, 2*w)
			}
			if !sameMod(tile.Y, start[i].Y+rawY, 2*w) {
				t.Fatalf("tick %d tile %d: y=%v raw=%v differ mod %v", n, i, tile.Y, start[i].Y+rawY, 2*w)
			}
		}
	}
}

func TestTileLayerKeepsTilingContiguous(t *testing.T) {
	l := NewTileLayer("sky", 300, 50, 2, 1, 1, 0)
	for i := 0; i < 100; i++ {
		l.Advance(-23.75, 99)
		a, b := l.Tiles[0].X, l.Tiles[1].X
		if d := math.Abs(a - b); d != 300 {
			t.Fatalf("tick %d: tiles %v and %v are %v apart, want 300", i, a, b, d)
		}
		if l.Tiles[0].Y != -50 || l.Tiles[1].Y != -50 {
			t.Fatalf("tick %d: layer with CoeffY=0 moved vertically: %+v", i, l.Tiles)
		}
	}
}

func TestTileLayerLargeStepWraps(t *testing.T) {
	l := NewTileLayer("ground", 100, 100, 2, 1, 1, 0)
	l.Advance(1050, 0)
	// -100+1050 = 950 -> 950 mod 200 in [-100,100) = -50
	if l.Tiles[0].X != -50 {
		t.Fatalf("x=%v want=-50", l.Tiles[0].X)
	}
}

func TestScrollerDirectionFollowsTilt(t *testing.T) {
	set := DefaultSettings()
	cases := []struct {
		tilt float64
		sign float64
	}{{12, 1}, {-12, -1}, {0, 0}}
	for _, tc := range cases {
		s := NewScroller(set)
		x0 := s.Ground.Tiles[3].X
		s.Advance(tc.tilt, 0, 5)
		if got := s.Ground.Tiles[3].X - x0; got != 5*tc.sign {
			t.Fatalf("tilt %v: ground moved %v want %v", tc.tilt, got, 5*tc.sign)
		}
	}
}

func TestScrollerLayerCoefficients(t *testing.T) {
	set := DefaultSettings()
	s := NewScroller(set)
	sky0 := s.Sky.Tiles[0]
	mnt0 := s.Mountains.Tiles[0]
	s.Advance(30, 10, 4)

	if got, want := s.Sky.Tiles[0].X-sky0.X, 4*set.SkyCoeffX; math.Abs(got-want) > 1e-12 {
		t.Fatalf("sky dx=%v want=%v", got, want)
	}
	if got, want := s.Sky.Tiles[0].Y-sky0.Y, 10*set.SkyCoeffY; math.Abs(got-want) > 1e-12 {
		t.Fatalf("sky dy=%v want=%v", got, want)
	}
	if got, want := s.Mountains.Tiles[0].X-mnt0.X, 4*set.MountainCoeffX; math.Abs(got-want) > 1e-12 {
		t.Fatalf("mountain dx=%v want=%v", got, want)
	}
	if s.Mountains.Tiles[0].Y != mnt0.Y {
		t.Fatalf("mountains moved vertically")
	}
}

func sameMod(a, b, m float64) bool {
	ra := math.Mod(a, m)
	if ra < 0 {
		ra += m
	}
	rb := math.Mod(b, m)
	if rb < 0 {
		rb += m
	}
	d := math.Abs(ra - rb)
	return d < 1e-9 || math.Abs(d-m) < 1e-9
}

// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package flight

import "math"

// Tile is one sprite of a layer. X/Y is its top-left corner relative to
// the layer's reference frame.
type Tile struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TileLayer is a cols x rows grid of equally sized tiles scrolled at a
// layer-specific rate.
//
// An axis with at least two tiles is wrapped: tile coordinates stay in
// [-size, (n-1)*size) and a tile leaving that range is shifted by exactly
// n*size, so tiling stays gap-free and no distance is lost.
type TileLayer struct {
	Name       string  `json:"name"`
	TileWidth  float64 `json:"tile_width"`
	TileHeight float64 `json:"tile_height"`
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	CoeffX     float64 `json:"coeff_x"`
	CoeffY     float64 `json:"coeff_y"`
	Tiles      []Tile  `json:"tiles"`
}

// NewTileLayer lays out cols*rows tiles starting at (-w, -h), row by row.
func NewTileLayer(name string, w, h float64, cols, rows int, coeffX, coeffY float64) *TileLayer {
	l := &TileLayer{
		Name:       name,
		TileWidth:  w,
		TileHeight: h,
		Cols:       cols,
		Rows:       rows,
		CoeffX:     coeffX,
		CoeffY:     coeffY,
		Tiles:      make([]Tile, 0, cols*rows),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			l.Tiles = append(l.Tiles, Tile{
				X: float64(c-1) * w,
				Y: float64(r-1) * h,
			})
		}
	}
	return l
}

// WrapsX reports whether horizontal wraparound applies to the layer.
func (l *TileLayer) WrapsX() bool { return l.Cols >= 2 && l.TileWidth > 0 }

// WrapsY reports whether vertical wraparound applies to the layer.
func (l *TileLayer) WrapsY() bool { return l.Rows >= 2 && l.TileHeight > 0 }

// Advance moves every tile by (dx*CoeffX, dy*CoeffY) and wraps it back
// into view.
func (l *TileLayer) Advance(dx, dy float64) {
	mx := dx * l.CoeffX
	my := dy * l.CoeffY
	for i := range l.Tiles {
		t := &l.Tiles[i]
		t.X += mx
		t.Y += my
		if l.WrapsX() {
			t.X = wrap(t.X, l.TileWidth, l.Cols)
		}
		if l.WrapsY() {
			t.Y = wrap(t.Y, l.TileHeight, l.Rows)
		}
	}
}

// wrap folds v into [-size, (n-1)*size).
func wrap(v, size float64, n int) float64 {
	span := size * float64(n)
	lo := -size
	if v >= lo && v < lo+span {
		return v
	}
	off := math.Mod(v-lo, span)
	if off < 0 {
		off += span
	}
	return lo + off
}

// Scroller holds the three parallax layers of the flight scene.
type Scroller struct {
	Ground    *TileLayer `json:"ground"`
	Sky       *TileLayer `json:"sky"`
	Mountains *TileLayer `json:"mountains"`
}

// NewScroller builds the ground (2x2), sky (2x2) and mountain (2x1) layers.
// Ground moves at the unscaled speeds.
func NewScroller(set Settings) *Scroller {
	return &Scroller{
		Ground:    NewTileLayer("ground", set.GroundTileSize, set.GroundTileSize, 2, 2, 1, 1),
		Sky:       NewTileLayer("sky", set.SkyTileWidth, set.SkyTileHeight, 2, 2, set.SkyCoeffX, set.SkyCoeffY),
		Mountains: NewTileLayer("mountains", set.MountainTileWidth, set.MountainTileHeight, 2, 1, set.MountainCoeffX, 0),
	}
}

// Layers returns the layers back to front.
func (s *Scroller) Layers() []*TileLayer {
	return []*TileLayer{s.Sky, s.Mountains, s.Ground}
}

// Seek moves freshly built layers to where they are after travelling p in
// total. Since wrapping is exact, one move equals the sum of per-tick moves.
func (s *Scroller) Seek(p Point) {
	for _, l := range s.Layers() {
		l.Advance(p.X, p.Y)
	}
}

// Advance scrolls every layer for one tick. The horizontal direction is the
// sign of the roll-like tilt; a level X does not scroll sideways.
func (s *Scroller) Advance(tiltX, forward, lateral float64) {
	dx := direction(tiltX) * lateral
	for _, l := range s.Layers() {
		l.Advance(dx, forward)
	}
}

func direction(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

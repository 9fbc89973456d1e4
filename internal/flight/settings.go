// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package flight

// Default tunables.
const (
	DefaultSkyCoeffX            = 0.025
	DefaultSkyCoeffY            = 0.0085
	DefaultMountainCoeffX       = 0.055
	DefaultInitialSpeedY        = 14.0
	DefaultInitialSpeedX        = 0.0
	DefaultMaxSpeedY            = 20.0
	DefaultMaxSpeedX            = 10.0
	DefaultMinSpeedY            = 3.0
	DefaultVerticalTolerance    = 15.0 // |Z| in degrees before forward speed is altered
	DefaultGrowthConstant       = 0.01
	DefaultLateralSaturationDeg = 45.0 // |X| at which lateral speed reaches MaxSpeedX

	// Tile sizes in screen units.
	DefaultGroundTileSize     = 480.0
	DefaultSkyTileWidth       = 1728.0
	DefaultSkyTileHeight      = 270.0
	DefaultMountainTileWidth  = 1200.0
	DefaultMountainTileHeight = 200.0
)

// Settings is the immutable set of flight tunables for one session.
// It is loaded from configuration and only replaced between sessions.
type Settings struct {
	SkyCoeffX            float64 `json:"sky_coeff_x"`
	SkyCoeffY            float64 `json:"sky_coeff_y"`
	MountainCoeffX       float64 `json:"mountain_coeff_x"`
	InitialSpeedY        float64 `json:"initial_speed_y"`
	InitialSpeedX        float64 `json:"initial_speed_x"`
	MaxSpeedY            float64 `json:"max_speed_y"`
	MaxSpeedX            float64 `json:"max_speed_x"`
	MinSpeedY            float64 `json:"min_speed_y"`
	VerticalTolerance    float64 `json:"vertical_tolerance"`
	GrowthConstant       float64 `json:"growth_constant"`
	LateralSaturationDeg float64 `json:"lateral_saturation_deg"`

	GroundTileSize     float64 `json:"ground_tile_size"`
	SkyTileWidth       float64 `json:"sky_tile_width"`
	SkyTileHeight      float64 `json:"sky_tile_height"`
	MountainTileWidth  float64 `json:"mountain_tile_width"`
	MountainTileHeight float64 `json:"mountain_tile_height"`
}

// DefaultSettings returns the stock tunables.
func DefaultSettings() Settings {
	return Settings{
		SkyCoeffX:            DefaultSkyCoeffX,
		SkyCoeffY:            DefaultSkyCoeffY,
		MountainCoeffX:       DefaultMountainCoeffX,
		InitialSpeedY:        DefaultInitialSpeedY,
		InitialSpeedX:        DefaultInitialSpeedX,
		MaxSpeedY:            DefaultMaxSpeedY,
		MaxSpeedX:            DefaultMaxSpeedX,
		MinSpeedY:            DefaultMinSpeedY,
		VerticalTolerance:    DefaultVerticalTolerance,
		GrowthConstant:       DefaultGrowthConstant,
		LateralSaturationDeg: DefaultLateralSaturationDeg,
		GroundTileSize:       DefaultGroundTileSize,
		SkyTileWidth:         DefaultSkyTileWidth,
		SkyTileHeight:        DefaultSkyTileHeight,
		MountainTileWidth:    DefaultMountainTileWidth,
		MountainTileHeight:   DefaultMountainTileHeight,
	}
}

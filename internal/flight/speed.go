// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package flight

import "math"

// Speeds is the output of the speed model for one tick.
type Speeds struct {
	Forward float64
	Lateral float64
	Stalled bool // forward speed fell below MinSpeedY
}

// UpdateSpeeds derives new forward and lateral speeds from the attitude.
//
// Forward speed only changes once |Z| exceeds the vertical tolerance, by
// e^(k*Z) - 1, so tilting one way accelerates and the other way brakes.
// It is capped at MaxSpeedY. A result below MinSpeedY stalls the flight;
// the returned speeds are then pinned to MinSpeedY and 0.
//
// Lateral speed grows linearly with |X| up to MaxSpeedX and is scaled by
// forward/MaxSpeedY so it fades out as the plane slows down.
func UpdateSpeeds(att Attitude, forward float64, set Settings) Speeds {
	if math.Abs(att.Z) > set.VerticalTolerance {
		forward += math.Exp(set.GrowthConstant*att.Z) - 1
	}
	if forward > set.MaxSpeedY {
		forward = set.MaxSpeedY
	}
	if forward < set.MinSpeedY {
		return Speeds{Forward: set.MinSpeedY, Lateral: 0, Stalled: true}
	}

	return Speeds{
		Forward: forward,
		Lateral: lateralSpeed(att.X, forward, set),
	}
}

func lateralSpeed(x, forward float64, set Settings) float64 {
	if set.MaxSpeedY <= 0 || set.LateralSaturationDeg <= 0 {
		return 0
	}
	share := math.Abs(x) / set.LateralSaturationDeg
	if share > 1 {
		share = 1
	}
	lateral := round2(set.MaxSpeedX * share * (forward / set.MaxSpeedY))
	return math.Min(lateral, set.MaxSpeedX)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

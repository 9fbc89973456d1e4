// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package flight

import "math"

// AccumulateScore adds the speed magnitude of one tick to score.
func AccumulateScore(score, forward, lateral float64) float64 {
	return score + math.Hypot(forward, lateral)
}

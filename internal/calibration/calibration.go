// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package calibration estimates the attitude a device reports while held
// level, so the flight loop can subtract it as a trim.
package calibration

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/relabs-tech/sensor_flight/internal/flight"
)

const (
	schemaVersion = 1

	// stillness thresholds on the attitude standard deviation, in degrees
	stillStdGood = 0.5
	stillStdBad  = 3.0

	// never report a hard zero unless capture failed
	confFloor = 0.05
)

// ErrNoSamples is returned when a capture produced nothing to average.
var ErrNoSamples = errors.New("calibration: no samples")

// Result is the stored calibration.
type Result struct {
	SchemaVersion int             `json:"schema_version"`
	CalibratedAt  string          `json:"calibrated_at"` // RFC3339
	Samples       int             `json:"samples"`
	Trim          flight.Attitude `json:"trim"`
	StdDev        flight.Attitude `json:"stddev"`
	Confidence    float64         `json:"confidence"`
}

// Compute averages the attitudes captured while the device was held level.
func Compute(samples []flight.Attitude) (Result, error) {
	if len(samples) == 0 {
		return Result{}, ErrNoSamples
	}

	var mean flight.Attitude
	for _, a := range samples {
		mean.X += a.X
		mean.Y += a.Y
		mean.Z += a.Z
	}
	n := float64(len(samples))
	mean.X /= n
	mean.Y /= n
	mean.Z /= n

	var sd flight.Attitude
	for _, a := range samples {
		sd.X += (a.X - mean.X) * (a.X - mean.X)
		sd.Y += (a.Y - mean.Y) * (a.Y - mean.Y)
		sd.Z += (a.Z - mean.Z) * (a.Z - mean.Z)
	}
	sd.X = math.Sqrt(sd.X / n)
	sd.Y = math.Sqrt(sd.Y / n)
	sd.Z = math.Sqrt(sd.Z / n)

	return Result{
		SchemaVersion: schemaVersion,
		CalibratedAt:  time.Now().Format(time.RFC3339),
		Samples:       len(samples),
		Trim:          flight.Attitude{X: mean.X, Z: mean.Z},
		StdDev:        sd,
		Confidence:    stillnessConfidence(math.Max(sd.X, sd.Z)),
	}, nil
}

// stillnessConfidence maps the worst control-axis deviation to [confFloor, 1].
func stillnessConfidence(std float64) float64 {
	if std <= stillStdGood {
		return 1
	}
	if std >= stillStdBad {
		return confFloor
	}
	frac := (std - stillStdGood) / (stillStdBad - stillStdGood)
	return math.Max(confFloor, 1-frac)
}

// Save writes the result as indented JSON.
func Save(path string, res Result) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal calibration: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write calibration: %w", err)
	}
	return nil
}

// Load reads a stored calibration.
func Load(path string) (Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read calibration: %w", err)
	}
	var res Result
	if err := json.Unmarshal(b, &res); err != nil {
		return Result{}, fmt.Errorf("decode calibration: %w", err)
	}
	if res.SchemaVersion != schemaVersion {
		return Result{}, fmt.Errorf("calibration schema %d, want %d", res.SchemaVersion, schemaVersion)
	}
	return res, nil
}

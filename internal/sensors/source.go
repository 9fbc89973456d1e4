// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"

	"github.com/relabs-tech/sensor_flight/internal/config"
)

// Open returns the Source selected by SENSOR_SOURCE.
func Open(cfg *config.Config) (Source, error) {
	switch cfg.SensorSource {
	case "mock":
		return NewMockSource(), nil
	case "mpu9250":
		return NewMPU9250Source(cfg.IMUSPIDevice, cfg.IMUCSPin)
	default:
		return nil, fmt.Errorf("unknown sensor source %q", cfg.SensorSource)
	}
}

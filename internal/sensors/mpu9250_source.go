// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/mpu9250"
	"periph.io/x/host/v3"
)

const (
	// countsPerG is the accelerometer sensitivity at the ±2g range.
	countsPerG = 16384.0
	// countsPerDPS is the gyro sensitivity at the ±250°/s range.
	countsPerDPS = 131.0
)

type mpu9250Source struct {
	imu *mpu9250.MPU9250
}

// NewMPU9250Source initializes an MPU9250 over SPI and returns a Source
// reporting its accelerometer in g and its gyro in °/s.
func NewMPU9250Source(spiDev, csPin string) (Source, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("mpu9250: periph host init: %w", err)
	}

	cs := gpioreg.ByName(csPin)
	if cs == nil {
		return nil, fmt.Errorf("mpu9250: CS pin %q not found", csPin)
	}

	tr, err := mpu9250.NewSpiTransport(spiDev, cs)
	if err != nil {
		return nil, fmt.Errorf("mpu9250: SPI transport (%s): %w", spiDev, err)
	}

	imu, err := mpu9250.New(*tr)
	if err != nil {
		return nil, fmt.Errorf("mpu9250: device creation: %w", err)
	}

	if err := imu.Init(); err != nil {
		return nil, fmt.Errorf("mpu9250: initialization: %w", err)
	}
	if err := imu.SetAccelRange(0); err != nil {
		return nil, fmt.Errorf("mpu9250: accel range: %w", err)
	}
	if err := imu.SetGyroRange(0); err != nil {
		return nil, fmt.Errorf("mpu9250: gyro range: %w", err)
	}

	return &mpu9250Source{imu: imu}, nil
}

func (s *mpu9250Source) Next() (Reading, error) {
	ax, err := s.imu.GetAccelerationX()
	if err != nil {
		return Reading{}, fmt.Errorf("mpu9250: acc X: %w", err)
	}
	ay, err := s.imu.GetAccelerationY()
	if err != nil {
		return Reading{}, fmt.Errorf("mpu9250: acc Y: %w", err)
	}
	az, err := s.imu.GetAccelerationZ()
	if err != nil {
		return Reading{}, fmt.Errorf("mpu9250: acc Z: %w", err)
	}

	gx, err := s.imu.GetRotationX()
	if err != nil {
		return Reading{}, fmt.Errorf("mpu9250: gyro X: %w", err)
	}
	gy, err := s.imu.GetRotationY()
	if err != nil {
		return Reading{}, fmt.Errorf("mpu9250: gyro Y: %w", err)
	}
	gz, err := s.imu.GetRotationZ()
	if err != nil {
		return Reading{}, fmt.Errorf("mpu9250: gyro Z: %w", err)
	}

	return Reading{
		Source: "mpu9250",
		X:      float64(ax) / countsPerG,
		Y:      float64(ay) / countsPerG,
		Z:      float64(az) / countsPerG,
		Gyro: &Rates{
			X: float64(gx) / countsPerDPS,
			Y: float64(gy) / countsPerDPS,
			Z: float64(gz) / countsPerDPS,
		},
		Time: time.Now(),
	}, nil
}

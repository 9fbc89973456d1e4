// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/relabs-tech/sensor_flight/internal/calibration"
	"github.com/relabs-tech/sensor_flight/internal/config"
	"github.com/relabs-tech/sensor_flight/internal/flight"
	"github.com/relabs-tech/sensor_flight/internal/sensors"
)

// RunCalibrate guides the user through holding the device level and stores
// the averaged attitude as the level trim.
func RunCalibrate(cfg *config.Config, hold time.Duration, in io.Reader, out io.Writer) error {
	src, err := sensors.Open(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Hold the device level in its flying position.")
	fmt.Fprint(out, "Press ENTER to start... ")
	if _, err := bufio.NewReader(in).ReadString('\n'); err != nil && err != io.EOF {
		return fmt.Errorf("read prompt: %w", err)
	}

	interval := cfg.ReportInterval()
	n := int(hold / interval)
	if n < 1 {
		n = 1
	}
	fmt.Fprintf(out, "Capturing %d readings over %v, keep still...\n", n, hold)

	samples, err := captureAttitudes(src, n, interval)
	if err != nil {
		return err
	}

	res, err := calibration.Compute(samples)
	if err != nil {
		return err
	}
	if err := calibration.Save(cfg.CalibrationPath, res); err != nil {
		return err
	}

	fmt.Fprintf(out, "Trim X=%.2f Z=%.2f (std %.2f/%.2f, confidence %.2f)\n",
		res.Trim.X, res.Trim.Z, res.StdDev.X, res.StdDev.Z, res.Confidence)
	log.Printf("calibrate: saved level trim to %s", cfg.CalibrationPath)
	return nil
}

// captureAttitudes reads n samples, interval apart, and returns their
// attitudes. Read errors are skipped; an error is returned only when no
// reading succeeded.
func captureAttitudes(src sensors.Source, n int, interval time.Duration) ([]flight.Attitude, error) {
	samples := make([]flight.Attitude, 0, n)
	var lastErr error
	for i := 0; i < n; i++ {
		if i > 0 && interval > 0 {
			time.Sleep(interval)
		}
		r, err := src.Next()
		if err != nil {
			lastErr = err
			continue
		}
		samples = append(samples, flight.EstimateAttitude(r.Vector()))
	}
	if len(samples) == 0 && lastErr != nil {
		return nil, fmt.Errorf("no readings captured: %w", lastErr)
	}
	return samples, nil
}

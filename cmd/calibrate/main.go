// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Level trim calibration: averages the attitude while the device is held
// level and writes the X/Z offsets to CALIBRATION_PATH.
//
// Run:
//
//	go run ./cmd/calibrate -config ./flight_config.txt -hold 5s
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/relabs-tech/sensor_flight/internal/app"
	"github.com/relabs-tech/sensor_flight/internal/config"
)

func main() {
	configPath := flag.String("config", "./flight_config.txt", "path to configuration file")
	hold := flag.Duration("hold", 5*time.Second, "how long to sample the level pose")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunCalibrate(cfg, *hold, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

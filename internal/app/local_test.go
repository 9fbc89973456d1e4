// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/relabs-tech/sensor_flight/internal/config"
	"github.com/relabs-tech/sensor_flight/internal/sensors"
	"github.com/relabs-tech/sensor_flight/internal/store"
)

func TestFlyLocalCancelIsCleanExit(t *testing.T) {
	cfg := config.Default()
	cfg.SnapshotPath = filepath.Join(t.TempDir(), "flight_state.json")
	cfg.CalibrationPath = ""
	cfg.ReadingDivider = 1

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var ticks int
	err := flyLocal(ctx, cfg, &scriptedSource{readings: []sensors.Reading{levelReading}}, func(StateMessage) {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})
	if err != nil {
		t.Fatalf("err=%v want=nil after cancel", err)
	}
	if ticks < 3 {
		t.Fatalf("ticks=%d want>=3", ticks)
	}

	snap, err := store.Load(cfg.SnapshotPath, nil)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snap.State.Score < 3*14 {
		t.Fatalf("saved score=%v want>=42", snap.State.Score)
	}
}

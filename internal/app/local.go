// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/sensor_flight/internal/config"
	"github.com/relabs-tech/sensor_flight/internal/sensors"
	"github.com/relabs-tech/sensor_flight/internal/store"
)

// RunLocalFlight flies against the configured sensor without a broker and
// prints every state. Handy on a bench with the mock source.
func RunLocalFlight(cfg *config.Config) error {
	src, err := sensors.Open(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return flyLocal(ctx, cfg, src, func(msg StateMessage) {
		fmt.Println(formatState(msg))
	})
}

// flyLocal runs a session fed straight from src until ctx ends, then saves
// the snapshot. Cancellation is a normal exit.
func flyLocal(ctx context.Context, cfg *config.Config, src sensors.Source, publish func(StateMessage)) error {
	snap := store.LoadOrNew(cfg.SnapshotPath, cfg.Flight, nil)
	sess := NewSession(snap, cfg.ReadingDivider, loadTrim(cfg.CalibrationPath))

	readings := make(chan sensors.Reading)
	go func() {
		defer close(readings)
		ticker := time.NewTicker(cfg.ReportInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			r, err := src.Next()
			if err != nil {
				log.Printf("local: read error: %v", err)
				continue
			}
			select {
			case readings <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	err := sess.Run(ctx, Inputs{Readings: readings}, publish)

	if saveErr := store.Save(cfg.SnapshotPath, sess.Snapshot()); saveErr != nil {
		log.Printf("local: %v", saveErr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

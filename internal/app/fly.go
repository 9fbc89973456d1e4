// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/sensor_flight/internal/calibration"
	"github.com/relabs-tech/sensor_flight/internal/companion"
	"github.com/relabs-tech/sensor_flight/internal/config"
	"github.com/relabs-tech/sensor_flight/internal/flight"
	"github.com/relabs-tech/sensor_flight/internal/gps"
	"github.com/relabs-tech/sensor_flight/internal/sensors"
	"github.com/relabs-tech/sensor_flight/internal/store"
)

// RunFly runs the flight session: it resumes the stored snapshot, steps the
// flight for every accepted reading from the broker and publishes the result.
// On shutdown the session is saved and, when configured, exported to the
// companion server.
func RunFly(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap := store.LoadOrNew(cfg.SnapshotPath, cfg.Flight, nil)
	sess := NewSession(snap, cfg.ReadingDivider, loadTrim(cfg.CalibrationPath))
	log.Printf("fly: departing from %s (score=%.0f, status=%s)", snap.Location.Name, snap.State.Score, snap.State.Status)

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDFly)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	readings := make(chan sensors.Reading, 64)
	controls := make(chan Control, 8)
	fixes := make(chan gps.Fix, 8)

	if err := subscribeJSON(client, cfg.TopicAccel, readings, log.Printf); err != nil {
		return err
	}
	if err := subscribeJSON(client, cfg.TopicFlightControl, controls, log.Printf); err != nil {
		return err
	}
	topics := []string{cfg.TopicAccel, cfg.TopicFlightControl}
	if cfg.TopicGPS != "" {
		if err := subscribeJSON(client, cfg.TopicGPS, fixes, log.Printf); err != nil {
			return err
		}
		topics = append(topics, cfg.TopicGPS)
	}
	log.Printf("fly: subscribed to %v, publishing on %s", topics, cfg.TopicFlightState)

	err = sess.Run(ctx, Inputs{Readings: readings, Controls: controls, Fixes: fixes}, func(msg StateMessage) {
		if err := publishJSON(client, cfg.TopicFlightState, true, msg); err != nil {
			log.Printf("fly: %v", err)
		}
	})

	if token := client.Unsubscribe(topics...); token.Wait() && token.Error() != nil {
		log.Printf("fly: unsubscribe error: %v", token.Error())
	}

	final := sess.Snapshot()
	if saveErr := store.Save(cfg.SnapshotPath, final); saveErr != nil {
		log.Printf("fly: %v", saveErr)
	} else {
		log.Printf("fly: saved snapshot to %s (score=%.0f)", cfg.SnapshotPath, final.State.Score)
	}

	exportSnapshot(cfg, final)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadTrim returns the stored level trim, or zero when none is available.
func loadTrim(path string) flight.Attitude {
	if path == "" {
		return flight.Attitude{}
	}
	res, err := calibration.Load(path)
	if err != nil {
		log.Printf("fly: no level trim applied: %v", err)
		return flight.Attitude{}
	}
	log.Printf("fly: level trim X=%.2f Z=%.2f (confidence %.2f)", res.Trim.X, res.Trim.Z, res.Confidence)
	return res.Trim
}

// exportSnapshot posts the final state to the companion server if a user is
// configured. Failures are logged only.
func exportSnapshot(cfg *config.Config, snap store.Snapshot) {
	if cfg.CompanionUserID <= 0 {
		return
	}
	timeout := time.Duration(cfg.CompanionTimeout) * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c := companion.NewClient(cfg.CompanionURL, timeout)
	if err := c.CreateGameState(ctx, companion.FromSnapshot(cfg.CompanionUserID, snap)); err != nil {
		log.Printf("fly: companion export skipped: %v", err)
		return
	}
	log.Printf("fly: exported game state for user %d", cfg.CompanionUserID)
}

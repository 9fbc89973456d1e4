// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/sensor_flight/internal/config"
	"github.com/relabs-tech/sensor_flight/internal/flight"
	"github.com/relabs-tech/sensor_flight/internal/sensors"
)

// RunAccelProducer samples the configured accelerometer and publishes every
// reading to the acceleration topic until interrupted.
func RunAccelProducer(cfg *config.Config) error {
	log.Printf("accel producer: starting (source=%s)", cfg.SensorSource)

	src, err := sensors.Open(cfg)
	if err != nil {
		return err
	}

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDProducer)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := cfg.ReportInterval()
	log.Printf("accel producer: connected to MQTT, publishing every %v on %s", interval, cfg.TopicAccel)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var published uint64
	for {
		select {
		case <-ctx.Done():
			log.Printf("accel producer: stopping after %d readings", published)
			return nil
		case <-ticker.C:
		}

		r, err := src.Next()
		if err != nil {
			log.Printf("accel producer: read error: %v", err)
			continue
		}
		if err := publishJSON(client, cfg.TopicAccel, false, r); err != nil {
			log.Printf("accel producer: %v", err)
			continue
		}
		published++

		if cfg.ShowDebugInfo {
			att := flight.EstimateAttitude(r.Vector())
			log.Printf("accel producer: x=%.3f y=%.3f z=%.3f | X=%.1f Y=%.1f Z=%.1f",
				r.X, r.Y, r.Z, att.X, att.Y, att.Z)
		}
	}
}

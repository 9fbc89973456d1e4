// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/sensor_flight/internal/config"
	"github.com/relabs-tech/sensor_flight/internal/flight"
	"github.com/relabs-tech/sensor_flight/internal/gps"
	"github.com/relabs-tech/sensor_flight/internal/orientation"
	"github.com/relabs-tech/sensor_flight/internal/sensors"
)

// RunConsole prints raw readings with their derived angles, the
// inclinometer and orientation views of each reading, the flight state and
// GPS fixes as they arrive on the broker.
func RunConsole(cfg *config.Config) error {
	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDConsole)
	if err != nil {
		return err
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	var (
		mu      sync.Mutex
		tracker = orientation.NewTracker(orientation.DefaultGyroWeight)
	)
	accelToken := client.Subscribe(cfg.TopicAccel, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r sensors.Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("console: accel unmarshal error: %v", err)
			return
		}
		mu.Lock()
		pose := tracker.Update(r)
		mu.Unlock()

		fmt.Println(formatReading(r))
		fmt.Println(formatInclination(orientation.Inclination(r)))
		fmt.Println(formatOrientation(pose))
	})
	accelToken.Wait()
	if accelToken.Error() != nil {
		return accelToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicAccel)

	stateToken := client.Subscribe(cfg.TopicFlightState, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var m StateMessage
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			log.Printf("console: state unmarshal error: %v", err)
			return
		}
		fmt.Println(formatState(m))
	})
	stateToken.Wait()
	if stateToken.Error() != nil {
		return stateToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicFlightState)

	if cfg.TopicGPS != "" {
		gpsToken := client.Subscribe(cfg.TopicGPS, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var f gps.Fix
			if err := json.Unmarshal(msg.Payload(), &f); err != nil {
				log.Printf("console: gps unmarshal error: %v", err)
				return
			}
			fmt.Printf(
				"[GPS ]  time=%s date=%s lat=%.6f lon=%.6f speed=%.1fkn course=%.1f° validity=%s\n",
				f.Time, f.Date, f.Latitude, f.Longitude, f.SpeedKnots, f.CourseDeg, f.Validity,
			)
		})
		gpsToken.Wait()
		if gpsToken.Error() != nil {
			return gpsToken.Error()
		}
		log.Printf("console: subscribed to %s", cfg.TopicGPS)
	}

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}

// formatReading renders one accelerometer sample next to the angles it
// produces.
func formatReading(r sensors.Reading) string {
	att := flight.EstimateAttitude(r.Vector())
	return fmt.Sprintf("[ACC ]  x=%7.3f y=%7.3f z=%7.3f  |  X=%7.2f Y=%7.2f Z=%7.2f",
		r.X, r.Y, r.Z, att.X, att.Y, att.Z)
}

// formatInclination renders the accelerometer-only roll/pitch/yaw.
func formatInclination(p orientation.Pose) string {
	return fmt.Sprintf("[INCL]  ROLL=%7.2f  PITCH=%7.2f  YAW=%7.2f", p.Roll, p.Pitch, p.Yaw)
}

// formatOrientation renders the gyro-fused pose with its relative heading.
func formatOrientation(p orientation.Pose) string {
	return fmt.Sprintf("[ORNT]  ROLL=%7.2f  PITCH=%7.2f  HEADING=%7.2f", p.Roll, p.Pitch, p.Yaw)
}

func formatState(m StateMessage) string {
	s := m.State
	return fmt.Sprintf("[FLY ]  #%d %-7s %-9s fwd=%5.2f lat=%5.2f score=%9.1f pos=(%.1f, %.1f)",
		m.Tick, s.Status, m.Location.Name, s.ForwardSpeed, s.LateralSpeed, s.Score, s.Position.X, s.Position.Y)
}

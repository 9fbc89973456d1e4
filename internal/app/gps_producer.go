// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bufio"
	"fmt"
	"log"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/sensor_flight/internal/config"
	"github.com/relabs-tech/sensor_flight/internal/gps"
	"github.com/relabs-tech/sensor_flight/internal/location"
)

// RunGPSProducer opens the GPS serial port, parses NMEA sentences, and
// publishes every RMC fix as JSON to the GPS topic. The flight session uses
// the fixes to pick the nearest departure airport.
func RunGPSProducer(cfg *config.Config) error {
	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDGPS)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	log.Printf("gps: connected to MQTT broker at %s", cfg.MQTTBroker)

	serialOpts := serial.OpenOptions{
		PortName:              cfg.GPSSerialPort,
		BaudRate:              uint(cfg.GPSBaudRate),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return fmt.Errorf("failed to open GPS serial port: %w", err)
	}
	defer port.Close()
	log.Printf("gps: serial port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)

	reader := bufio.NewReader(port)
	var lastAirport string

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("GPS read error: %w", err)
		}

		fix, ok := gps.ParseLine(line)
		if !ok {
			continue
		}

		if err := publishJSON(client, cfg.TopicGPS, true, fix); err != nil {
			log.Printf("gps: %v", err)
			continue
		}

		if !fix.Valid() {
			continue
		}
		if loc, km := location.Nearest(fix.Latitude, fix.Longitude); loc.Name != lastAirport {
			lastAirport = loc.Name
			log.Printf("gps: nearest airport is %s (%.0f km)", loc.Name, km)
		}
	}
}

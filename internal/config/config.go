// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/relabs-tech/sensor_flight/internal/flight"
)

// MinReportInterval is the fastest sensor cadence the flight loop accepts.
const MinReportInterval = 16 * time.Millisecond

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDFly      string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string
	MQTTClientIDDisplay  string
	MQTTClientIDGPS      string

	// Topics
	TopicAccel         string
	TopicFlightState   string
	TopicFlightControl string
	TopicGPS           string

	// Sensor
	SensorSource         string // "mpu9250" or "mock"
	IMUSPIDevice         string
	IMUCSPin             string
	SensorReportInterval int // milliseconds, never below MinReportInterval
	ReadingDivider       int // process every Nth reading

	// GPS
	GPSSerialPort string
	GPSBaudRate   int

	// Web Server
	WebServerPort int

	// Display
	DisplayContent        string // "flight", "inclinometer" or "orientation"
	DisplayUpdateInterval int    // milliseconds

	// Files
	SnapshotPath    string
	CalibrationPath string

	// Companion server
	CompanionURL     string
	CompanionTimeout int // milliseconds
	CompanionUserID  int // 0 disables export

	// Game tunables
	Flight        flight.Settings
	ShowDebugInfo bool
}

// Default returns the configuration used when a key is absent from the file.
func Default() *Config {
	return &Config{
		MQTTBroker:           "tcp://localhost:1883",
		MQTTClientIDProducer: "flight-accel-producer",
		MQTTClientIDFly:      "flight-session",
		MQTTClientIDConsole:  "flight-console",
		MQTTClientIDWeb:      "flight-web",
		MQTTClientIDDisplay:  "flight-display",
		MQTTClientIDGPS:      "flight-gps-producer",

		TopicAccel:         "flight/accel",
		TopicFlightState:   "flight/state",
		TopicFlightControl: "flight/control",
		TopicGPS:           "flight/gps",

		SensorSource:         "mpu9250",
		IMUSPIDevice:         "/dev/spidev0.0",
		IMUCSPin:             "8",
		SensorReportInterval: 16,
		ReadingDivider:       2,

		GPSSerialPort: "/dev/serial0",
		GPSBaudRate:   9600,

		WebServerPort:         8080,
		DisplayContent:        "flight",
		DisplayUpdateInterval: 200,

		SnapshotPath:    "flight_state.json",
		CalibrationPath: "flight_calibration.json",

		CompanionURL:     "http://localhost:1337",
		CompanionTimeout: 5000,

		Flight: flight.DefaultSettings(),
	}
}

// Load reads the KEY=VALUE configuration file on top of Default.
func Load(configPath string) (*Config, error) {
	values, err := godotenv.Read(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return FromMap(values)
}

// FromMap applies KEY=VALUE pairs on top of Default and validates the result.
func FromMap(values map[string]string) (*Config, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cfg := Default()
	for _, key := range keys {
		if err := cfg.setValue(key, values[key]); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReportInterval is the sensor cadence, clamped to MinReportInterval.
func (c *Config) ReportInterval() time.Duration {
	d := time.Duration(c.SensorReportInterval) * time.Millisecond
	if d < MinReportInterval {
		return MinReportInterval
	}
	return d
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	var err error
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_FLY":
		c.MQTTClientIDFly = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value
	case "MQTT_CLIENT_ID_GPS":
		c.MQTTClientIDGPS = value

	// Topics
	case "TOPIC_ACCEL":
		c.TopicAccel = value
	case "TOPIC_FLIGHT_STATE":
		c.TopicFlightState = value
	case "TOPIC_FLIGHT_CONTROL":
		c.TopicFlightControl = value
	case "TOPIC_GPS":
		c.TopicGPS = value

	// Sensor
	case "SENSOR_SOURCE":
		if value != "mpu9250" && value != "mock" {
			return fmt.Errorf("SENSOR_SOURCE must be mpu9250 or mock, got %q", value)
		}
		c.SensorSource = value
	case "IMU_SPI_DEVICE":
		c.IMUSPIDevice = value
	case "IMU_CS_PIN":
		c.IMUCSPin = value
	case "SENSOR_REPORT_INTERVAL":
		c.SensorReportInterval, err = parseInt(key, value)
	case "READING_DIVIDER":
		c.ReadingDivider, err = parseInt(key, value)

	// GPS
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		c.GPSBaudRate, err = parseInt(key, value)

	// Web Server
	case "WEB_SERVER_PORT":
		c.WebServerPort, err = parseInt(key, value)

	// Display
	case "DISPLAY_CONTENT":
		switch value {
		case "flight", "inclinometer", "orientation":
			c.DisplayContent = value
		default:
			return fmt.Errorf("DISPLAY_CONTENT must be flight, inclinometer or orientation, got %q", value)
		}
	case "DISPLAY_UPDATE_INTERVAL":
		c.DisplayUpdateInterval, err = parseInt(key, value)

	// Files
	case "SNAPSHOT_PATH":
		c.SnapshotPath = value
	case "CALIBRATION_PATH":
		c.CalibrationPath = value

	// Companion server
	case "COMPANION_URL":
		c.CompanionURL = value
	case "COMPANION_TIMEOUT":
		c.CompanionTimeout, err = parseInt(key, value)
	case "COMPANION_USER_ID":
		c.CompanionUserID, err = parseInt(key, value)

	// Game tunables
	case "SKY_COEFF_X":
		c.Flight.SkyCoeffX, err = parseFloat(key, value)
	case "SKY_COEFF_Y":
		c.Flight.SkyCoeffY, err = parseFloat(key, value)
	case "MOUNTAIN_COEFF_X":
		c.Flight.MountainCoeffX, err = parseFloat(key, value)
	case "INITIAL_SPEED_Y":
		c.Flight.InitialSpeedY, err = parseFloat(key, value)
	case "INITIAL_SPEED_X":
		c.Flight.InitialSpeedX, err = parseFloat(key, value)
	case "MAX_SPEED_Y":
		c.Flight.MaxSpeedY, err = parseFloat(key, value)
	case "MAX_SPEED_X":
		c.Flight.MaxSpeedX, err = parseFloat(key, value)
	case "MIN_SPEED_Y":
		c.Flight.MinSpeedY, err = parseFloat(key, value)
	case "VERTICAL_TOLERANCE":
		c.Flight.VerticalTolerance, err = parseFloat(key, value)
	case "GROWTH_CONSTANT":
		c.Flight.GrowthConstant, err = parseFloat(key, value)
	case "LATERAL_SATURATION_DEG":
		c.Flight.LateralSaturationDeg, err = parseFloat(key, value)
	case "GROUND_TILE_SIZE":
		c.Flight.GroundTileSize, err = parseFloat(key, value)
	case "SKY_TILE_WIDTH":
		c.Flight.SkyTileWidth, err = parseFloat(key, value)
	case "SKY_TILE_HEIGHT":
		c.Flight.SkyTileHeight, err = parseFloat(key, value)
	case "MOUNTAIN_TILE_WIDTH":
		c.Flight.MountainTileWidth, err = parseFloat(key, value)
	case "MOUNTAIN_TILE_HEIGHT":
		c.Flight.MountainTileHeight, err = parseFloat(key, value)
	case "SHOW_DEBUG_INFO":
		c.ShowDebugInfo, err = strconv.ParseBool(value)
		if err != nil {
			err = fmt.Errorf("invalid %s %q: %w", key, value, err)
		}

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return err
}

func parseInt(key, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

// validate checks required fields and the consistency of the tunables.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return errors.New("MQTT_BROKER is required")
	}
	if c.TopicAccel == "" || c.TopicFlightState == "" || c.TopicFlightControl == "" {
		return errors.New("TOPIC_ACCEL, TOPIC_FLIGHT_STATE and TOPIC_FLIGHT_CONTROL are required")
	}
	if c.SensorReportInterval <= 0 {
		return errors.New("SENSOR_REPORT_INTERVAL must be positive")
	}
	if c.ReadingDivider < 1 {
		return fmt.Errorf("READING_DIVIDER must be >= 1, got %d", c.ReadingDivider)
	}
	if c.SnapshotPath == "" {
		return errors.New("SNAPSHOT_PATH is required")
	}
	if c.CompanionTimeout <= 0 {
		return errors.New("COMPANION_TIMEOUT must be positive")
	}

	f := c.Flight
	if f.MinSpeedY < 0 {
		return fmt.Errorf("MIN_SPEED_Y must be >= 0, got %g", f.MinSpeedY)
	}
	if f.MinSpeedY > f.MaxSpeedY {
		return fmt.Errorf("MIN_SPEED_Y (%g) must not exceed MAX_SPEED_Y (%g)", f.MinSpeedY, f.MaxSpeedY)
	}
	if f.InitialSpeedY < f.MinSpeedY || f.InitialSpeedY > f.MaxSpeedY {
		return fmt.Errorf("INITIAL_SPEED_Y (%g) must be within [%g, %g]", f.InitialSpeedY, f.MinSpeedY, f.MaxSpeedY)
	}
	if f.MaxSpeedX < 0 || f.InitialSpeedX < 0 || f.InitialSpeedX > f.MaxSpeedX {
		return fmt.Errorf("INITIAL_SPEED_X (%g) must be within [0, MAX_SPEED_X=%g]", f.InitialSpeedX, f.MaxSpeedX)
	}
	if f.VerticalTolerance < 0 {
		return fmt.Errorf("VERTICAL_TOLERANCE must be >= 0, got %g", f.VerticalTolerance)
	}
	if f.LateralSaturationDeg <= 0 {
		return fmt.Errorf("LATERAL_SATURATION_DEG must be positive, got %g", f.LateralSaturationDeg)
	}
	for key, size := range map[string]float64{
		"GROUND_TILE_SIZE":     f.GroundTileSize,
		"SKY_TILE_WIDTH":       f.SkyTileWidth,
		"SKY_TILE_HEIGHT":      f.SkyTileHeight,
		"MOUNTAIN_TILE_WIDTH":  f.MountainTileWidth,
		"MOUNTAIN_TILE_HEIGHT": f.MountainTileHeight,
	} {
		if size <= 0 {
			return fmt.Errorf("%s must be positive, got %g", key, size)
		}
	}
	return nil
}

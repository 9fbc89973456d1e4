// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/sensor_flight/internal/config"
	"github.com/relabs-tech/sensor_flight/internal/orientation"
	"github.com/relabs-tech/sensor_flight/internal/sensors"
)

const (
	hudWidth  = 128
	hudHeight = 64
)

// hudData holds the latest flight state and sensor pose for the display loop.
type hudData struct {
	mu       sync.RWMutex
	msg      StateMessage
	have     bool
	incl     orientation.Pose
	tracker  *orientation.Tracker
	havePose bool
}

func newHUDData() *hudData {
	return &hudData{tracker: orientation.NewTracker(orientation.DefaultGyroWeight)}
}

func (d *hudData) set(m StateMessage) {
	d.mu.Lock()
	d.msg = m
	d.have = true
	d.mu.Unlock()
}

func (d *hudData) addReading(r sensors.Reading) {
	d.mu.Lock()
	d.incl = orientation.Inclination(r)
	d.tracker.Update(r)
	d.havePose = true
	d.mu.Unlock()
}

// lines formats the configured page.
func (d *hudData) lines(content string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	switch content {
	case "inclinometer":
		return poseLines("Inclinometer", "Y", d.incl, d.havePose)
	case "orientation":
		return poseLines("Orientation", "H", d.tracker.Pose(), d.havePose)
	default:
		return hudLines(d.msg, d.have)
	}
}

// RunDisplay shows one page on an SSD1306 OLED, selected by DISPLAY_CONTENT:
// attitude, speed and score of the running flight, the inclinometer, or the
// gyro-fused orientation.
func RunDisplay(cfg *config.Config) error {
	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Println("display: initialized")

	if err := draw(dev, renderSplash()); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDDisplay)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	data := newHUDData()
	if err := subscribeForContent(client, cfg, data); err != nil {
		return fmt.Errorf("failed to subscribe for %s page: %w", cfg.DisplayContent, err)
	}

	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		if err := draw(dev, renderText(data.lines(cfg.DisplayContent), 0)); err != nil {
			log.Printf("display: error updating display: %v", err)
		}
	}
	return nil
}

func subscribeForContent(client mqtt.Client, cfg *config.Config, data *hudData) error {
	switch cfg.DisplayContent {
	case "inclinometer", "orientation":
		token := client.Subscribe(cfg.TopicAccel, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var r sensors.Reading
			if err := json.Unmarshal(msg.Payload(), &r); err != nil {
				log.Printf("display: accel unmarshal error: %v", err)
				return
			}
			data.addReading(r)
		})
		token.Wait()
		if token.Error() != nil {
			return token.Error()
		}
		log.Printf("display: subscribed to %s", cfg.TopicAccel)

	case "flight":
		token := client.Subscribe(cfg.TopicFlightState, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var m StateMessage
			if err := json.Unmarshal(msg.Payload(), &m); err != nil {
				log.Printf("display: state unmarshal error: %v", err)
				return
			}
			data.set(m)
		})
		token.Wait()
		if token.Error() != nil {
			return token.Error()
		}
		log.Printf("display: subscribed to %s", cfg.TopicFlightState)

	default:
		return fmt.Errorf("unknown display content type: %s", cfg.DisplayContent)
	}
	return nil
}

func draw(dev *ssd1306.Dev, img *image1bit.VerticalLSB) error {
	return dev.Draw(dev.Bounds(), img, image.Point{})
}

// hudLines formats the state into the four text rows of the HUD.
func hudLines(m StateMessage, have bool) []string {
	if !have {
		return []string{"", "Flight", "Waiting..."}
	}
	s := m.State
	return []string{
		fmt.Sprintf("%-9.9s %s", m.Location.Name, s.Status),
		fmt.Sprintf("SPD %5.1f %5.2f", s.ForwardSpeed, s.LateralSpeed),
		fmt.Sprintf("X%6.1f Z%6.1f", s.Attitude.X, s.Attitude.Z),
		fmt.Sprintf("PTS %10.0f", s.Score),
	}
}

// poseLines formats a roll/pitch/yaw page. yawLabel is "Y" for the
// inclinometer and "H" for the fused heading.
func poseLines(title, yawLabel string, p orientation.Pose, have bool) []string {
	if !have {
		return []string{"", title, "Waiting..."}
	}
	return []string{
		title,
		fmt.Sprintf("R: %6.1f", p.Roll),
		fmt.Sprintf("P: %6.1f", p.Pitch),
		fmt.Sprintf("%s: %6.1f", yawLabel, p.Yaw),
	}
}

func renderHUD(m StateMessage, have bool) *image1bit.VerticalLSB {
	return renderText(hudLines(m, have), 0)
}

func renderSplash() *image1bit.VerticalLSB {
	return renderText([]string{"", "Sensor Flight", "Tilt to fly"}, 10)
}

func renderText(lines []string, x int) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, hudWidth, hudHeight))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(x, 13*(i+1))
		drawer.DrawString(line)
	}
	return img
}

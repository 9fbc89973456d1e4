// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// connectMQTT opens a client against broker or returns the connect error.
func connectMQTT(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT connect error: %w", token.Error())
	}
	return client, nil
}

// publishJSON marshals v and publishes it, waiting for the broker ack.
func publishJSON(client mqtt.Client, topic string, retained bool, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json marshal error (%s): %w", topic, err)
	}
	if token := client.Publish(topic, 0, retained, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT publish error (%s): %w", topic, token.Error())
	}
	return nil
}

// subscribeJSON decodes every message on topic into a fresh T and hands it
// to out. See jsonHandler.
func subscribeJSON[T any](client mqtt.Client, topic string, out chan<- T, logf func(string, ...any)) error {
	if token := client.Subscribe(topic, 0, jsonHandler(topic, out, logf)); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT subscribe error (%s): %w", topic, token.Error())
	}
	return nil
}

// jsonHandler never blocks the MQTT router: messages are dropped when out
// is full.
func jsonHandler[T any](topic string, out chan<- T, logf func(string, ...any)) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		var v T
		if err := json.Unmarshal(msg.Payload(), &v); err != nil {
			logf("%s: bad payload: %v", topic, err)
			return
		}
		select {
		case out <- v:
		default:
			logf("%s: consumer busy, message dropped", topic)
		}
	}
}

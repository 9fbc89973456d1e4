// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/sensor_flight/internal/config"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	// The web UI is served from the device itself; allow other origins on the LAN.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RunWeb mirrors the flight state topic over HTTP and a websocket stream and
// forwards reset requests to the flight session.
func RunWeb(cfg *config.Config) error {
	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDWeb)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	ws := newWebServer(func(c Control) error {
		return publishJSON(client, cfg.TopicFlightControl, false, c)
	})

	token := client.Subscribe(cfg.TopicFlightState, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var m StateMessage
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			log.Printf("web: state unmarshal error: %v", err)
			return
		}
		ws.update(m)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicFlightState)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WebServerPort),
		Handler:           ws.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("web: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("web: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type webServer struct {
	hub         *Hub
	sendControl func(Control) error

	mu   sync.RWMutex
	last StateMessage
	have bool
}

func newWebServer(sendControl func(Control) error) *webServer {
	return &webServer{hub: NewHub(), sendControl: sendControl}
}

// update stores the latest state and pushes it to websocket clients.
func (s *webServer) update(m StateMessage) {
	s.mu.Lock()
	s.last = m
	s.have = true
	s.mu.Unlock()
	s.hub.Broadcast(m)
}

func (s *webServer) latest() (StateMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.have
}

func (s *webServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /ws/flight", s.handleStream)
	return mux
}

func (s *webServer) handleState(w http.ResponseWriter, r *http.Request) {
	m, ok := s.latest()
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *webServer) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.sendControl(Control{Action: ActionReset}); err != nil {
		log.Printf("web: reset: %v", err)
		http.Error(w, "flight session unreachable", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reset requested"})
}

func (s *webServer) handleStream(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so no state published after
	// the client connected is missed.
	states, cancel := s.hub.Subscribe(16)
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: upgrade: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(1 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	// Clients never send anything meaningful; reading only surfaces pongs and close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if m, ok := s.latest(); ok {
		if err := writeWS(conn, m); err != nil {
			return
		}
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case m, ok := <-states:
			if !ok {
				return
			}
			if err := writeWS(conn, m); err != nil {
				log.Printf("web: stream write: %v", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeWS(conn *websocket.Conn, m StateMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(m)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}

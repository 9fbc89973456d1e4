// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/relabs-tech/sensor_flight/internal/flight"
	"github.com/relabs-tech/sensor_flight/internal/location"
)

// SchemaVersion is written into every snapshot.
const SchemaVersion = 1

// Snapshot is the persisted shape of a flight session.
type Snapshot struct {
	SchemaVersion int               `json:"schema_version"`
	SavedAt       string            `json:"saved_at"` // RFC3339
	State         flight.State      `json:"state"`
	Location      location.Location `json:"location"`
	Settings      flight.Settings   `json:"settings"`
}

// New returns a fresh snapshot at a random airport.
func New(set flight.Settings, rng *rand.Rand) Snapshot {
	return Snapshot{
		SchemaVersion: SchemaVersion,
		State:         flight.NewState(set),
		Location:      location.Random(rng),
		Settings:      set,
	}
}

// Exists reports whether a snapshot file is present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save writes the snapshot as indented JSON. The file is replaced
// atomically so a crash never leaves a half-written snapshot.
func Save(path string, snap Snapshot) error {
	snap.SchemaVersion = SchemaVersion
	snap.SavedAt = time.Now().Format(time.RFC3339)

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot. Unknown airport names are replaced by a random one.
func Load(path string, rng *rand.Rand) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.SchemaVersion != SchemaVersion {
		return Snapshot{}, fmt.Errorf("snapshot schema %d, want %d", snap.SchemaVersion, SchemaVersion)
	}
	if loc, ok := location.ByName(snap.Location.Name, rng); !ok {
		snap.Location = loc
	}
	return snap, nil
}

// LoadOrNew loads the snapshot at path and falls back to a fresh one when
// the file is missing or unreadable. The current settings always win over
// the ones stored in the file.
func LoadOrNew(path string, set flight.Settings, rng *rand.Rand) Snapshot {
	snap, err := Load(path, rng)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("store: %v, starting a new flight", err)
		}
		return New(set, rng)
	}
	snap.Settings = set
	return snap
}

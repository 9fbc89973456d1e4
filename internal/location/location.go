// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package location

import (
	"math"
	"math/rand/v2"
)

// Location is a named departure point shown as the flight's label.
type Location struct {
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Airports is the fixed catalogue, in cycling order.
var Airports = []Location{
	{Name: "Munich Airport", Image: "airport-munich.png", Latitude: 48.3538, Longitude: 11.7861},
	{Name: "Frankfurt Airport", Image: "airport-frankfurt.png", Latitude: 50.0379, Longitude: 8.5622},
	{Name: "Paris Airport", Image: "airport-paris.png", Latitude: 49.0097, Longitude: 2.5479},
	{Name: "Rome Airport", Image: "airport-rome.png", Latitude: 41.8003, Longitude: 12.2389},
}

const earthRadiusKm = 6371.0

// Random picks any airport.
func Random(rng *rand.Rand) Location {
	if rng == nil {
		return Airports[rand.IntN(len(Airports))]
	}
	return Airports[rng.IntN(len(Airports))]
}

// ByName looks up an airport. Unknown names fall back to a random one and
// report ok=false.
func ByName(name string, rng *rand.Rand) (loc Location, ok bool) {
	for _, a := range Airports {
		if a.Name == name {
			return a, true
		}
	}
	return Random(rng), false
}

// Nearest returns the airport closest to the given coordinates and the
// great-circle distance to it in kilometres.
func Nearest(lat, lon float64) (Location, float64) {
	best := Airports[0]
	bestKm := math.Inf(1)
	for _, a := range Airports {
		if d := DistanceKm(lat, lon, a.Latitude, a.Longitude); d < bestKm {
			best, bestKm = a, d
		}
	}
	return best, bestKm
}

// DistanceKm is the haversine distance between two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// Cycler hands out airports in catalogue order, wrapping at the end.
type Cycler struct {
	next int
}

// StartAt positions the cycler just after the named airport.
func (c *Cycler) StartAt(name string) {
	for i, a := range Airports {
		if a.Name == name {
			c.next = (i + 1) % len(Airports)
			return
		}
	}
}

// Next returns the next airport.
func (c *Cycler) Next() Location {
	loc := Airports[c.next]
	c.next = (c.next + 1) % len(Airports)
	return loc
}

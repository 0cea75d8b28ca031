// Package models holds the data shapes shared by the chart engine, the
// geocoding collaborators, storage and the HTTP API.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HouseSystem selects how the twelve house cusps are derived.
type HouseSystem string

const (
	// Placidus keeps Asc/MC/IC/DSC exact and fills the remaining eight cusps
	// with equal 30° steps from the Ascendant.
	Placidus HouseSystem = "placidus"

	// Equal places every cusp at Ascendant + 30°·i.
	Equal HouseSystem = "equal"
)

// ParseHouseSystem accepts "placidus"/"P" and "equal"/"E" in any case. The
// empty string selects Placidus.
func ParseHouseSystem(s string) (HouseSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "placidus", "p":
		return Placidus, nil
	case "equal", "e":
		return Equal, nil
	}
	return "", fmt.Errorf("unknown house system %q", s)
}

// HouseCusps holds the longitudes of the cusps of houses 1 through 12 in
// order. House n spans cusp[n-1] up to cusp[n mod 12], wrapping through 0°.
type HouseCusps [12]float64

// DefaultHouseCusps is the evenly spaced fallback used when a chart has no
// houses: 0°, 30°, ... 330°.
var DefaultHouseCusps = HouseCusps{0, 30, 60, 90, 120, 150, 180, 210, 240, 270, 300, 330}

// Positions maps each Body to a normalized longitude. A point that was never
// set is absent, which is distinct from a longitude of 0°.
type Positions struct {
	values  [BodyCount]float64
	present [BodyCount]bool
}

// Get returns the longitude of b and whether it is present.
func (p Positions) Get(b Body) (float64, bool) {
	if !b.Valid() || !p.present[b] {
		return 0, false
	}
	return p.values[b], true
}

// Has reports whether b is present.
func (p Positions) Has(b Body) bool {
	_, ok := p.Get(b)
	return ok
}

// With returns a copy of p with b set to longitude. Invalid bodies are ignored.
func (p Positions) With(b Body, longitude float64) Positions {
	if b.Valid() {
		p.values[b] = longitude
		p.present[b] = true
	}
	return p
}

// Len counts the present points.
func (p Positions) Len() int {
	n := 0
	for _, ok := range p.present {
		if ok {
			n++
		}
	}
	return n
}

// MarshalJSON encodes present points as {"Sun": 152.1, ...}.
func (p Positions) MarshalJSON() ([]byte, error) {
	out := make(map[Body]float64, BodyCount)
	for i := 0; i < BodyCount; i++ {
		if p.present[i] {
			out[Body(i)] = p.values[i]
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the object form written by MarshalJSON.
func (p *Positions) UnmarshalJSON(data []byte) error {
	var in map[Body]float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = Positions{}
	for b, v := range in {
		*p = p.With(b, v)
	}
	return nil
}

// Chart is a natal chart for one (moment, place) pair. It is built once by the
// chart package and treated as read-only afterwards; copies share nothing
// mutable except the Houses pointer, which is never written.
type Chart struct {
	JulianDay   float64     `json:"julianDay"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Sidereal    bool        `json:"sidereal"`
	HouseSystem HouseSystem `json:"houseSystem"`
	Positions   Positions   `json:"positions"`
	Houses      *HouseCusps `json:"houses,omitempty"`

	// Placements holds the house (1-12) of each present point, 0 when absent.
	Placements [BodyCount]int `json:"-"`
}

// Position is shorthand for c.Positions.Get(b).
func (c Chart) Position(b Body) (float64, bool) {
	return c.Positions.Get(b)
}

// HouseOf returns the house of b and whether it is known.
func (c Chart) HouseOf(b Body) (int, bool) {
	if !b.Valid() || c.Placements[b] == 0 {
		return 0, false
	}
	return c.Placements[b], true
}

// Cusps returns the chart's cusps, or DefaultHouseCusps when it has none.
func (c Chart) Cusps() HouseCusps {
	if c.Houses == nil {
		return DefaultHouseCusps
	}
	return *c.Houses
}

type chartJSON struct {
	JulianDay   float64      `json:"julianDay"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	Sidereal    bool         `json:"sidereal"`
	HouseSystem HouseSystem  `json:"houseSystem"`
	Positions   Positions    `json:"positions"`
	Houses      *HouseCusps  `json:"houses,omitempty"`
	Placements  map[Body]int `json:"placements,omitempty"`
}

// MarshalJSON adds the house placements keyed by body name.
func (c Chart) MarshalJSON() ([]byte, error) {
	out := chartJSON{
		JulianDay:   c.JulianDay,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Sidereal:    c.Sidereal,
		HouseSystem: c.HouseSystem,
		Positions:   c.Positions,
		Houses:      c.Houses,
		Placements:  make(map[Body]int),
	}
	for i, h := range c.Placements {
		if h != 0 {
			out.Placements[Body(i)] = h
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a chart written by MarshalJSON.
func (c *Chart) UnmarshalJSON(data []byte) error {
	var in chartJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Chart{
		JulianDay:   in.JulianDay,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Sidereal:    in.Sidereal,
		HouseSystem: in.HouseSystem,
		Positions:   in.Positions,
		Houses:      in.Houses,
	}
	for b, h := range in.Placements {
		if b.Valid() {
			c.Placements[b] = h
		}
	}
	return nil
}

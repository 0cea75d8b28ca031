package models

import (
	"fmt"
	"strings"
)

// Body identifies one of the sixteen chart points: the ten planets, the lunar
// true node, Chiron, and the derived points Ascendant, Midheaven, Fortuna and
// Vertex.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	TrueNode
	Chiron
	Ascendant
	Midheaven
	Fortuna
	Vertex

	// BodyCount is the number of known points.
	BodyCount = int(Vertex) + 1
)

var bodyNames = [BodyCount]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus",
	"Neptune", "Pluto", "TrueNode", "Chiron", "Ascendant", "Midheaven", "Fortuna", "Vertex",
}

// Ordered point groups used by the analyzers.
var (
	// Planets are the ten classical and modern planets.
	Planets = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

	// MajorBodies are the ephemeris bodies compared within a single chart.
	MajorBodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, TrueNode, Chiron}

	// FullChartPoints are crossed against each other for full-chart synastry.
	FullChartPoints = []Body{
		Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
		TrueNode, Chiron, Fortuna, Vertex, Ascendant, Midheaven,
	}

	// SynastryPoints are crossed for the named synastry aspect list.
	SynastryPoints = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, Ascendant, Midheaven}

	// OverlayBodies are placed into the partner's houses.
	OverlayBodies = []Body{Sun, Moon, Venus, Mars, Jupiter, Saturn}

	// ReportPoints is the display order of the natal report.
	ReportPoints = []Body{
		Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
		TrueNode, Chiron, Fortuna, Vertex, Ascendant, Midheaven,
	}
)

// Valid reports whether b is one of the known points.
func (b Body) Valid() bool {
	return b >= Sun && int(b) < BodyCount
}

// String returns the English name of the point.
func (b Body) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// DisplayName is the human form used in reports ("True Node").
func (b Body) DisplayName() string {
	if b == TrueNode {
		return "True Node"
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler so bodies can key JSON objects.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid body %d", int(b))
	}
	return []byte(bodyNames[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBody resolves a point name case-insensitively. "MC" and "True Node"
// are accepted as aliases.
func ParseBody(name string) (Body, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	switch key {
	case "mc":
		return Midheaven, nil
	case "node", "northnode":
		return TrueNode, nil
	}
	for i, n := range bodyNames {
		if strings.ToLower(n) == key {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("unknown body %q", name)
}

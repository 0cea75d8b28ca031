package ephemeris

import (
	"fmt"

	"synastry-service/models"
)

// FaganBradleyAyanamsa is the tropical-to-sidereal offset in degrees.
const FaganBradleyAyanamsa = 24.9

// Sidereal converts a tropical longitude and normalizes it.
func Sidereal(tropical float64) float64 {
	return Normalize(tropical - FaganBradleyAyanamsa)
}

// Zodiac normalizes a raw longitude, applying the ayanamsa when sidereal is set.
func Zodiac(raw float64, sidereal bool) float64 {
	if sidereal {
		return Sidereal(raw)
	}
	return Normalize(raw)
}

// HasEphemeris reports whether b has a longitude function. The angles and the
// derived points are computed by the chart builder instead.
func HasEphemeris(b models.Body) bool {
	_, ok := bodyFuncs[b]
	return ok
}

// Longitude returns the normalized ecliptic longitude of b at t centuries from
// J2000.
func Longitude(b models.Body, t float64, sidereal bool) (float64, error) {
	fn, ok := bodyFuncs[b]
	if !ok {
		return 0, fmt.Errorf("%w: no ephemeris for %s", ErrInvalidInput, b)
	}
	if err := ValidateCenturies(t); err != nil {
		return 0, err
	}
	return Zodiac(fn(t), sidereal), nil
}

// Bodies computes every body in models.MajorBodies at t.
func Bodies(t float64, sidereal bool) (models.Positions, error) {
	var p models.Positions
	if err := ValidateCenturies(t); err != nil {
		return p, err
	}
	for _, b := range models.MajorBodies {
		p = p.With(b, Zodiac(bodyFuncs[b](t), sidereal))
	}
	return p, nil
}

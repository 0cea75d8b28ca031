// Package ephemeris computes low-precision ecliptic longitudes for the Sun, Moon,
// planets, lunar node and Chiron from mean orbital elements, plus local sidereal
// time, the chart angles and house cusps for a place on Earth.
//
// Everything in this package is a pure function of its arguments. Nothing is
// cached and nothing is logged, so callers may compute charts concurrently.
package ephemeris

import "math"

// Normalize maps any angle in degrees onto [0, 360).
func Normalize(angle float64) float64 {
	return math.Mod(math.Mod(angle, 360)+360, 360)
}

// ToRadians converts degrees to radians.
func ToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// ToDegrees converts radians to degrees.
func ToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

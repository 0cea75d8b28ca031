package chart

import (
	"fmt"
	"math"

	"synastry-service/ephemeris"
)

// Signs lists the zodiac signs from 0° onwards.
var Signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignPosition is a longitude split into sign, whole degrees and minutes.
type SignPosition struct {
	Sign    string `json:"sign"`
	Degrees int    `json:"degrees"`
	Minutes int    `json:"minutes"`
}

// DegreesToSign splits a longitude into its sign position. Degrees and
// minutes are truncated, never rounded.
func DegreesToSign(longitude float64) SignPosition {
	n := ephemeris.Normalize(longitude)
	return SignPosition{
		Sign:    Signs[int(n/30)%12],
		Degrees: int(math.Floor(math.Mod(n, 30))),
		Minutes: int(math.Floor(math.Mod(n, 1) * 60)),
	}
}

// String renders the position as 2°32' Virgo.
func (s SignPosition) String() string {
	return fmt.Sprintf("%d°%02d' %s", s.Degrees, s.Minutes, s.Sign)
}

// FormatLongitude is shorthand for DegreesToSign(longitude).String().
func FormatLongitude(longitude float64) string {
	return DegreesToSign(longitude).String()
}

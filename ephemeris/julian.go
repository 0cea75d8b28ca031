package ephemeris

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian Day of 2000-01-01 12:00 TT.
	J2000 = 2451545.0

	// DaysPerCentury is the length of a Julian century.
	DaysPerCentury = 36525.0

	// MaxCenturies bounds |T| for which the mean elements are accepted
	// (roughly the years 1000 through 3000).
	MaxCenturies = 10.0
)

// JulianDay converts a Gregorian calendar date and a fractional UT hour.
func JulianDay(year, month, day int, hour float64) float64 {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	jdn := day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
	return float64(jdn) + (hour-12)/24
}

// JulianDayOf converts t to a Julian Day after moving it to UTC.
func JulianDayOf(t time.Time) float64 {
	t = t.UTC()
	hour := float64(t.Hour()) + float64(t.Minute())/60 + (float64(t.Second())+float64(t.Nanosecond())/1e9)/3600
	return JulianDay(t.Year(), int(t.Month()), t.Day(), hour)
}

// Centuries returns Julian centuries elapsed since J2000.
func Centuries(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// ValidateCenturies rejects non-finite T and values outside ±MaxCenturies.
func ValidateCenturies(t float64) error {
	return checkRange("centuries", t, -MaxCenturies, MaxCenturies)
}

func floorDiv(a, b int) int {
	return int(math.Floor(float64(a) / float64(b)))
}

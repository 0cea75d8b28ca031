package ephemeris

import (
	"fmt"
	"math"

	"synastry-service/models"
)

// HouseResult is the output of Houses.
type HouseResult struct {
	Cusps     models.HouseCusps
	Ascendant float64
	Midheaven float64
}

// Sidereal returns a copy with every cusp and both angles shifted by the
// ayanamsa.
func (h HouseResult) Sidereal() HouseResult {
	out := HouseResult{
		Ascendant: Sidereal(h.Ascendant),
		Midheaven: Sidereal(h.Midheaven),
	}
	for i, c := range h.Cusps {
		out.Cusps[i] = Sidereal(c)
	}
	return out
}

// LocalSiderealTime returns the local sidereal time in hours for jd at the
// given east longitude.
func LocalSiderealTime(jd, longitude float64) float64 {
	t := Centuries(jd)
	theta := Normalize(280.46061837 + 360.98564736629*(jd-J2000) + 0.000387933*t*t - t*t*t/38710000)
	return Normalize(theta+longitude) / 15
}

// Obliquity is the mean obliquity of the ecliptic in degrees.
func Obliquity(t float64) float64 {
	return 23.4393 - 0.0130*t
}

// Houses computes the Ascendant, Midheaven and twelve tropical cusps.
//
// Placidus here is the simplified form: houses 1, 4, 7 and 10 sit on the
// angles and the other eight cusps are Ascendant + 30°·i.
func Houses(jd, latitude, longitude float64, system models.HouseSystem) (HouseResult, error) {
	if err := checkFinite("julianDay", jd); err != nil {
		return HouseResult{}, err
	}
	if err := ValidateCenturies(Centuries(jd)); err != nil {
		return HouseResult{}, err
	}
	if err := checkRange("latitude", latitude, -90, 90); err != nil {
		return HouseResult{}, err
	}
	if err := checkRange("longitude", longitude, -180, 180); err != nil {
		return HouseResult{}, err
	}

	t := Centuries(jd)
	lst := ToRadians(LocalSiderealTime(jd, longitude) * 15)
	eps := ToRadians(Obliquity(t))
	tanLat := math.Tan(ToRadians(latitude))

	asc := Normalize(ToDegrees(math.Atan2(math.Cos(lst), -math.Sin(lst)*math.Cos(eps)-tanLat*math.Sin(eps))))
	mc := Normalize(ToDegrees(math.Atan2(math.Sin(lst), math.Cos(lst)*math.Cos(eps)-tanLat*math.Sin(eps))))

	res := HouseResult{Ascendant: asc, Midheaven: mc}
	switch system {
	case models.Placidus, "":
		for i := range res.Cusps {
			switch i {
			case 0:
				res.Cusps[i] = asc
			case 3:
				res.Cusps[i] = Normalize(asc + 180)
			case 6:
				res.Cusps[i] = Normalize(mc + 180)
			case 9:
				res.Cusps[i] = mc
			default:
				res.Cusps[i] = Normalize(asc + 30*float64(i))
			}
		}
	case models.Equal:
		for i := range res.Cusps {
			res.Cusps[i] = Normalize(asc + 30*float64(i))
		}
	default:
		return HouseResult{}, fmt.Errorf("%w: unknown house system %q", ErrInvalidInput, system)
	}
	return res, nil
}

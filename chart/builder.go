// Package chart assembles natal charts from the ephemeris and renders them
// as text.
package chart

import (
	"fmt"

	"synastry-service/ephemeris"
	"synastry-service/models"
)

// Build computes every point, the house cusps and the house of each point for
// the given Julian Day and place. With sidereal set, the ayanamsa is applied
// once to every body, cusp and angle, and the derived points are computed
// from those sidereal values.
func Build(jd, latitude, longitude float64, sidereal bool, system models.HouseSystem) (models.Chart, error) {
	houses, err := ephemeris.Houses(jd, latitude, longitude, system)
	if err != nil {
		return models.Chart{}, fmt.Errorf("compute houses: %w", err)
	}
	if sidereal {
		houses = houses.Sidereal()
	}

	pos, err := ephemeris.Bodies(ephemeris.Centuries(jd), sidereal)
	if err != nil {
		return models.Chart{}, fmt.Errorf("compute bodies: %w", err)
	}
	sun, _ := pos.Get(models.Sun)
	moon, _ := pos.Get(models.Moon)
	pos = pos.
		With(models.Ascendant, houses.Ascendant).
		With(models.Midheaven, houses.Midheaven).
		With(models.Fortuna, ephemeris.Normalize(houses.Ascendant+moon-sun)).
		With(models.Vertex, ephemeris.Normalize(houses.Midheaven+90))

	if system == "" {
		system = models.Placidus
	}
	cusps := houses.Cusps
	c := models.Chart{
		JulianDay:   jd,
		Latitude:    latitude,
		Longitude:   longitude,
		Sidereal:    sidereal,
		HouseSystem: system,
		Positions:   pos,
		Houses:      &cusps,
	}
	for i := 0; i < models.BodyCount; i++ {
		if lon, ok := pos.Get(models.Body(i)); ok {
			c.Placements[i] = House(lon, cusps)
		}
	}
	return c, nil
}

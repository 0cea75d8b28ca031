package chart

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synastry-service/ephemeris"
	"synastry-service/models"
)

var fresnoMoment = time.Date(1985, 9, 15, 0, 24, 0, 0, time.UTC)

const (
	fresnoLat = 36.7378
	fresnoLon = -119.7871
)

func fresnoChart(t *testing.T) models.Chart {
	t.Helper()
	c, err := Compute(fresnoMoment, fresnoLat, fresnoLon, true, models.Placidus)
	require.NoError(t, err)
	return c
}

func TestBuildFresnoFixture(t *testing.T) {
	c := fresnoChart(t)

	assert.Equal(t, models.BodyCount, c.Positions.Len())
	require.NotNil(t, c.Houses)

	want := []struct {
		body  models.Body
		lon   float64
		house int
	}{
		{models.Sun, 147.224, 4},
		{models.Moon, 149.996, 4},
		{models.Venus, 72.103, 3},
		{models.Mars, 109.031, 3},
		{models.Jupiter, 290.953, 1},
		{models.Chiron, 346.218, 2},
		{models.Ascendant, 290.139, 1},
		{models.Midheaven, 204.100, 4},
		{models.Fortuna, 292.911, 1},
		{models.Vertex, 294.100, 1},
	}
	for _, w := range want {
		lon, ok := c.Position(w.body)
		require.True(t, ok, w.body.String())
		assert.InDelta(t, w.lon, lon, 1e-3, w.body.String())
		house, ok := c.HouseOf(w.body)
		require.True(t, ok)
		assert.Equal(t, w.house, house, w.body.String())
	}

	sun, _ := c.Position(models.Sun)
	assert.InDelta(t, 152.5, sun, 6)
}

func TestBuildAnglesMatchCusps(t *testing.T) {
	for _, sidereal := range []bool{true, false} {
		for _, system := range []models.HouseSystem{models.Placidus, models.Equal} {
			c, err := Compute(fresnoMoment, fresnoLat, fresnoLon, sidereal, system)
			require.NoError(t, err)
			asc, _ := c.Position(models.Ascendant)
			assert.Equal(t, asc, c.Houses[0])
			if system == models.Placidus {
				mc, _ := c.Position(models.Midheaven)
				assert.Equal(t, mc, c.Houses[9])
			}
			house, _ := c.HouseOf(models.Ascendant)
			assert.Equal(t, 1, house)
		}
	}
}

func TestBuildSiderealShiftsEveryPoint(t *testing.T) {
	jd := ephemeris.JulianDayOf(fresnoMoment)
	trop, err := Build(jd, fresnoLat, fresnoLon, false, models.Equal)
	require.NoError(t, err)
	sid, err := Build(jd, fresnoLat, fresnoLon, true, models.Equal)
	require.NoError(t, err)

	for i := 0; i < models.BodyCount; i++ {
		b := models.Body(i)
		tl, _ := trop.Position(b)
		sl, _ := sid.Position(b)
		assert.InDelta(t, ephemeris.Normalize(tl-ephemeris.FaganBradleyAyanamsa), sl, 1e-9, b.String())
	}
	for i := range trop.Houses {
		assert.InDelta(t, ephemeris.Normalize(trop.Houses[i]-ephemeris.FaganBradleyAyanamsa), sid.Houses[i], 1e-9)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := fresnoChart(t)
	b := fresnoChart(t)
	assert.Equal(t, a, b)
	for i := 0; i < models.BodyCount; i++ {
		x, _ := a.Position(models.Body(i))
		y, _ := b.Position(models.Body(i))
		assert.Equal(t, math.Float64bits(x), math.Float64bits(y))
	}
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	_, err := Build(ephemeris.J2000, 95, 0, true, models.Placidus)
	assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)

	_, err = Build(math.NaN(), 0, 0, true, models.Placidus)
	assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)

	_, err = Compute(time.Date(3500, 1, 1, 0, 0, 0, 0, time.UTC), 0, 0, false, models.Equal)
	assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)
}

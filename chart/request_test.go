package chart

import (
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synastry-service/ephemeris"
	"synastry-service/models"
)

func TestOptionsCompute(t *testing.T) {
	req := Request{
		Date:      "1985-09-15",
		Time:      "00:24",
		Latitude:  fresnoLat,
		Longitude: fresnoLon,
	}
	c, err := DefaultOptions.Compute(req)
	require.NoError(t, err)
	assert.True(t, c.Sidereal)
	assert.Equal(t, models.Placidus, c.HouseSystem)
	assert.Equal(t, fresnoChart(t), c)
}

func TestOptionsComputeTimeZone(t *testing.T) {
	local := Request{
		Date:      "1985-09-14",
		Time:      "17:24",
		TimeZone:  "America/Los_Angeles",
		Latitude:  fresnoLat,
		Longitude: fresnoLon,
	}
	c, err := DefaultOptions.Compute(local)
	require.NoError(t, err)
	assert.InDelta(t, ephemeris.JulianDay(1985, 9, 15, 0.4), c.JulianDay, 1e-9)
}

func TestOptionsComputeOverrides(t *testing.T) {
	tropical := false
	req := Request{
		Date:        "2000-01-01",
		Time:        "12:00",
		Sidereal:    &tropical,
		HouseSystem: "E",
	}
	c, err := DefaultOptions.Compute(req)
	require.NoError(t, err)
	assert.False(t, c.Sidereal)
	assert.Equal(t, models.Equal, c.HouseSystem)
	sun, _ := c.Position(models.Sun)
	assert.InDelta(t, 280.3822, sun, 1e-3)
}

func TestOptionsComputeValidation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"missing date", Request{Time: "10:00"}},
		{"bad date", Request{Date: "15/09/1985", Time: "10:00"}},
		{"bad time", Request{Date: "1985-09-15", Time: "25:61"}},
		{"latitude", Request{Date: "1985-09-15", Time: "10:00", Latitude: -91}},
		{"longitude", Request{Date: "1985-09-15", Time: "10:00", Longitude: 200}},
		{"zone", Request{Date: "1985-09-15", Time: "10:00", TimeZone: "Nowhere/Town"}},
		{"house system", Request{Date: "1985-09-15", Time: "10:00", HouseSystem: "koch"}},
		{"out of range year", Request{Date: "0500-01-01", Time: "10:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultOptions.Compute(tt.req)
			assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)
		})
	}
}

package validation

import (
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synastry-service/ephemeris"
)

type sample struct {
	Name   string  `json:"name" validate:"required"`
	Lat    float64 `json:"latitude" validate:"min=-90,max=90"`
	Date   string  `json:"date" validate:"datetime=2006-01-02"`
	Zone   string  `json:"timeZone" validate:"omitempty,timezone"`
	System string  `json:"houseSystem" validate:"omitempty,housesystem"`
}

func TestStruct(t *testing.T) {
	ok := sample{Name: "a", Lat: -33.9, Date: "1990-02-28", Zone: "Europe/Paris", System: "E"}
	require.NoError(t, Struct(ok))

	err := Struct(sample{Lat: 91, Date: "28/02/1990", Zone: "Mars/Olympus", System: "koch"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "latitude must be at most 90")
	assert.Contains(t, err.Error(), "date must match layout 2006-01-02")
	assert.Contains(t, err.Error(), "timeZone must be an IANA time zone")
	assert.Contains(t, err.Error(), "houseSystem must be placidus or equal")
}

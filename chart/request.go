package chart

import (
	"fmt"
	"time"

	"synastry-service/ephemeris"
	"synastry-service/models"
	"synastry-service/validation"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Request is a chart request with already geocoded coordinates. Time is the
// wall clock in TimeZone, or UTC when TimeZone is empty.
type Request struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" validate:"required,datetime=15:04"`
	TimeZone    string  `json:"timeZone,omitempty" validate:"omitempty,timezone"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
	Sidereal    *bool   `json:"sidereal,omitempty"`
	HouseSystem string  `json:"houseSystem,omitempty" validate:"omitempty,housesystem"`
}

// Options supplies the defaults for fields a Request leaves unset.
type Options struct {
	Sidereal    bool
	HouseSystem models.HouseSystem
}

// DefaultOptions is sidereal Placidus.
var DefaultOptions = Options{Sidereal: true, HouseSystem: models.Placidus}

// Moment parses the birth date and time into an instant.
func (r Request) Moment() (time.Time, error) {
	loc := time.UTC
	if r.TimeZone != "" {
		l, err := time.LoadLocation(r.TimeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: time zone %q: %v", ephemeris.ErrInvalidInput, r.TimeZone, err)
		}
		loc = l
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, r.Date+" "+r.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birth moment: %v", ephemeris.ErrInvalidInput, err)
	}
	return t, nil
}

// Compute validates r and builds its chart, filling unset fields from o.
func (o Options) Compute(r Request) (models.Chart, error) {
	if err := validation.Struct(r); err != nil {
		return models.Chart{}, err
	}
	moment, err := r.Moment()
	if err != nil {
		return models.Chart{}, err
	}
	sidereal := o.Sidereal
	if r.Sidereal != nil {
		sidereal = *r.Sidereal
	}
	system := o.HouseSystem
	if r.HouseSystem != "" {
		if system, err = models.ParseHouseSystem(r.HouseSystem); err != nil {
			return models.Chart{}, fmt.Errorf("%w: %v", ephemeris.ErrInvalidInput, err)
		}
	}
	return Compute(moment, r.Latitude, r.Longitude, sidereal, system)
}

// Compute builds the chart for an instant at a place. The place must already
// be resolved to coordinates.
func Compute(moment time.Time, latitude, longitude float64, sidereal bool, system models.HouseSystem) (models.Chart, error) {
	return Build(ephemeris.JulianDayOf(moment), latitude, longitude, sidereal, system)
}

package service

import (
	"context"

	"synastry-service/aspect"
	"synastry-service/chart"
	"synastry-service/models"
	"synastry-service/synastry"
	"synastry-service/validation"
)

// ChartInput is a chart request whose place may be given by name instead of
// coordinates. Coordinates win when both are present.
type ChartInput struct {
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	TimeZone    string   `json:"timeZone,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Place       string   `json:"place,omitempty"`
	Sidereal    *bool    `json:"sidereal,omitempty"`
	HouseSystem string   `json:"houseSystem,omitempty"`
}

// FormattedPoint is one chart point as a reader sees it.
type FormattedPoint struct {
	Body     models.Body `json:"body"`
	Position string      `json:"position"`
	House    int         `json:"house,omitempty"`
}

// ChartResult is a computed chart with its natal aspects.
type ChartResult struct {
	Chart     models.Chart        `json:"chart"`
	Aspects   []models.BodyAspect `json:"aspects"`
	Formatted []FormattedPoint    `json:"formatted"`
	Location  *models.Location    `json:"location,omitempty"`
}

// resolve turns in into a chart request, geocoding the place when no
// coordinates are given.
func (s *Service) resolve(ctx context.Context, in ChartInput) (chart.Request, *models.Location, error) {
	r := chart.Request{
		Date:        in.Date,
		Time:        in.Time,
		TimeZone:    in.TimeZone,
		Sidereal:    in.Sidereal,
		HouseSystem: in.HouseSystem,
	}
	switch {
	case in.Latitude != nil && in.Longitude != nil:
		r.Latitude, r.Longitude = *in.Latitude, *in.Longitude
		return r, nil, nil
	case in.Latitude != nil || in.Longitude != nil:
		return chart.Request{}, nil, invalid("latitude and longitude must be given together")
	case in.Place == "":
		return chart.Request{}, nil, invalid("place or coordinates are required")
	}
	if err := validation.Struct(r); err != nil {
		return chart.Request{}, nil, err
	}
	loc, err := s.locate(ctx, in.Place)
	if err != nil {
		return chart.Request{}, nil, err
	}
	r.Latitude, r.Longitude = loc.Latitude, loc.Longitude
	return r, &loc, nil
}

// ComputeChart builds a chart and its natal aspects.
func (s *Service) ComputeChart(ctx context.Context, in ChartInput) (ChartResult, error) {
	r, loc, err := s.resolve(ctx, in)
	if err != nil {
		return ChartResult{}, err
	}
	c, err := s.computeChart(r)
	if err != nil {
		return ChartResult{}, err
	}
	return ChartResult{
		Chart:     c,
		Aspects:   nonNil(aspect.Natal(c)),
		Formatted: Format(c),
		Location:  loc,
	}, nil
}

// Format lists the chart's present points in report order.
func Format(c models.Chart) []FormattedPoint {
	out := make([]FormattedPoint, 0, models.BodyCount)
	for _, b := range models.FullChartPoints {
		lon, ok := c.Position(b)
		if !ok {
			continue
		}
		house, _ := c.HouseOf(b)
		out = append(out, FormattedPoint{Body: b, Position: chart.FormatLongitude(lon), House: house})
	}
	return out
}

// Synastry compares two ad-hoc charts.
func (s *Service) Synastry(ctx context.Context, first, second ChartInput) (models.SynastryResult, error) {
	a, err := s.ComputeChart(ctx, first)
	if err != nil {
		return models.SynastryResult{}, err
	}
	b, err := s.ComputeChart(ctx, second)
	if err != nil {
		return models.SynastryResult{}, err
	}
	s.metrics.SynastryDone(1)
	return synastry.Compute(a.Chart, b.Chart), nil
}

func nonNil(a []models.BodyAspect) []models.BodyAspect {
	if a == nil {
		return []models.BodyAspect{}
	}
	return a
}

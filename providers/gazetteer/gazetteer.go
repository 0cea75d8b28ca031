// Package gazetteer is an offline geocoder over a fixed list of major
// cities. It backs up the network providers and needs no configuration.
package gazetteer

import (
	"context"
	"fmt"
	"strings"

	"synastry-service/datasource"
	"synastry-service/models"
)

// City is one gazetteer entry.
type City struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Cities is the built-in list.
var Cities = []City{
	{"New York, NY, USA", 40.7128, -74.0060},
	{"Los Angeles, CA, USA", 34.0522, -118.2437},
	{"Chicago, IL, USA", 41.8781, -87.6298},
	{"Houston, TX, USA", 29.7604, -95.3698},
	{"Phoenix, AZ, USA", 33.4484, -112.0740},
	{"Philadelphia, PA, USA", 39.9526, -75.1652},
	{"San Antonio, TX, USA", 29.4241, -98.4936},
	{"San Diego, CA, USA", 32.7157, -117.1611},
	{"Dallas, TX, USA", 32.7767, -96.7970},
	{"San Jose, CA, USA", 37.3382, -121.8863},
	{"Austin, TX, USA", 30.2672, -97.7431},
	{"Jacksonville, FL, USA", 30.3322, -81.6557},
	{"Fort Worth, TX, USA", 32.7555, -97.3308},
	{"Columbus, OH, USA", 39.9612, -82.9988},
	{"Charlotte, NC, USA", 35.2271, -80.8431},
	{"San Francisco, CA, USA", 37.7749, -122.4194},
	{"Indianapolis, IN, USA", 39.7684, -86.1581},
	{"Seattle, WA, USA", 47.6062, -122.3321},
	{"Denver, CO, USA", 39.7392, -104.9903},
	{"Washington, DC, USA", 38.9072, -77.0369},
	{"London, UK", 51.5074, -0.1278},
	{"Paris, France", 48.8566, 2.3522},
	{"Berlin, Germany", 52.5200, 13.4050},
	{"Madrid, Spain", 40.4168, -3.7038},
	{"Rome, Italy", 41.9028, 12.4964},
	{"Barcelona, Spain", 41.3851, 2.1734},
	{"Amsterdam, Netherlands", 52.3676, 4.9041},
	{"Vienna, Austria", 48.2082, 16.3738},
	{"Prague, Czech Republic", 50.0755, 14.4378},
	{"Budapest, Hungary", 47.4979, 19.0402},
	{"Warsaw, Poland", 52.2297, 21.0122},
	{"Moscow, Russia", 55.7558, 37.6176},
	{"Istanbul, Turkey", 41.0082, 28.9784},
	{"Dubai, UAE", 25.2048, 55.2708},
	{"Tokyo, Japan", 35.6762, 139.6503},
	{"Beijing, China", 39.9042, 116.4074},
	{"Shanghai, China", 31.2304, 121.4737},
	{"Seoul, South Korea", 37.5665, 126.9780},
	{"Mumbai, India", 19.0760, 72.8777},
	{"Delhi, India", 28.7041, 77.1025},
	{"Bangkok, Thailand", 13.7563, 100.5018},
	{"Singapore", 1.3521, 103.8198},
	{"Sydney, Australia", -33.8688, 151.2093},
	{"Melbourne, Australia", -37.8136, 144.9631},
	{"Toronto, Canada", 43.6532, -79.3832},
	{"Vancouver, Canada", 49.2827, -123.1207},
	{"Montreal, Canada", 45.5017, -73.5673},
	{"Mexico City, Mexico", 19.4326, -99.1332},
	{"São Paulo, Brazil", -23.5505, -46.6333},
	{"Buenos Aires, Argentina", -34.6118, -58.3960},
	{"Lima, Peru", -12.0464, -77.0428},
	{"Bogotá, Colombia", 4.7110, -74.0721},
	{"Santiago, Chile", -33.4489, -70.6693},
	{"Cape Town, South Africa", -33.9249, 18.4241},
	{"Johannesburg, South Africa", -26.2041, 28.0473},
	{"Cairo, Egypt", 30.0444, 31.2357},
	{"Lagos, Nigeria", 6.5244, 3.3792},
	{"Nairobi, Kenya", -1.2921, 36.8219},
}

type entry struct {
	city      City
	canonical string
	segments  []string
}

// Gazetteer looks places up in a city list.
type Gazetteer struct {
	entries []entry
}

var _ datasource.Provider = (*Gazetteer)(nil)

// New builds a gazetteer over cities, or over Cities when none are given.
func New(cities ...City) *Gazetteer {
	if len(cities) == 0 {
		cities = Cities
	}
	g := &Gazetteer{entries: make([]entry, 0, len(cities))}
	for _, c := range cities {
		canon := datasource.CanonicalPlace(c.Name)
		g.entries = append(g.entries, entry{city: c, canonical: canon, segments: datasource.PlaceSegments(canon)})
	}
	return g
}

// Name returns the provider name
func (g *Gazetteer) Name() string {
	return "Gazetteer"
}

// Geocode matches the city part of place exactly; any further comma
// separated parts must each appear in the entry ("Paris, France" matches,
// "Paris, Texas" does not).
func (g *Gazetteer) Geocode(ctx context.Context, place string) (models.Location, error) {
	q := datasource.PlaceSegments(datasource.CanonicalPlace(place))
	if len(q) > 0 {
		for _, e := range g.entries {
			if e.matches(q) {
				loc := e.location()
				loc.Query = place
				return loc, nil
			}
		}
	}
	return models.Location{}, fmt.Errorf("%s: %q: %w", g.Name(), place, datasource.ErrLocationUnresolved)
}

func (e entry) matches(q []string) bool {
	if len(e.segments) == 0 || q[0] != e.segments[0] {
		return false
	}
	for _, part := range q[1:] {
		found := false
		for _, s := range e.segments[1:] {
			if s == part {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (e entry) location() models.Location {
	return models.Location{
		DisplayName: e.city.Name,
		Latitude:    e.city.Latitude,
		Longitude:   e.city.Longitude,
		Provider:    "Gazetteer",
	}
}

// Search returns entries containing query, those starting with it first.
func (g *Gazetteer) Search(ctx context.Context, query string, limit int) ([]models.Location, error) {
	q := datasource.CanonicalPlace(query)
	out := []models.Location{}
	if len([]rune(q)) < 2 {
		return out, nil
	}
	if limit <= 0 {
		limit = 5
	}
	var partial []models.Location
	for _, e := range g.entries {
		switch {
		case strings.HasPrefix(e.canonical, q):
			out = append(out, e.location())
		case strings.Contains(e.canonical, q):
			partial = append(partial, e.location())
		}
	}
	out = append(out, partial...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

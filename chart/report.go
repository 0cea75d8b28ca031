package chart

import (
	"fmt"
	"strings"

	"synastry-service/models"
)

// Subject identifies whose chart a report describes.
type Subject struct {
	Name      string
	BirthDate string
	BirthTime string
	Place     string
}

// NatalReport renders c as plain text: one line per point with sign and
// house, followed by the natal aspects.
func NatalReport(s Subject, c models.Chart, aspects []models.BodyAspect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "NATAL CHART DATA for %s\n", s.Name)
	fmt.Fprintf(&b, "Born: %s at %s\n", s.BirthDate, s.BirthTime)
	fmt.Fprintf(&b, "Location: %s\n", s.Place)
	fmt.Fprintf(&b, "System: %s, %s houses\n\n", zodiacName(c.Sidereal), houseSystemName(c.HouseSystem))

	for _, p := range models.ReportPoints {
		lon, ok := c.Position(p)
		if !ok {
			continue
		}
		house, _ := c.HouseOf(p)
		fmt.Fprintf(&b, "%s: %s in House %d\n", p.DisplayName(), FormatLongitude(lon), house)
	}

	if len(aspects) > 0 {
		b.WriteString("\nNATAL ASPECTS:\n")
		for _, a := range aspects {
			fmt.Fprintf(&b, "%s %s %s (orb: %.2f°)\n", a.First.DisplayName(), a.Name, a.Second.DisplayName(), a.Orb)
		}
	}
	return b.String()
}

func zodiacName(sidereal bool) string {
	if sidereal {
		return "Sidereal (Fagan/Bradley Ayanamsa)"
	}
	return "Tropical"
}

func houseSystemName(s models.HouseSystem) string {
	if s == models.Equal {
		return "Equal"
	}
	return "Placidus"
}

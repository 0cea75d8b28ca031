package synastry

import (
	"synastry-service/chart"
	"synastry-service/models"
)

// harmonious are the houses that count towards the overlay score.
var harmonious = map[int]bool{1: true, 5: true, 7: true, 9: true, 11: true}

// HouseOverlay places a's models.OverlayBodies into b's houses. When b has no
// cusps the evenly spaced default is used. Score is the share of the six
// overlay bodies landing in a harmonious house; absent bodies count against
// it.
func HouseOverlay(a, b models.Chart) models.HouseOverlay {
	cusps := b.Cusps()
	out := models.HouseOverlay{
		Placements:      []models.HousePlacement{},
		TotalPlacements: len(models.OverlayBodies),
	}
	for _, body := range models.OverlayBodies {
		lon, ok := a.Position(body)
		if !ok {
			continue
		}
		house := chart.House(lon, cusps)
		out.Placements = append(out.Placements, models.HousePlacement{Body: body, House: house})
		if harmonious[house] {
			out.HarmoniousCount++
		}
	}
	out.Score = float64(out.HarmoniousCount) / float64(out.TotalPlacements)
	return out
}

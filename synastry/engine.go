// Package synastry compares two natal charts: cross-chart aspects, house
// overlays and the weighted compatibility score, plus ranking of candidate
// profiles by that score.
package synastry

import (
	"synastry-service/aspect"
	"synastry-service/models"
)

// Weights of the sub-scores in the compatibility score.
const (
	VenusMarsWeight    = 0.4
	FullChartWeight    = 0.3
	AspectsWeight      = 0.2
	HouseOverlayWeight = 0.1
)

// Compute derives the full synastry of a (user1) with b (user2).
func Compute(a, b models.Chart) models.SynastryResult {
	res := models.SynastryResult{
		VenusMars:       VenusMars(a, b),
		FullChart:       FullChart(a, b),
		SynastryAspects: Aspects(a, b),
		HouseOverlay:    HouseOverlay(a, b),
	}
	res.CompatibilityScore = VenusMarsWeight*res.VenusMars +
		FullChartWeight*res.FullChart +
		AspectsWeight*res.SynastryAspects.Score +
		HouseOverlayWeight*res.HouseOverlay.Score
	return res
}

// VenusMars averages the reduced-table strength of Venus(a)–Mars(b) and
// Venus(b)–Mars(a). A pair with an absent point contributes 0.
func VenusMars(a, b models.Chart) float64 {
	return (pairStrength(a, models.Venus, b, models.Mars) + pairStrength(b, models.Venus, a, models.Mars)) / 2
}

func pairStrength(a models.Chart, pa models.Body, b models.Chart, pb models.Body) float64 {
	p1, ok1 := a.Position(pa)
	p2, ok2 := b.Position(pb)
	if !ok1 || !ok2 {
		return 0
	}
	return aspect.Strength(p1, p2)
}

// FullChart is the mean reduced-table strength over every pair of
// models.FullChartPoints across the two charts. Pairs with an absent point
// are not counted; with no countable pair the result is 0.
func FullChart(a, b models.Chart) float64 {
	var total float64
	var n int
	for _, pa := range models.FullChartPoints {
		p1, ok := a.Position(pa)
		if !ok {
			continue
		}
		for _, pb := range models.FullChartPoints {
			p2, ok := b.Position(pb)
			if !ok {
				continue
			}
			total += aspect.Strength(p1, p2)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// Aspects lists the Full-table aspects between models.SynastryPoints of a and
// of b. Score is the mean strength of the listed aspects, 0 when none.
func Aspects(a, b models.Chart) models.SynastryAspects {
	out := models.SynastryAspects{Aspects: []models.BodyAspect{}}
	var total float64
	for _, pa := range models.SynastryPoints {
		p1, ok := a.Position(pa)
		if !ok {
			continue
		}
		for _, pb := range models.SynastryPoints {
			p2, ok := b.Position(pb)
			if !ok {
				continue
			}
			if asp := aspect.Classify(p1, p2); !asp.IsNone() {
				out.Aspects = append(out.Aspects, models.BodyAspect{First: pa, Second: pb, Aspect: asp})
				total += asp.Strength
			}
		}
	}
	out.Count = len(out.Aspects)
	if out.Count > 0 {
		out.Score = total / float64(out.Count)
	}
	return out
}

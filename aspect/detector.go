package aspect

import (
	"math"

	"synastry-service/ephemeris"
	"synastry-service/models"
)

// Separation returns the shortest arc between two longitudes, in [0, 180].
func Separation(pos1, pos2 float64) float64 {
	diff := math.Abs(ephemeris.Normalize(pos1) - ephemeris.Normalize(pos2))
	return math.Min(diff, 360-diff)
}

// Classify matches the separation of pos1 and pos2 against the Full table.
func Classify(pos1, pos2 float64) models.Aspect {
	return Full.Classify(pos1, pos2)
}

// Strength is the Reduced-table strength of the pair, 0 when nothing matches.
func Strength(pos1, pos2 float64) float64 {
	return Reduced.Classify(pos1, pos2).Strength
}

// Classify returns the first row whose orb admits the separation, with
// strength scaled linearly down to 0 at the orb limit. The result is the
// NoAspect sentinel when no row matches.
func (t Table) Classify(pos1, pos2 float64) models.Aspect {
	sep := Separation(pos1, pos2)
	for _, d := range t {
		dev := math.Abs(sep - d.Angle)
		if dev <= d.MaxOrb {
			return models.Aspect{
				Name:       d.Name,
				Separation: sep,
				Orb:        dev,
				Strength:   d.Strength * (1 - dev/d.MaxOrb),
			}
		}
	}
	return models.Aspect{Name: models.NoAspect, Separation: sep}
}

// Package aspect classifies angular separations between chart points into
// named aspects and collects the aspects inside a single chart.
package aspect

import "synastry-service/models"

// Definition is one row of an aspect table.
type Definition struct {
	Name     models.AspectName
	Angle    float64 // exact separation in degrees
	MaxOrb   float64
	Strength float64 // base strength at zero orb
}

// Table is an ordered list of aspect definitions. The first matching row
// wins, so order matters.
type Table []Definition

// Full is the eight-aspect table used for aspect lists.
var Full = Table{
	{models.Conjunction, 0, 8, 1.0},
	{models.Semisextile, 30, 3, 0.3},
	{models.Sextile, 60, 6, 0.8},
	{models.Square, 90, 8, 0.6},
	{models.Trine, 120, 8, 0.9},
	{models.Sesquiquadrate, 135, 3, 0.4},
	{models.Quincunx, 150, 3, 0.3},
	{models.Opposition, 180, 8, 0.7},
}

// Reduced keeps only the five major aspects. Synastry strength scoring uses
// it so minor aspects do not dilute the cross-chart averages.
var Reduced = Table{
	{models.Conjunction, 0, 8, 1.0},
	{models.Sextile, 60, 6, 0.8},
	{models.Square, 90, 8, 0.6},
	{models.Trine, 120, 8, 0.9},
	{models.Opposition, 180, 8, 0.7},
}

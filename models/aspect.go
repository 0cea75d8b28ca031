package models

// AspectName names a categorical angular relationship.
type AspectName string

const (
	Conjunction    AspectName = "Conjunction"
	Semisextile    AspectName = "Semisextile"
	Sextile        AspectName = "Sextile"
	Square         AspectName = "Square"
	Trine          AspectName = "Trine"
	Sesquiquadrate AspectName = "Sesquiquadrate"
	Quincunx       AspectName = "Quincunx"
	Opposition     AspectName = "Opposition"

	// NoAspect is returned when no table entry matches.
	NoAspect AspectName = "None"
)

// Aspect is the classification of one angular separation.
type Aspect struct {
	Name       AspectName `json:"name"`
	Separation float64    `json:"separation"` // shortest arc in degrees, [0,180]
	Orb        float64    `json:"orb"`        // deviation from the exact angle
	Strength   float64    `json:"strength"`   // [0,1]
}

// IsNone reports whether the aspect is the "none" sentinel.
func (a Aspect) IsNone() bool {
	return a.Name == NoAspect || a.Name == ""
}

// BodyAspect is an aspect between two named points. In synastry First belongs
// to the first chart and Second to the other one.
type BodyAspect struct {
	First  Body `json:"first"`
	Second Body `json:"second"`
	Aspect
}

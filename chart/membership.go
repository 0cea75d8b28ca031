package chart

import "synastry-service/models"

// House returns the 1-based house whose span contains longitude. House n
// spans cusps[n-1] up to cusps[n mod 12]; a span whose end is smaller than
// its start wraps through 0°. If no span matches, which only happens for
// malformed cusps, House returns 1.
func House(longitude float64, cusps models.HouseCusps) int {
	for i := 0; i < 12; i++ {
		start, end := cusps[i], cusps[(i+1)%12]
		if start <= end {
			if longitude >= start && longitude < end {
				return i + 1
			}
		} else if longitude >= start || longitude < end {
			return i + 1
		}
	}
	return 1
}

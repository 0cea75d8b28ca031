package models

// SynastryAspects is the named aspect list between two charts.
type SynastryAspects struct {
	Aspects []BodyAspect `json:"aspects"`
	Score   float64      `json:"score"`
	Count   int          `json:"count"`
}

// HousePlacement records which of the partner's houses a point falls in.
type HousePlacement struct {
	Body  Body `json:"body"`
	House int  `json:"house"`
}

// HouseOverlay is the house transposition of one chart's points into the
// other's houses.
type HouseOverlay struct {
	Placements      []HousePlacement `json:"placements"`
	Score           float64          `json:"score"`
	HarmoniousCount int              `json:"harmoniousCount"`
	TotalPlacements int              `json:"totalPlacements"`
}

// SynastryResult is the compatibility of two charts. It is derived on demand
// and never cached.
type SynastryResult struct {
	CompatibilityScore float64         `json:"compatibilityScore"`
	VenusMars          float64         `json:"venusMarsSynastry"`
	FullChart          float64         `json:"fullChartSynastry"`
	SynastryAspects    SynastryAspects `json:"synastryAspects"`
	HouseOverlay       HouseOverlay    `json:"houseTranspositions"`
}

package models

// Location is a geocoded place.
type Location struct {
	Query       string  `json:"query,omitempty"`
	DisplayName string  `json:"displayName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Provider    string  `json:"provider,omitempty"`
}

package models

import "time"

// Gender values used for mutual preference matching.
const (
	GenderMan   = "man"
	GenderWoman = "woman"
)

// Profile is a registered person with their natal chart.
type Profile struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	BirthDate       string    `json:"dateOfBirth"` // 2006-01-02
	BirthTime       string    `json:"timeOfBirth"` // 15:04
	Place           string    `json:"placeOfBirth"`
	TimeZone        string    `json:"timeZone,omitempty"`
	Gender          string    `json:"gender"`
	LookingForMen   bool      `json:"lookingForMen"`
	LookingForWomen bool      `json:"lookingForWomen"`
	Bio             string    `json:"bio,omitempty"`
	Location        Location  `json:"location"`
	Chart           Chart     `json:"chart"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Wants reports whether p is looking for someone of the given gender.
func (p Profile) Wants(gender string) bool {
	switch gender {
	case GenderMan:
		return p.LookingForMen
	case GenderWoman:
		return p.LookingForWomen
	}
	return false
}

// Match is one ranked compatibility result.
type Match struct {
	Profile           Profile        `json:"profile"`
	Age               int            `json:"age"`
	Result            SynastryResult `json:"result"`
	HighCompatibility bool           `json:"highCompatibility"`
}

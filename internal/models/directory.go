package models

import "strings"

// PetNanny is a directory listing for a pet sitter. Read-only from the API's
// point of view; rows are seeded by operations.
type PetNanny struct {
	BaseModel
	Name         string  `gorm:"size:150;not null" json:"name"`
	Image        string  `gorm:"size:500" json:"image"`
	DistanceKm   float64 `json:"distanceKm"`
	Rating       float64 `gorm:"index" json:"rating"`
	ReviewsCount int     `json:"reviewsCount"`
	Description  string  `gorm:"type:text" json:"description"`
	// Comma-separated lists; split on read.
	Services       string  `gorm:"size:500" json:"-"`
	PetTypes       string  `gorm:"size:255" json:"-"`
	PricePerHour   float64 `json:"pricePerHour"`
	PricePerDay    float64 `json:"pricePerDay"`
	Availability   string  `gorm:"size:20;default:'available'" json:"availability"`
	Experience     string  `gorm:"type:text" json:"experience"`
	AvailableTimes string  `gorm:"size:255" json:"availableTimes"`
}

// ServiceList splits the stored comma-separated services.
func (n *PetNanny) ServiceList() []string {
	return splitCommaList(n.Services)
}

// PetTypeList splits the stored comma-separated pet types.
func (n *PetNanny) PetTypeList() []string {
	return splitCommaList(n.PetTypes)
}

func splitCommaList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Pharmacy is a directory listing for a nearby pharmacy.
type Pharmacy struct {
	BaseModel
	Name     string  `gorm:"size:150;not null" json:"name"`
	Distance string  `gorm:"size:50" json:"distance"`
	Address  string  `gorm:"size:255" json:"address"`
	Timing   string  `gorm:"size:100" json:"timing"`
	Contact  string  `gorm:"size:50" json:"contact"`
	Status   string  `gorm:"size:20;default:'Open'" json:"status"`
	Rating   float64 `json:"rating"`
	Image    string  `gorm:"size:500" json:"image"`
}

package models

import "fmt"

// Pet represents a pet profile owned by a pet-owner user.
type Pet struct {
	BaseModel
	OwnerID      string   `gorm:"size:36;index;not null" json:"ownerId"`
	PetID        string   `gorm:"size:20;uniqueIndex" json:"petId"` // display tag, e.g. PET-00123456
	Name         string   `gorm:"size:100;not null" json:"name"`
	Species      string   `gorm:"size:50" json:"species"`
	Breed        string   `gorm:"size:100" json:"breed"`
	AgeYears     *int     `json:"ageYears"`
	AgeMonths    *int     `json:"ageMonths"`
	Gender       string   `gorm:"size:20;default:'unknown'" json:"gender"`
	Color        string   `gorm:"size:50" json:"color"`
	Weight       *float64 `json:"weight"`
	ProfileImage string   `gorm:"size:500" json:"profileImage"`
	MicrochipID  *string  `gorm:"size:50" json:"microchipId"`
	IsNeutered   bool     `gorm:"default:false" json:"isNeutered"`
	IsRescue     bool     `gorm:"default:false" json:"isRescue"`
	Notes        string   `gorm:"type:text" json:"notes"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// GeneratePetTag builds the short display identifier from a unix timestamp.
func GeneratePetTag(unixMillis int64) string {
	s := fmt.Sprintf("%d", unixMillis)
	if len(s) > 8 {
		s = s[len(s)-8:]
	}
	return "PET-" + s
}

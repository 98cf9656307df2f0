package models

import (
	"time"

	"gorm.io/datatypes"
)

// Fixed vocabulary for the cleaning checklist. Anything outside these tags
// is rejected at the API boundary.
var (
	CleaningAreas    = []string{"toilets", "sinks", "mirrors", "walls", "floors", "doors"}
	CleaningSupplies = []string{"toilet_paper", "paper_towels", "soap"}
)

type CleaningActivity struct {
	ID                uint                        `gorm:"primaryKey" json:"id"`
	UserID            uint                        `gorm:"not null;index" json:"user_id"`
	User              User                        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`
	BathroomID        uint                        `gorm:"not null;index" json:"bathroom_id"`
	Bathroom          Bathroom                    `gorm:"foreignKey:BathroomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"bathroom,omitempty"`
	AreasCleaned      datatypes.JSONSlice[string] `gorm:"not null" json:"areas_cleaned"`
	SuppliesRestocked datatypes.JSONSlice[string] `gorm:"not null" json:"supplies_restocked"`
	Observations      string                      `gorm:"type:text" json:"observations"`
	Photos            datatypes.JSONSlice[string] `json:"photos"`
	CreatedAt         time.Time                   `gorm:"not null" json:"created_at"`
}

// ValidTags reports whether every tag appears in the given vocabulary.
func ValidTags(tags []string, vocabulary []string) bool {
	for _, t := range tags {
		found := false
		for _, v := range vocabulary {
			if t == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	IncidentPending    = "pending"
	IncidentInProgress = "in_progress"
	IncidentResolved   = "resolved"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Incident struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	Title        string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Status       string                      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority     string                      `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	BathroomID   uint                        `gorm:"not null;index" json:"bathroom_id"`
	Bathroom     Bathroom                    `gorm:"foreignKey:BathroomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"bathroom,omitempty"`
	ReportedByID uint                        `gorm:"not null;index" json:"reported_by_id"`
	ReportedBy   User                        `gorm:"foreignKey:ReportedByID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"reported_by,omitempty"`
	AssignedToID *uint                       `gorm:"index" json:"assigned_to_id,omitempty"`
	AssignedTo   *User                       `gorm:"foreignKey:AssignedToID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"assigned_to,omitempty"`
	ResolvedAt   *time.Time                  `json:"resolved_at,omitempty"`
	Photos       datatypes.JSONSlice[string] `json:"photos"`
	CreatedAt    time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time                   `gorm:"not null" json:"updated_at"`
}

// ValidPriority reports whether p is a known priority level.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidIncidentStatus reports whether s is a known lifecycle state.
func ValidIncidentStatus(s string) bool {
	return s == IncidentPending || s == IncidentInProgress || s == IncidentResolved
}

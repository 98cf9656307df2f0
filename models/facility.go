package models

import "time"

type Building struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Code      string    `gorm:"type:varchar(10);unique;not null" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Floor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BuildingID  uint      `gorm:"not null;index" json:"building_id"`
	Building    Building  `gorm:"foreignKey:BuildingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"building,omitempty"`
	FloorNumber int       `gorm:"not null" json:"floor_number"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Bathroom struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FloorID   uint      `gorm:"not null;index" json:"floor_id"`
	Floor     Floor     `gorm:"foreignKey:FloorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"floor,omitempty"`
	Gender    string    `gorm:"type:varchar(10);not null" json:"gender"` // men, women
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

const (
	EvidenceImage = "image"
	EvidenceVideo = "video"
)

// EvidenceFile tracks an uploaded photo/video so it can be deleted later by
// its public identifier. The URL is what forms attach to their payloads.
type EvidenceFile struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	PublicID   string    `gorm:"type:varchar(64);unique;not null" json:"public_id"`
	URL        string    `gorm:"type:varchar(255);not null" json:"url"`
	MediaType  string    `gorm:"type:varchar(10);not null" json:"type"`
	Filename   string    `gorm:"type:varchar(255);not null" json:"filename"`
	Size       int64     `gorm:"not null" json:"size"`
	UploadedBy uint      `gorm:"not null;index" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

package models

import "time"

// PasswordReset is a single-use token issued by forgot-password. Tokens
// expire after one hour and are marked used on a successful reset.
type PasswordReset struct {
	ID        uint       `gorm:"primaryKey"`
	Token     string     `gorm:"type:varchar(64);unique;not null"`
	UserID    uint       `gorm:"not null;index"`
	User      User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ExpiresAt time.Time  `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time  `gorm:"not null"`
}

func (pr *PasswordReset) Usable(now time.Time) bool {
	return pr.UsedAt == nil && now.Before(pr.ExpiresAt)
}

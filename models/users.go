package models

import "time"

const (
	RoleAdmin         = "admin"
	RoleCleaningStaff = "cleaning_staff"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRole reports whether r is one of the two roles the system knows.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleCleaningStaff
}

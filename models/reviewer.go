package models

import (
	"time"

	"gorm.io/gorm"
)

// Reviewer is an account allowed to approve or reject sightings.
type Reviewer struct {
	ID           string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"unique;not null" json:"email"`
	DisplayName  string         `json:"display_name"`
	PasswordHash string         `gorm:"not null" json:"-"` // Don't expose password in JSON
	Disabled     bool           `gorm:"default:false" json:"disabled"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
}

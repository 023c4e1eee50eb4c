package models

import (
	"time"
)

// SavedTheme is a named primary/surface seed pair kept across restarts.
// At most one row is Active; the server builds its preset from it.
type SavedTheme struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	PrimarySeed string `gorm:"not null"`
	SurfaceSeed string `gorm:"not null"`
	// Interpolation is "rgb" or "lab"
	Interpolation string `gorm:"default:rgb"`
	Active        bool   `gorm:"default:false;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SavedTheme) TableName() string {
	return "saved_themes"
}

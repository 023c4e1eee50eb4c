// SPDX-License-Identifier: MIT

// Package store persists named seed pairs so a chosen theme survives restarts.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thatcatcamp/brandaura/internal/models"
	"github.com/thatcatcamp/brandaura/internal/themes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no saved theme matches
var ErrNotFound = errors.New("saved theme not found")

// Themes reads and writes saved seed pairs
type Themes struct {
	db *gorm.DB
}

// NewThemes wraps a migrated database connection
func NewThemes(db *gorm.DB) *Themes {
	return &Themes{db: db}
}

// Save validates the seeds and inserts or updates the named theme.
// Invalid seeds leave the database untouched.
func (s *Themes) Save(name, primarySeed, surfaceSeed string, interp themes.Interpolation) (*models.SavedTheme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("theme name is required")
	}
	if interp == "" {
		interp = themes.InterpolationRGB
	}
	if _, err := themes.BuildThemePresetWith(primarySeed, surfaceSeed, interp); err != nil {
		return nil, err
	}

	// Store normalized #rrggbb so listings are consistent
	primary, _ := themes.NormalizeColor(primarySeed)
	surface, _ := themes.NormalizeColor(surfaceSeed)

	theme := &models.SavedTheme{
		Name:          name,
		PrimarySeed:   primary,
		SurfaceSeed:   surface,
		Interpolation: string(interp),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"primary_seed", "surface_seed", "interpolation", "updated_at"}),
	}).Create(theme).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save theme %q: %w", name, err)
	}

	return s.Get(name)
}

// Get returns a saved theme by name
func (s *Themes) Get(name string) (*models.SavedTheme, error) {
	var theme models.SavedTheme
	err := s.db.Where("name = ?", name).First(&theme).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load theme %q: %w", name, err)
	}
	return &theme, nil
}

// List returns all saved themes ordered by name
func (s *Themes) List() ([]models.SavedTheme, error) {
	var list []models.SavedTheme
	if err := s.db.Order("name").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	return list, nil
}

// Use marks the named theme active and every other theme inactive
func (s *Themes) Use(name string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var theme models.SavedTheme
		err := tx.Where("name = ?", name).First(&theme).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.SavedTheme{}).Where("active = ?", true).Update("active", false).Error; err != nil {
			return fmt.Errorf("failed to clear active theme: %w", err)
		}
		if err := tx.Model(&theme).Update("active", true).Error; err != nil {
			return fmt.Errorf("failed to activate theme: %w", err)
		}
		return nil
	})
}

// Active returns the active theme, or ErrNotFound when none is set
func (s *Themes) Active() (*models.SavedTheme, error) {
	var theme models.SavedTheme
	err := s.db.Where("active = ?", true).First(&theme).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active theme: %w", err)
	}
	return &theme, nil
}

// Delete removes a saved theme
func (s *Themes) Delete(name string) error {
	res := s.db.Where("name = ?", name).Delete(&models.SavedTheme{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete theme %q: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Seeds converts a saved theme into catalog form
func Seeds(t *models.SavedTheme) *themes.Seeds {
	return &themes.Seeds{Name: t.Name, Primary: t.PrimarySeed, Surface: t.SurfaceSeed}
}

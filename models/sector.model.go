package models

import (
	"gorm.io/gorm"
)

// Sector slugs used across briefs, stocks, discussions and quizzes
const (
	SectorDefense = "defense"
	SectorHealth  = "health"
	SectorEnergy  = "energy"
)

type Sector struct {
	gorm.Model         // Auto includes ID, CreatedAt, UpdatedAt, DeletedAt
	Slug        string `gorm:"unique;not null" json:"slug"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
}

// ValidSector reports whether slug is one of the known sector slugs
func ValidSector(slug string) bool {
	switch slug {
	case SectorDefense, SectorHealth, SectorEnergy:
		return true
	}
	return false
}

// AllSectors returns the known sector slugs in display order
func AllSectors() []string {
	return []string{SectorDefense, SectorHealth, SectorEnergy}
}

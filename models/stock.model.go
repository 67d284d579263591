package models

import (
	"time"

	"gorm.io/gorm"
)

type Stock struct {
	gorm.Model        // Auto includes ID, CreatedAt, UpdatedAt, DeletedAt
	Symbol     string `gorm:"unique;not null" json:"symbol"`
	Name       string `gorm:"not null" json:"name"`
	Sector     string `gorm:"index;not null" json:"sector"`
	Exchange   string `json:"exchange"`

	// Latest quote, denormalized for the list endpoint
	Price         float64    `json:"price"`
	ChangePercent float64    `json:"changePercent"`
	LastUpdated   *time.Time `json:"lastUpdated"`
}

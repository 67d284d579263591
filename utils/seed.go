package utils

import (
	"gorm.io/gorm"

	"github.com/piotrniepolak/watchtower2-sub003/models"
)

var sectorSeed = []models.Sector{
	{Slug: models.SectorDefense, Name: "Defense", Description: "Global defense, aerospace and military procurement"},
	{Slug: models.SectorHealth, Name: "Pharmaceutical", Description: "Pharmaceutical pipelines, regulation and public health"},
	{Slug: models.SectorEnergy, Name: "Energy", Description: "Oil, gas, renewables and energy policy"},
}

// SeedSectors inserts the sector records missing from the sectors table
func SeedSectors(db *gorm.DB) error {
	for _, s := range sectorSeed {
		var count int64
		if err := db.Model(&models.Sector{}).Where("slug = ?", s.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		sector := s
		if err := db.Create(&sector).Error; err != nil {
			return err
		}
	}
	return nil
}

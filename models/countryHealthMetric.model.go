package models

import (
	"gorm.io/gorm"
)

type CountryHealthMetric struct {
	gorm.Model
	CountryCode string `gorm:"index:idx_metric_country_indicator,unique;not null" json:"countryCode"` // ISO3
	Indicator   string `gorm:"index:idx_metric_country_indicator,unique;not null" json:"indicator"`

	CountryName string  `gorm:"not null" json:"countryName"`
	Value       float64 `json:"value"`
	Year        int     `json:"year"`
}

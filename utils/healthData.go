package utils

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/piotrniepolak/watchtower2-sub003/models"
)

// HealthIndicators maps World Bank indicator codes to the indicator names
// stored and scored locally. Names carry the direction keywords the scorer
// classifies on.
var HealthIndicators = map[string]string{
	"SP.DYN.LE00.IN": "Life expectancy at birth (years)",
	"SP.DYN.IMRT.IN": "Infant mortality rate (per 1,000 live births)",
	"SH.DYN.MORT":    "Under-five mortality rate (per 1,000 live births)",
	"SH.STA.MMRT":    "Maternal mortality ratio (per 100,000 live births)",
	"SH.IMM.MEAS":    "Measles immunization coverage (% of children)",
	"SH.MED.PHYS.ZS": "Physicians density (per 1,000 people)",
	"SH.TBS.INCD":    "Tuberculosis incidence (per 100,000 people)",
	"SH.H2O.BASW.ZS": "Access to basic drinking water (% of population)",
	"SH.STA.BRTC.ZS": "Births attended by skilled health staff (%)",
}

// TrackedCountries are the ISO3 codes refreshed from the World Bank API
var TrackedCountries = []string{
	"USA", "CHN", "JPN", "DEU", "GBR", "FRA", "IND", "BRA", "RUS", "CAN",
	"AUS", "KOR", "MEX", "IDN", "TUR", "SAU", "CHE", "NLD", "SWE", "NOR",
	"ZAF", "NGA", "EGY", "ETH", "KEN", "AFG", "PAK", "BGD", "VNM", "THA",
	"ARG", "COL", "CHL", "PER", "POL", "UKR", "IRQ", "IRN", "ISR", "TCD",
}

// RefreshHealthMetrics pulls every tracked indicator for every tracked
// country and upserts the rows. Individual fetch failures are logged and
// skipped so one missing series does not abort the refresh.
func RefreshHealthMetrics(db *gorm.DB, client *WorldBankClient) (int, error) {
	updated := 0
	for _, country := range TrackedCountries {
		for code, name := range HealthIndicators {
			iv, err := client.FetchIndicator(country, code)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"country":   country,
					"indicator": code,
				}).Debugf("Skipping indicator: %v", err)
				continue
			}

			metric := models.CountryHealthMetric{
				CountryCode: country,
				Indicator:   name,
				CountryName: iv.CountryName,
				Value:       iv.Value,
				Year:        iv.Year,
			}
			if err := upsertHealthMetric(db, &metric); err != nil {
				return updated, err
			}
			updated++
		}
	}
	return updated, nil
}

func upsertHealthMetric(db *gorm.DB, metric *models.CountryHealthMetric) error {
	var existing models.CountryHealthMetric
	err := db.Where("country_code = ? AND indicator = ?", metric.CountryCode, metric.Indicator).
		First(&existing).Error
	if err == nil {
		metric.ID = existing.ID
		metric.CreatedAt = existing.CreatedAt
		return db.Save(metric).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(metric).Error
}

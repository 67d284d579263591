package utils

import (
	"strings"

	"github.com/piotrniepolak/watchtower2-sub003/models"
)

// Calibration window: observed raw scores cluster in this band, which maps
// onto the full 0-100 display range
const (
	observedRawMin = 25.0
	observedRawMax = 66.0
)

var (
	positiveKeywords = []string{"coverage", "access", "births", "skilled", "immunization", "expectancy", "density"}
	negativeKeywords = []string{"mortality", "death", "disease", "malnutrition", "incidence"}
)

// CountryHealthScore is the composite 0-100 score for one country
type CountryHealthScore struct {
	CountryCode    string             `json:"countryCode"`
	CountryName    string             `json:"countryName"`
	Score          float64            `json:"score"`
	IndicatorCount int                `json:"indicatorCount"`
	Indicators     map[string]float64 `json:"indicators"`
}

// isPositiveDirection classifies whether higher indicator values are better
func isPositiveDirection(indicator string) bool {
	lower := strings.ToLower(indicator)
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// normalizeIndicator min-max normalizes value against all observed values,
// inverted for lower-is-better indicators
func normalizeIndicator(values []float64, value float64, positive bool) float64 {
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		return 0.5
	}
	if positive {
		return (value - minVal) / (maxVal - minVal)
	}
	return (maxVal - value) / (maxVal - minVal)
}

// ComputeHealthScores builds calibrated composite scores for every country
// present in metrics. Each indicator carries equal weight; countries missing
// indicators get an adjustment factor so sparse data does not depress scores.
func ComputeHealthScores(metrics []models.CountryHealthMetric) map[string]*CountryHealthScore {
	byCountry := make(map[string]*CountryHealthScore)
	valuesByIndicator := make(map[string][]float64)

	for _, m := range metrics {
		entry, ok := byCountry[m.CountryCode]
		if !ok {
			entry = &CountryHealthScore{
				CountryCode: m.CountryCode,
				CountryName: m.CountryName,
				Indicators:  make(map[string]float64),
			}
			byCountry[m.CountryCode] = entry
		}
		entry.Indicators[m.Indicator] = m.Value
		valuesByIndicator[m.Indicator] = append(valuesByIndicator[m.Indicator], m.Value)
	}

	totalIndicators := len(valuesByIndicator)
	if totalIndicators == 0 {
		return byCountry
	}
	weight := 1.0 / float64(totalIndicators)

	for _, entry := range byCountry {
		total := 0.0
		valid := 0
		for indicator, value := range entry.Indicators {
			values := valuesByIndicator[indicator]
			if len(values) < 2 {
				continue
			}
			total += normalizeIndicator(values, value, isPositiveDirection(indicator)) * weight
			valid++
		}
		entry.IndicatorCount = valid
		if valid == 0 {
			continue
		}

		adjustment := float64(totalIndicators) / float64(valid)
		raw := total * 100 * adjustment

		calibrated := (raw - observedRawMin) / (observedRawMax - observedRawMin) * 100
		if calibrated < 0 {
			calibrated = 0
		}
		if calibrated > 100 {
			calibrated = 100
		}
		entry.Score = calibrated
	}

	return byCountry
}

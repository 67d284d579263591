package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/piotrniepolak/watchtower2-sub003/config"
	"github.com/piotrniepolak/watchtower2-sub003/database"
	"github.com/piotrniepolak/watchtower2-sub003/models"
)

// Imports a WHO indicator export (IndicatorName, Location, LocationCode,
// Year, NumericValue columns) into the country_health_metrics table.
// Usage: go run scripts/importWhoMetrics.go who_data.csv
func main() {
	config.LoadConfig()
	database.ConnectDb()

	path := "who_data.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%1000 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		code := strings.ToUpper(getField(row, headerIndex, "LocationCode"))
		indicator := getField(row, headerIndex, "IndicatorName")
		value, ok := parseFloat(getField(row, headerIndex, "NumericValue"))

		// Regional aggregates (AFR, EUR, GLOBAL, ...) are not ISO3 countries
		if len(code) != 3 || indicator == "" || !ok || isRegionalAggregate(code) {
			skipped++
			continue
		}

		metric := models.CountryHealthMetric{
			CountryCode: code,
			Indicator:   indicator,
			CountryName: getField(row, headerIndex, "Location"),
			Value:       value,
			Year:        parseInt(getField(row, headerIndex, "Year")),
		}

		var existing models.CountryHealthMetric
		result := database.Database.Db.
			Where("country_code = ? AND indicator = ?", metric.CountryCode, metric.Indicator).
			First(&existing)

		if result.Error != nil {
			if err := database.Database.Db.Create(&metric).Error; err != nil {
				log.Printf("Error inserting metric %s/%s: %v", metric.CountryCode, metric.Indicator, err)
				continue
			}
			inserted++
		} else {
			// Keep the newest observation per (country, indicator)
			if metric.Year < existing.Year {
				skipped++
				continue
			}
			existing.CountryName = metric.CountryName
			existing.Value = metric.Value
			existing.Year = metric.Year
			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating metric %s/%s: %v", metric.CountryCode, metric.Indicator, err)
				continue
			}
			updated++
		}
	}

	log.Printf("Import finished: %d inserted, %d updated, %d skipped", inserted, updated, skipped)
}

var regionalCodes = map[string]bool{
	"AFR": true, "AMR": true, "EMR": true, "EUR": true, "SEA": true, "WPR": true,
}

func isRegionalAggregate(code string) bool {
	return regionalCodes[code]
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

package healthController

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/piotrniepolak/watchtower2-sub003/database"
	"github.com/piotrniepolak/watchtower2-sub003/middleware"
	"github.com/piotrniepolak/watchtower2-sub003/models"
	"github.com/piotrniepolak/watchtower2-sub003/utils"
)

// GetCountries returns composite health scores for every tracked country
func GetCountries(c *fiber.Ctx) error {
	var metrics []models.CountryHealthMetric
	if err := database.Database.Db.Find(&metrics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch health metrics!", nil)
	}

	scores := utils.ComputeHealthScores(metrics)

	countries := make([]*utils.CountryHealthScore, 0, len(scores))
	for _, s := range scores {
		countries = append(countries, s)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Country health scores fetched!", fiber.Map{
		"countries": countries,
	})
}

// GetCountry returns one country's indicators and composite score
func GetCountry(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))
	if len(code) != 3 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Country code must be ISO3!", nil)
	}

	var metrics []models.CountryHealthMetric
	if err := database.Database.Db.Find(&metrics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch health metrics!", nil)
	}

	// Scores are relative, so normalization needs every country's values
	scores := utils.ComputeHealthScores(metrics)
	country, ok := scores[code]
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Country not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Country health score fetched!", country)
}

// RefreshMetrics triggers an immediate World Bank indicator refresh
func RefreshMetrics(c *fiber.Ctx) error {
	updated, err := utils.RefreshHealthMetrics(database.Database.Db, utils.NewWorldBankClient())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Indicator refresh failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Health metrics refreshed!", fiber.Map{
		"updated": updated,
	})
}

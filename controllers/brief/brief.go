package briefController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/piotrniepolak/watchtower2-sub003/database"
	"github.com/piotrniepolak/watchtower2-sub003/middleware"
	"github.com/piotrniepolak/watchtower2-sub003/models"
	"github.com/piotrniepolak/watchtower2-sub003/utils"
)

func briefPayload(b *models.DailyBrief) fiber.Map {
	return fiber.Map{
		"sector":               b.Sector,
		"date":                 b.Date,
		"title":                b.Title,
		"executiveSummary":     b.ExecutiveSummary,
		"keyDevelopments":      b.DevelopmentsList(),
		"marketImpact":         b.MarketImpact,
		"geopoliticalAnalysis": b.GeopoliticalCtx,
		"references":           b.ReferencesList(),
		"generatedBy":          b.GeneratedBy,
	}
}

func sectorParam(c *fiber.Ctx) (string, bool) {
	sector := c.Params("sector")
	return sector, models.ValidSector(sector)
}

// GetTodayBrief returns today's brief for a sector, generating it on a cache
// miss and serving fallback content when the pipeline fails
func GetTodayBrief(c *fiber.Ctx) error {
	sector, ok := sectorParam(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown sector!", nil)
	}

	today := time.Now().UTC().Format("2006-01-02")
	brief, err := utils.GetOrGenerateBrief(database.Database.Db, utils.NewBriefGenerator(), sector, today)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load brief!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Brief fetched!", briefPayload(brief))
}

// GetBriefByDate returns the cached brief for a sector and date
func GetBriefByDate(c *fiber.Ctx) error {
	sector, ok := sectorParam(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown sector!", nil)
	}

	date := c.Params("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Date must be YYYY-MM-DD!", nil)
	}

	var brief models.DailyBrief
	if err := database.Database.Db.Where("sector = ? AND date = ?", sector, date).First(&brief).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No brief for this date!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Brief fetched!", briefPayload(&brief))
}

// RegenerateBrief forces a pipeline re-run for today and upserts the result
func RegenerateBrief(c *fiber.Ctx) error {
	sector, ok := sectorParam(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown sector!", nil)
	}

	today := time.Now().UTC().Format("2006-01-02")
	brief, err := utils.RegenerateBrief(database.Database.Db, utils.NewBriefGenerator(), sector, today)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to regenerate brief!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Brief regenerated!", briefPayload(brief))
}

// GetFourStep returns the four-step intelligence view of today's brief
func GetFourStep(c *fiber.Ctx) error {
	sector, ok := sectorParam(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown sector!", nil)
	}

	today := time.Now().UTC().Format("2006-01-02")
	brief, err := utils.GetOrGenerateBrief(database.Database.Db, utils.NewBriefGenerator(), sector, today)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load brief!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Four-step intelligence fetched!", fiber.Map{
		"sector": brief.Sector,
		"date":   brief.Date,
		"steps": []fiber.Map{
			{"step": 1, "name": "Executive Summary", "content": brief.ExecutiveSummary},
			{"step": 2, "name": "Key Developments", "items": brief.DevelopmentsList()},
			{"step": 3, "name": "Market Impact", "content": brief.MarketImpact},
			{"step": 4, "name": "Geopolitical Analysis", "content": brief.GeopoliticalCtx},
		},
		"references":  brief.ReferencesList(),
		"generatedBy": brief.GeneratedBy,
	})
}

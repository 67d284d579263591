package newsRoutes

import (
	"github.com/gofiber/fiber/v2"

	briefController "github.com/piotrniepolak/watchtower2-sub003/controllers/brief"
)

// SetupNewsRoutes sets up daily brief and four-step intelligence routes
func SetupNewsRoutes(app *fiber.App) {
	newsGroup := app.Group("/api/news")

	// Specific routes MUST come before the /:date catch-all
	newsGroup.Get("/:sector/today", briefController.GetTodayBrief)
	newsGroup.Post("/:sector/regenerate", briefController.RegenerateBrief)
	newsGroup.Get("/:sector/:date", briefController.GetBriefByDate)

	intelGroup := app.Group("/api/intelligence")
	intelGroup.Get("/:sector/four-step", briefController.GetFourStep)
}

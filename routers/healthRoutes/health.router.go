package healthRoutes

import (
	"github.com/gofiber/fiber/v2"

	healthController "github.com/piotrniepolak/watchtower2-sub003/controllers/health"
)

// SetupHealthRoutes sets up the world health map routes
func SetupHealthRoutes(app *fiber.App) {
	group := app.Group("/api/health")

	group.Get("/countries", healthController.GetCountries)
	group.Get("/countries/:code", healthController.GetCountry)
	group.Post("/refresh", healthController.RefreshMetrics)
}

package stockRoutes

import (
	"github.com/gofiber/fiber/v2"

	stocksController "github.com/piotrniepolak/watchtower2-sub003/controllers/stocks"
)

// SetupStockRoutes sets up tracked stock and quote history routes
func SetupStockRoutes(app *fiber.App) {
	stockGroup := app.Group("/api/stocks")

	stockGroup.Get("/", stocksController.GetStocksList)
	stockGroup.Post("/refresh", stocksController.RefreshQuotes)

	// Dynamic symbol routes MUST come after specific routes
	stockGroup.Get("/:symbol", stocksController.GetStockBySymbol)
	stockGroup.Get("/:symbol/history", stocksController.GetStockHistory)
}

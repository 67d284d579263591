package stocksController

import (
	"github.com/gofiber/fiber/v2"

	"github.com/piotrniepolak/watchtower2-sub003/database"
	"github.com/piotrniepolak/watchtower2-sub003/middleware"
	"github.com/piotrniepolak/watchtower2-sub003/models"
	"github.com/piotrniepolak/watchtower2-sub003/utils"
)

// GetStocksList returns the tracked stocks, optionally filtered by sector
func GetStocksList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("sizePerPage", 50)
	sector := c.Query("sector")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit
	db := database.Database.Db

	query := db.Model(&models.Stock{})
	if sector != "" {
		if !models.ValidSector(sector) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown sector!", nil)
		}
		query = query.Where("sector = ?", sector)
	}

	var total int64
	query.Count(&total)

	var stocks []models.Stock
	if err := query.
		Order("symbol ASC").
		Offset(offset).
		Limit(limit).
		Find(&stocks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stocks!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stocks list fetched!", fiber.Map{
		"totalRecords": total,
		"totalPages":   (total + int64(limit) - 1) / int64(limit),
		"currentPage":  page,
		"stocksList":   stocks,
	})
}

// GetStockBySymbol returns one stock with its latest stored quote
func GetStockBySymbol(c *fiber.Ctx) error {
	symbol := c.Params("symbol")

	var stock models.Stock
	if err := database.Database.Db.Where("symbol = ?", symbol).First(&stock).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Stock not found!", nil)
	}

	var latest models.StockQuote
	var quote interface{}
	if err := database.Database.Db.
		Where("stock_id = ?", stock.ID).
		Order("date DESC").
		First(&latest).Error; err == nil {
		quote = latest
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stock found!", fiber.Map{
		"stock":       stock,
		"latestQuote": quote,
	})
}

// GetStockHistory returns stored daily quotes for a symbol, newest first
func GetStockHistory(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	limit := c.QueryInt("limit", 30)
	if limit < 1 {
		limit = 30
	}
	if limit > 365 {
		limit = 365
	}

	var stock models.Stock
	if err := database.Database.Db.Where("symbol = ?", symbol).First(&stock).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Stock not found!", nil)
	}

	var quotes []models.StockQuote
	if err := database.Database.Db.
		Where("stock_id = ?", stock.ID).
		Order("date DESC").
		Limit(limit).
		Find(&quotes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "History fetched!", fiber.Map{
		"symbol":  stock.Symbol,
		"history": quotes,
	})
}

// RefreshQuotes triggers an immediate quote refresh for all tracked stocks
func RefreshQuotes(c *fiber.Ctx) error {
	updated, err := utils.RefreshAllQuotes(database.Database.Db, utils.NewYahooFinanceClient())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Quote refresh failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quotes refreshed!", fiber.Map{
		"updated": updated,
	})
}

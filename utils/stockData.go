package utils

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/piotrniepolak/watchtower2-sub003/models"
)

type trackedStock struct {
	Symbol   string
	Name     string
	Exchange string
}

// TrackedStocks are the tickers the dashboard follows per sector
var TrackedStocks = map[string][]trackedStock{
	models.SectorDefense: {
		{"LMT", "Lockheed Martin", "NYSE"},
		{"RTX", "RTX Corporation", "NYSE"},
		{"NOC", "Northrop Grumman", "NYSE"},
		{"GD", "General Dynamics", "NYSE"},
		{"BA", "Boeing", "NYSE"},
		{"LHX", "L3Harris Technologies", "NYSE"},
		{"HII", "Huntington Ingalls Industries", "NYSE"},
		{"LDOS", "Leidos Holdings", "NYSE"},
		{"KTOS", "Kratos Defense", "NASDAQ"},
	},
	models.SectorHealth: {
		{"PFE", "Pfizer", "NYSE"},
		{"JNJ", "Johnson & Johnson", "NYSE"},
		{"MRK", "Merck & Co", "NYSE"},
		{"ABBV", "AbbVie", "NYSE"},
		{"LLY", "Eli Lilly", "NYSE"},
		{"BMY", "Bristol-Myers Squibb", "NYSE"},
		{"AZN", "AstraZeneca", "NASDAQ"},
		{"NVS", "Novartis", "NYSE"},
		{"MRNA", "Moderna", "NASDAQ"},
	},
	models.SectorEnergy: {
		{"XOM", "Exxon Mobil", "NYSE"},
		{"CVX", "Chevron", "NYSE"},
		{"COP", "ConocoPhillips", "NYSE"},
		{"SLB", "SLB", "NYSE"},
		{"EOG", "EOG Resources", "NYSE"},
		{"OXY", "Occidental Petroleum", "NYSE"},
		{"BP", "BP", "NYSE"},
		{"SHEL", "Shell", "NYSE"},
		{"NEE", "NextEra Energy", "NYSE"},
	},
}

// SeedStocks inserts any tracked tickers missing from the stocks table
func SeedStocks(db *gorm.DB) error {
	for sector, stocks := range TrackedStocks {
		for _, s := range stocks {
			var count int64
			if err := db.Model(&models.Stock{}).Where("symbol = ?", s.Symbol).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			stock := models.Stock{
				Symbol:   s.Symbol,
				Name:     s.Name,
				Sector:   sector,
				Exchange: s.Exchange,
			}
			if err := db.Create(&stock).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// RefreshAllQuotes fetches the latest quote for every stored stock, updating
// the denormalized price on the stock row and upserting the day's quote row.
// Per-symbol fetch failures are logged and skipped.
func RefreshAllQuotes(db *gorm.DB, client *YahooFinanceClient) (int, error) {
	var stocks []models.Stock
	if err := db.Find(&stocks).Error; err != nil {
		return 0, err
	}

	today := time.Now().UTC().Format("2006-01-02")
	updated := 0

	for i := range stocks {
		quote, err := client.FetchQuote(stocks[i].Symbol)
		if err != nil {
			logrus.WithField("symbol", stocks[i].Symbol).Warnf("Quote fetch failed: %v", err)
			continue
		}

		now := time.Now().UTC()
		stocks[i].Price = quote.Price
		stocks[i].ChangePercent = quote.ChangePercent
		stocks[i].LastUpdated = &now
		if err := db.Save(&stocks[i]).Error; err != nil {
			return updated, err
		}

		row := models.StockQuote{
			StockID:       stocks[i].ID,
			Date:          today,
			Price:         quote.Price,
			Open:          quote.Open,
			High:          quote.High,
			Low:           quote.Low,
			Volume:        quote.Volume,
			ChangePercent: quote.ChangePercent,
		}
		if err := upsertStockQuote(db, &row); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func upsertStockQuote(db *gorm.DB, row *models.StockQuote) error {
	var existing models.StockQuote
	err := db.Where("stock_id = ? AND date = ?", row.StockID, row.Date).First(&existing).Error
	if err == nil {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		return db.Save(row).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(row).Error
}

package models

import (
	"gorm.io/gorm"
)

type StockQuote struct {
	gorm.Model
	StockID uint   `gorm:"index:idx_quote_stock_date,unique" json:"stockId"`
	Date    string `gorm:"index:idx_quote_stock_date,unique" json:"date"` // YYYY-MM-DD

	Price         float64 `json:"price"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Volume        int64   `json:"volume"`
	ChangePercent float64 `json:"changePercent"`
}

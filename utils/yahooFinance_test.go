package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piotrniepolak/watchtower2-sub003/models"
)

const yahooChartBody = `{
  "chart": {
    "result": [{
      "meta": {
        "symbol": "LMT",
        "regularMarketPrice": 472.5,
        "chartPreviousClose": 450.0
      },
      "indicators": {
        "quote": [{
          "open": [455.0],
          "high": [475.2],
          "low": [452.1],
          "volume": [1200000]
        }]
      }
    }],
    "error": null
  }
}`

func TestYahooFetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/LMT", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(yahooChartBody))
	}))
	t.Cleanup(srv.Close)

	client := NewYahooFinanceClientWith(srv.URL)
	quote, err := client.FetchQuote("LMT")

	require.NoError(t, err)
	assert.Equal(t, "LMT", quote.Symbol)
	assert.Equal(t, 472.5, quote.Price)
	assert.Equal(t, 455.0, quote.Open)
	assert.Equal(t, 475.2, quote.High)
	assert.Equal(t, 452.1, quote.Low)
	assert.Equal(t, int64(1200000), quote.Volume)
	assert.InDelta(t, 5.0, quote.ChangePercent, 0.0001)
}

func TestYahooFetchQuoteUnknownSymbol(t *testing.T) {
	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := NewYahooFinanceClientWith(srv.URL)
	_, err := client.FetchQuote("NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")
}

func TestYahooFetchQuoteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client := NewYahooFinanceClientWith(srv.URL)
	_, err := client.FetchQuote("LMT")
	assert.Error(t, err)
}

func TestRefreshAllQuotesSkipsFailures(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Stock{Symbol: "LMT", Name: "Lockheed Martin", Sector: models.SectorDefense}).Error)
	require.NoError(t, db.Create(&models.Stock{Symbol: "FAIL", Name: "Broken", Sector: models.SectorDefense}).Error)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v8/finance/chart/LMT" {
			w.Write([]byte(yahooChartBody))
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	updated, err := RefreshAllQuotes(db, NewYahooFinanceClientWith(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	var stock models.Stock
	require.NoError(t, db.Where("symbol = ?", "LMT").First(&stock).Error)
	assert.Equal(t, 472.5, stock.Price)
	assert.NotNil(t, stock.LastUpdated)

	var quotes int64
	db.Model(&models.StockQuote{}).Count(&quotes)
	assert.Equal(t, int64(1), quotes)
}

func TestRefreshAllQuotesIdempotentPerDay(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Stock{Symbol: "LMT", Name: "Lockheed Martin", Sector: models.SectorDefense}).Error)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(yahooChartBody))
	}))
	t.Cleanup(srv.Close)

	client := NewYahooFinanceClientWith(srv.URL)
	_, err := RefreshAllQuotes(db, client)
	require.NoError(t, err)
	_, err = RefreshAllQuotes(db, client)
	require.NoError(t, err)

	var quotes int64
	db.Model(&models.StockQuote{}).Count(&quotes)
	assert.Equal(t, int64(1), quotes)
}

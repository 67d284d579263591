package utils

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/piotrniepolak/watchtower2-sub003/config"
)

// YahooQuote is one symbol's market snapshot from the chart API
type YahooQuote struct {
	Symbol        string
	Price         float64
	PreviousClose float64
	Open          float64
	High          float64
	Low           float64
	Volume        int64
	ChangePercent float64
}

// YahooFinanceClient fetches quotes from the Yahoo Finance chart API
type YahooFinanceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooFinanceClient creates a client from application config
func NewYahooFinanceClient() *YahooFinanceClient {
	return &YahooFinanceClient{
		baseURL:    config.AppConfig.YahooFinanceApiURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewYahooFinanceClientWith creates a client against a custom endpoint, used in tests
func NewYahooFinanceClientWith(baseURL string) *YahooFinanceClient {
	return &YahooFinanceClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchQuote fetches the latest quote for one symbol
func (c *YahooFinanceClient) FetchQuote(symbol string) (*YahooQuote, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, symbol)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	// Yahoo rejects the default Go user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; watchtower/1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Yahoo Finance API error (%d): %s", resp.StatusCode, string(body))
	}

	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		apiErr := gjson.GetBytes(body, "chart.error.description").String()
		if apiErr == "" {
			apiErr = "empty chart result"
		}
		return nil, fmt.Errorf("no quote data for %s: %s", symbol, apiErr)
	}

	meta := result.Get("meta")
	price := meta.Get("regularMarketPrice").Float()
	prevClose := meta.Get("chartPreviousClose").Float()
	if prevClose == 0 {
		prevClose = meta.Get("previousClose").Float()
	}

	changePercent := 0.0
	if prevClose != 0 {
		changePercent = (price - prevClose) / prevClose * 100
	}

	quote := &YahooQuote{
		Symbol:        symbol,
		Price:         price,
		PreviousClose: prevClose,
		Open:          result.Get("indicators.quote.0.open.0").Float(),
		High:          result.Get("indicators.quote.0.high.0").Float(),
		Low:           result.Get("indicators.quote.0.low.0").Float(),
		Volume:        result.Get("indicators.quote.0.volume.0").Int(),
		ChangePercent: changePercent,
	}

	if quote.Price == 0 {
		return nil, fmt.Errorf("no price returned for %s", symbol)
	}

	return quote, nil
}

package utils

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/piotrniepolak/watchtower2-sub003/config"
)

// IndicatorValue is the most recent non-null observation for one indicator
type IndicatorValue struct {
	CountryCode string
	CountryName string
	Indicator   string
	Value       float64
	Year        int
}

// WorldBankClient fetches development indicators from the World Bank API
type WorldBankClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewWorldBankClient creates a client from application config
func NewWorldBankClient() *WorldBankClient {
	return &WorldBankClient{
		baseURL:    config.AppConfig.WorldBankApiURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWorldBankClientWith creates a client against a custom endpoint, used in tests
func NewWorldBankClientWith(baseURL string) *WorldBankClient {
	return &WorldBankClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchIndicator returns the latest non-null value of one indicator for one
// country. The API responds with a two element array: [page metadata, rows],
// rows ordered newest year first with null values for missing years.
func (c *WorldBankClient) FetchIndicator(countryCode, indicatorCode string) (*IndicatorValue, error) {
	url := fmt.Sprintf("%s/country/%s/indicator/%s?format=json&per_page=20", c.baseURL, countryCode, indicatorCode)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch indicator: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("World Bank API error (%d): %s", resp.StatusCode, string(body))
	}

	rows := gjson.GetBytes(body, "1")
	if !rows.IsArray() {
		msg := gjson.GetBytes(body, "0.message.0.value").String()
		if msg == "" {
			msg = "unexpected response shape"
		}
		return nil, fmt.Errorf("no indicator data for %s/%s: %s", countryCode, indicatorCode, msg)
	}

	var found *IndicatorValue
	rows.ForEach(func(_, row gjson.Result) bool {
		value := row.Get("value")
		if value.Type == gjson.Null {
			return true // keep scanning older years
		}
		found = &IndicatorValue{
			CountryCode: row.Get("countryiso3code").String(),
			CountryName: row.Get("country.value").String(),
			Indicator:   row.Get("indicator.value").String(),
			Value:       value.Float(),
			Year:        int(row.Get("date").Int()),
		}
		return false
	})

	if found == nil {
		return nil, fmt.Errorf("no non-null observations for %s/%s", countryCode, indicatorCode)
	}
	return found, nil
}

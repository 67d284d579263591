package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/piotrniepolak/watchtower2-sub003/config"
)

// PerplexityResult holds the research text plus the cited source URLs
type PerplexityResult struct {
	Content   string
	Citations []string
}

// PerplexityClient calls the Perplexity chat completions API
type PerplexityClient struct {
	apiKey string
	model  string
	client *resty.Client
}

// NewPerplexityClient creates a client from application config
func NewPerplexityClient() *PerplexityClient {
	cfg := config.AppConfig
	return &PerplexityClient{
		apiKey: cfg.PerplexityApiKey,
		model:  cfg.PerplexityModel,
		client: resty.New().
			SetBaseURL(cfg.PerplexityApiURL).
			SetTimeout(time.Duration(cfg.PerplexityTimeout) * time.Second),
	}
}

// NewPerplexityClientWith creates a client against a custom endpoint, used in tests
func NewPerplexityClientWith(apiKey, baseURL, model string, timeout time.Duration) *PerplexityClient {
	return &PerplexityClient{
		apiKey: apiKey,
		model:  model,
		client: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// Research asks Perplexity for current developments on the given prompt
func (c *PerplexityClient) Research(ctx context.Context, systemPrompt, userPrompt string) (*PerplexityResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("Perplexity API key is not configured")
	}

	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature": 0.2,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(reqBody).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("failed to call Perplexity: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("Perplexity API error (%d): %s", resp.StatusCode(), resp.String())
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Citations []string `json:"citations"`
	}
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("no completion returned")
	}

	return &PerplexityResult{
		Content:   parsed.Choices[0].Message.Content,
		Citations: parsed.Citations,
	}, nil
}

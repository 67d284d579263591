package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/piotrniepolak/watchtower2-sub003/config"
	"github.com/piotrniepolak/watchtower2-sub003/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.DailyBrief{},
		&models.QuizQuestion{},
		&models.QuizResponse{},
		&models.Stock{},
		&models.StockQuote{},
		&models.CountryHealthMetric{},
	))
	return db
}

func chatCompletionBody(content string, citations []string) []byte {
	payload := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	if citations != nil {
		payload["citations"] = citations
	}
	body, _ := json.Marshal(payload)
	return body
}

func fakeChatServer(t *testing.T, content string, citations []string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatCompletionBody(content, citations))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testGenerator(t *testing.T, openaiContent, perplexityContent string, citations []string) *BriefGenerator {
	t.Helper()
	openaiSrv := fakeChatServer(t, openaiContent, nil)
	perplexitySrv := fakeChatServer(t, perplexityContent, citations)

	return NewBriefGeneratorWith(
		NewOpenAIClientWith("test-key", openaiSrv.URL, "gpt-4o", 5*time.Second),
		NewPerplexityClientWith("test-key", perplexitySrv.URL, "sonar-pro", 5*time.Second),
	)
}

func TestMain(m *testing.M) {
	config.LoadConfig()
	m.Run()
}

func TestGenerateBrief(t *testing.T) {
	research := "Defense spending rose [1]. Source: https://example.com/report"
	structured := "## Executive Summary\nSpending rose across the alliance [1].\n\n" +
		"## Key Developments\n1. Budget approved [1].\n2. New contract signed [2].\n\n" +
		"## Market Impact\nPrimes rallied.\n\n" +
		"## Geopolitical Analysis\nCohesion holds."

	g := testGenerator(t, structured, research, []string{"https://cited.example.org"})

	brief, err := g.Generate(context.Background(), models.SectorDefense, "2026-08-30")
	require.NoError(t, err)

	assert.Equal(t, models.SectorDefense, brief.Sector)
	assert.Equal(t, "2026-08-30", brief.Date)
	assert.Equal(t, "Spending rose across the alliance.", brief.ExecutiveSummary)
	assert.Equal(t, []string{"Budget approved.", "New contract signed."}, brief.DevelopmentsList())
	assert.Equal(t, "Primes rallied.", brief.MarketImpact)
	assert.Equal(t, "Cohesion holds.", brief.GeopoliticalCtx)
	assert.Equal(t, []string{"https://cited.example.org", "https://example.com/report"}, brief.ReferencesList())
	assert.NotEqual(t, models.GeneratedByFallback, brief.GeneratedBy)
}

func TestGenerateUnknownSector(t *testing.T) {
	g := testGenerator(t, "x", "y", nil)
	_, err := g.Generate(context.Background(), "crypto", "2026-08-30")
	assert.Error(t, err)
}

func TestGenerateResearchFailureAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	g := NewBriefGeneratorWith(
		NewOpenAIClientWith("test-key", srv.URL, "gpt-4o", 5*time.Second),
		NewPerplexityClientWith("test-key", srv.URL, "sonar-pro", 5*time.Second),
	)

	_, err := g.Generate(context.Background(), models.SectorEnergy, "2026-08-30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "research step failed")
}

func TestGenerateMissingApiKey(t *testing.T) {
	g := NewBriefGeneratorWith(
		NewOpenAIClientWith("", "http://localhost:1", "gpt-4o", time.Second),
		NewPerplexityClientWith("", "http://localhost:1", "sonar-pro", time.Second),
	)
	_, err := g.Generate(context.Background(), models.SectorHealth, "2026-08-30")
	assert.Error(t, err)
}

func TestFallbackBrief(t *testing.T) {
	brief := FallbackBrief(models.SectorHealth, "2026-08-30")

	assert.Equal(t, models.GeneratedByFallback, brief.GeneratedBy)
	assert.NotEmpty(t, brief.ExecutiveSummary)
	assert.NotEmpty(t, brief.DevelopmentsList())
	assert.Empty(t, brief.ReferencesList())
}

func TestUpsertBriefIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first := FallbackBrief(models.SectorDefense, "2026-08-30")
	require.NoError(t, UpsertBrief(db, first))

	second := FallbackBrief(models.SectorDefense, "2026-08-30")
	second.ExecutiveSummary = "Updated summary"
	require.NoError(t, UpsertBrief(db, second))

	var count int64
	db.Model(&models.DailyBrief{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var stored models.DailyBrief
	require.NoError(t, db.Where("sector = ? AND date = ?", models.SectorDefense, "2026-08-30").First(&stored).Error)
	assert.Equal(t, "Updated summary", stored.ExecutiveSummary)
}

func TestUpsertBriefSeparateKeys(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, UpsertBrief(db, FallbackBrief(models.SectorDefense, "2026-08-29")))
	require.NoError(t, UpsertBrief(db, FallbackBrief(models.SectorDefense, "2026-08-30")))
	require.NoError(t, UpsertBrief(db, FallbackBrief(models.SectorEnergy, "2026-08-30")))

	var count int64
	db.Model(&models.DailyBrief{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestGetOrGenerateBriefCacheHit(t *testing.T) {
	db := setupTestDB(t)

	cached := FallbackBrief(models.SectorEnergy, time.Now().UTC().Format("2006-01-02"))
	cached.Title = "Cached title"
	require.NoError(t, UpsertBrief(db, cached))

	// Generator with unreachable upstreams: a cache hit must not call them
	g := NewBriefGeneratorWith(
		NewOpenAIClientWith("k", "http://localhost:1", "gpt-4o", time.Second),
		NewPerplexityClientWith("k", "http://localhost:1", "sonar-pro", time.Second),
	)

	brief, err := GetOrGenerateBrief(db, g, models.SectorEnergy, cached.Date)
	require.NoError(t, err)
	assert.Equal(t, "Cached title", brief.Title)
}

func TestGetOrGenerateBriefFallsBackOnPipelineFailure(t *testing.T) {
	db := setupTestDB(t)

	g := NewBriefGeneratorWith(
		NewOpenAIClientWith("k", "http://localhost:1", "gpt-4o", time.Second),
		NewPerplexityClientWith("k", "http://localhost:1", "sonar-pro", time.Second),
	)

	brief, err := GetOrGenerateBrief(db, g, models.SectorDefense, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, models.GeneratedByFallback, brief.GeneratedBy)

	// The fallback is cached like any generated brief
	var count int64
	db.Model(&models.DailyBrief{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGenerateDailyBriefsCoversAllSectors(t *testing.T) {
	db := setupTestDB(t)

	g := NewBriefGeneratorWith(
		NewOpenAIClientWith("k", "http://localhost:1", "gpt-4o", time.Second),
		NewPerplexityClientWith("k", "http://localhost:1", "sonar-pro", time.Second),
	)

	GenerateDailyBriefs(db, g)

	var count int64
	db.Model(&models.DailyBrief{}).Count(&count)
	assert.Equal(t, int64(len(models.AllSectors())), count)
}

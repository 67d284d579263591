package utils

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/piotrniepolak/watchtower2-sub003/config"
	"github.com/piotrniepolak/watchtower2-sub003/models"
)

const (
	researchSystemPrompt = "You are a research analyst. Report today's most significant developments in the requested sector with inline numeric citations."

	structureSystemPrompt = "You are an intelligence analyst. Restructure the provided research into exactly four sections with these markdown headers: " +
		"## Executive Summary, ## Key Developments, ## Market Impact, ## Geopolitical Analysis. " +
		"Key Developments must be a numbered list of short factual items."
)

type sectorProfile struct {
	Name           string
	ResearchPrompt string

	FallbackSummary      string
	FallbackDevelopments []string
	FallbackImpact       string
	FallbackAnalysis     string
}

var sectorProfiles = map[string]sectorProfile{
	models.SectorDefense: {
		Name:           "Defense",
		ResearchPrompt: "Summarize today's most significant global defense and aerospace developments: procurement decisions, conflict updates, defense contractor news, and military technology announcements.",
		FallbackSummary: "Global defense activity remains elevated, with sustained procurement programs across NATO members " +
			"and the Indo-Pacific region. Major contractors continue to report strong order backlogs.",
		FallbackDevelopments: []string{
			"NATO members continue multi-year procurement commitments under existing framework agreements.",
			"Major defense contractors maintain record order backlogs across air, land and naval programs.",
			"Ongoing regional conflicts sustain demand for munitions and air-defense systems.",
		},
		FallbackImpact:   "Defense sector equities remain supported by long-cycle government contracts and elevated defense budgets.",
		FallbackAnalysis: "Strategic competition between major powers continues to drive defense modernization programs worldwide.",
	},
	models.SectorHealth: {
		Name:           "Pharmaceutical",
		ResearchPrompt: "Summarize today's most significant global pharmaceutical and public-health developments: drug approvals, clinical trial results, regulatory actions, and disease outbreak updates.",
		FallbackSummary: "The pharmaceutical sector continues steady pipeline progression, with regulators processing " +
			"a consistent volume of approvals and public-health agencies monitoring ongoing outbreaks.",
		FallbackDevelopments: []string{
			"Regulatory agencies continue routine review cycles for late-stage drug candidates.",
			"Large-cap pharmaceutical companies report stable pipeline progression.",
			"Public-health agencies maintain surveillance of ongoing regional outbreaks.",
		},
		FallbackImpact:   "Pharmaceutical equities trade on pipeline milestones and patent-cliff positioning.",
		FallbackAnalysis: "Global health policy continues to balance access, pricing pressure and innovation incentives.",
	},
	models.SectorEnergy: {
		Name:           "Energy",
		ResearchPrompt: "Summarize today's most significant global energy developments: oil and gas prices, OPEC decisions, renewable projects, grid infrastructure, and energy policy changes.",
		FallbackSummary: "Energy markets remain range-bound, with supply-side discipline from major producers offsetting " +
			"demand uncertainty. Renewable buildout continues at a steady pace.",
		FallbackDevelopments: []string{
			"Crude benchmarks trade within their recent range amid balanced supply and demand signals.",
			"Major producers maintain announced output targets.",
			"Utility-scale renewable and grid-storage projects continue commissioning on schedule.",
		},
		FallbackImpact:   "Integrated energy majors remain supported by disciplined capital allocation and stable commodity prices.",
		FallbackAnalysis: "Energy security considerations continue to shape trade flows and long-term infrastructure investment.",
	},
}

// BriefGenerator runs the daily brief pipeline: research via Perplexity,
// restructuring via OpenAI, regex parsing into the four-step form
type BriefGenerator struct {
	openai     *OpenAIClient
	perplexity *PerplexityClient
}

// NewBriefGenerator creates a generator with clients from application config
func NewBriefGenerator() *BriefGenerator {
	return &BriefGenerator{
		openai:     NewOpenAIClient(),
		perplexity: NewPerplexityClient(),
	}
}

// NewBriefGeneratorWith creates a generator with explicit clients, used in tests
func NewBriefGeneratorWith(openai *OpenAIClient, perplexity *PerplexityClient) *BriefGenerator {
	return &BriefGenerator{openai: openai, perplexity: perplexity}
}

// Generate runs the full pipeline for one sector and date. Any failing step
// aborts the pipeline; the caller decides whether to fall back.
func (g *BriefGenerator) Generate(ctx context.Context, sector, date string) (*models.DailyBrief, error) {
	profile, ok := sectorProfiles[sector]
	if !ok {
		return nil, fmt.Errorf("unknown sector: %s", sector)
	}

	research, err := g.perplexity.Research(ctx, researchSystemPrompt, profile.ResearchPrompt)
	if err != nil {
		return nil, fmt.Errorf("research step failed: %v", err)
	}

	structured, err := g.openai.Complete(ctx, structureSystemPrompt, research.Content)
	if err != nil {
		return nil, fmt.Errorf("structuring step failed: %v", err)
	}

	summary := ExtractSection(structured, "Executive Summary")
	developments := ExtractListItems(ExtractSection(structured, "Key Developments"), MaxKeyDevelopments)
	impact := ExtractSection(structured, "Market Impact")
	analysis := ExtractSection(structured, "Geopolitical Analysis")

	references := research.Citations
	for _, u := range ExtractURLs(research.Content) {
		if !containsString(references, u) {
			references = append(references, u)
		}
	}

	brief := &models.DailyBrief{
		Sector:           sector,
		Date:             date,
		Title:            fmt.Sprintf("%s Intelligence Brief: %s", profile.Name, date),
		ExecutiveSummary: StripCitations(summary),
		MarketImpact:     StripCitations(impact),
		GeopoliticalCtx:  StripCitations(analysis),
		GeneratedBy:      config.AppConfig.OpenAIModel,
	}
	brief.SetDevelopments(developments)
	brief.SetReferences(references)

	return brief, nil
}

// FallbackBrief returns the canned brief served when the pipeline fails
func FallbackBrief(sector, date string) *models.DailyBrief {
	profile, ok := sectorProfiles[sector]
	if !ok {
		profile = sectorProfile{Name: sector}
	}

	brief := &models.DailyBrief{
		Sector:           sector,
		Date:             date,
		Title:            fmt.Sprintf("%s Intelligence Brief: %s", profile.Name, date),
		ExecutiveSummary: profile.FallbackSummary,
		MarketImpact:     profile.FallbackImpact,
		GeopoliticalCtx:  profile.FallbackAnalysis,
		GeneratedBy:      models.GeneratedByFallback,
	}
	brief.SetDevelopments(profile.FallbackDevelopments)
	brief.SetReferences([]string{})
	return brief
}

// UpsertBrief stores the brief, updating in place when a row already exists
// for the same sector and date. At most one row per (sector, date) survives.
func UpsertBrief(db *gorm.DB, brief *models.DailyBrief) error {
	var existing models.DailyBrief
	err := db.Where("sector = ? AND date = ?", brief.Sector, brief.Date).First(&existing).Error
	if err == nil {
		brief.ID = existing.ID
		brief.CreatedAt = existing.CreatedAt
		return db.Save(brief).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(brief).Error
}

// GetOrGenerateBrief returns the cached brief for (sector, date), running the
// pipeline on a cache miss. A pipeline failure stores and returns the
// sector's fallback brief instead of an error.
func GetOrGenerateBrief(db *gorm.DB, g *BriefGenerator, sector, date string) (*models.DailyBrief, error) {
	var cached models.DailyBrief
	err := db.Where("sector = ? AND date = ?", sector, date).First(&cached).Error
	if err == nil {
		return &cached, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return RegenerateBrief(db, g, sector, date)
}

// RegenerateBrief forces a pipeline run and upserts the result, falling back
// to canned content when the pipeline fails
func RegenerateBrief(db *gorm.DB, g *BriefGenerator, sector, date string) (*models.DailyBrief, error) {
	brief, err := g.Generate(context.Background(), sector, date)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"sector": sector,
			"date":   date,
		}).Warnf("Brief pipeline failed, serving fallback: %v", err)
		brief = FallbackBrief(sector, date)
	}
	if err := UpsertBrief(db, brief); err != nil {
		return nil, err
	}
	return brief, nil
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// GeneratedByFallback marks briefs served from canned content after a
// pipeline failure
const GeneratedByFallback = "fallback"

type DailyBrief struct {
	gorm.Model
	Sector string `gorm:"index:idx_brief_sector_date,unique;not null" json:"sector"`
	Date   string `gorm:"index:idx_brief_sector_date,unique;not null" json:"date"` // YYYY-MM-DD

	Title            string `gorm:"not null" json:"title"`
	ExecutiveSummary string `json:"executiveSummary"`
	KeyDevelopments  string `json:"-"` // JSON array of strings
	MarketImpact     string `json:"marketImpact"`
	GeopoliticalCtx  string `json:"geopoliticalAnalysis"`
	References       string `json:"-"` // JSON array of source URLs

	GeneratedBy string `json:"generatedBy"` // model name or "fallback"
}

// DevelopmentsList decodes the stored key developments
func (b *DailyBrief) DevelopmentsList() []string {
	return decodeStringList(b.KeyDevelopments)
}

// ReferencesList decodes the stored reference URLs
func (b *DailyBrief) ReferencesList() []string {
	return decodeStringList(b.References)
}

// SetDevelopments encodes the key developments for storage
func (b *DailyBrief) SetDevelopments(items []string) {
	b.KeyDevelopments = encodeStringList(items)
}

// SetReferences encodes the reference URLs for storage
func (b *DailyBrief) SetReferences(items []string) {
	b.References = encodeStringList(items)
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	return items
}

func encodeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return string(data)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleStructured = `## Executive Summary
Defense spending accelerated across NATO members this week [1].

## Key Developments
1. Poland signed a framework agreement for 96 attack helicopters [1].
2. Lockheed Martin raised full-year guidance [2].
- A carrier group deployed to the eastern Mediterranean [3].

## Market Impact
Defense primes outperformed the broader index by 2.1% [2].

## Geopolitical Analysis
Alliance cohesion remains the dominant theme of the quarter.
`

func TestExtractSectionHashHeaders(t *testing.T) {
	summary := ExtractSection(sampleStructured, "Executive Summary")
	assert.Equal(t, "Defense spending accelerated across NATO members this week [1].", summary)

	impact := ExtractSection(sampleStructured, "Market Impact")
	assert.Equal(t, "Defense primes outperformed the broader index by 2.1% [2].", impact)
}

func TestExtractSectionCaseInsensitive(t *testing.T) {
	got := ExtractSection(sampleStructured, "executive summary")
	assert.Contains(t, got, "Defense spending accelerated")
}

func TestExtractSectionBoldAndNumberedHeaders(t *testing.T) {
	text := "**Executive Summary**: quiet week.\n\n1. Market Impact\nFlat trading.\n"

	assert.Equal(t, "quiet week.", ExtractSection(text, "Executive Summary"))
	assert.Equal(t, "Flat trading.", ExtractSection(text, "Market Impact"))
}

func TestExtractSectionMissingReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", ExtractSection(sampleStructured, "Nonexistent Section"))
	assert.Equal(t, "", ExtractSection("", "Executive Summary"))
}

func TestExtractSectionDoesNotMatchRunningText(t *testing.T) {
	text := "The market impact was severe last year.\n\n## Market Impact\nActual section body.\n"
	assert.Equal(t, "Actual section body.", ExtractSection(text, "Market Impact"))
}

func TestExtractSectionStopsAtNextHeader(t *testing.T) {
	summary := ExtractSection(sampleStructured, "Executive Summary")
	assert.NotContains(t, summary, "Poland")
}

func TestExtractListItems(t *testing.T) {
	section := ExtractSection(sampleStructured, "Key Developments")
	items := ExtractListItems(section, 8)

	assert.Len(t, items, 3)
	assert.Equal(t, "Poland signed a framework agreement for 96 attack helicopters.", items[0])
	assert.Equal(t, "Lockheed Martin raised full-year guidance.", items[1])
	assert.Equal(t, "A carrier group deployed to the eastern Mediterranean.", items[2])
}

func TestExtractListItemsCap(t *testing.T) {
	section := "1. a\n2. b\n3. c\n4. d\n5. e\n6. f\n7. g\n8. h\n9. i\n10. j\n"
	items := ExtractListItems(section, MaxKeyDevelopments)
	assert.Len(t, items, MaxKeyDevelopments)
}

func TestExtractListItemsPlainTextFallback(t *testing.T) {
	items := ExtractListItems("A single paragraph\nwith no list markers [4].", 8)
	assert.Equal(t, []string{"A single paragraph with no list markers."}, items)
}

func TestExtractListItemsEmpty(t *testing.T) {
	assert.Empty(t, ExtractListItems("", 8))
	assert.Empty(t, ExtractListItems("   \n  \n", 8))
}

func TestStripCitations(t *testing.T) {
	assert.Equal(t, "Spending rose sharply.", StripCitations("Spending rose [1] sharply. [12]"))
	assert.Equal(t, "No citations here", StripCitations("No citations here"))
}

func TestExtractURLs(t *testing.T) {
	text := "See https://example.com/report and (https://news.example.org/a), " +
		"also https://example.com/report again."
	urls := ExtractURLs(text)

	assert.Equal(t, []string{"https://example.com/report", "https://news.example.org/a"}, urls)
}

func TestExtractURLsNone(t *testing.T) {
	assert.Empty(t, ExtractURLs("no links in this text"))
}

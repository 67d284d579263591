package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piotrniepolak/watchtower2-sub003/models"
)

const sampleQuizJSON = `[
  {"question": "Which country signed the helicopter deal?",
   "options": ["Poland", "France", "Japan", "Brazil"],
   "correctIndex": 0,
   "explanation": "Poland signed the framework agreement."},
  {"question": "What did Lockheed Martin do?",
   "options": ["Cut guidance", "Raised guidance", "Filed for bankruptcy", "Delisted"],
   "correctIndex": 1,
   "explanation": "Guidance was raised."}
]`

func TestParseQuizJSON(t *testing.T) {
	questions := parseQuizJSON(sampleQuizJSON, models.SectorDefense, "2026-08-30", 5)

	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].Ordinal)
	assert.Equal(t, 2, questions[1].Ordinal)
	assert.Equal(t, "Which country signed the helicopter deal?", questions[0].Question)
	assert.Equal(t, []string{"Poland", "France", "Japan", "Brazil"}, questions[0].OptionsList())
	assert.Equal(t, 0, questions[0].CorrectIndex)
	assert.Equal(t, 1, questions[1].CorrectIndex)
}

func TestParseQuizJSONWithCodeFence(t *testing.T) {
	fenced := "```json\n" + sampleQuizJSON + "\n```"
	questions := parseQuizJSON(fenced, models.SectorDefense, "2026-08-30", 5)
	assert.Len(t, questions, 2)
}

func TestParseQuizJSONWithSurroundingProse(t *testing.T) {
	wrapped := "Here are your questions:\n" + sampleQuizJSON + "\nEnjoy!"
	questions := parseQuizJSON(wrapped, models.SectorDefense, "2026-08-30", 5)
	assert.Len(t, questions, 2)
}

func TestParseQuizJSONSkipsMalformed(t *testing.T) {
	raw := `[
  {"question": "", "options": ["a","b"], "correctIndex": 0},
  {"question": "only one option", "options": ["a"], "correctIndex": 0},
  {"question": "index out of range", "options": ["a","b"], "correctIndex": 5},
  {"question": "valid", "options": ["a","b"], "correctIndex": 1, "explanation": "b wins"}
]`
	questions := parseQuizJSON(raw, models.SectorEnergy, "2026-08-30", 5)

	require.Len(t, questions, 1)
	assert.Equal(t, "valid", questions[0].Question)
	assert.Equal(t, 1, questions[0].Ordinal)
}

func TestParseQuizJSONGarbage(t *testing.T) {
	assert.Empty(t, parseQuizJSON("not json at all", models.SectorDefense, "2026-08-30", 5))
	assert.Empty(t, parseQuizJSON("", models.SectorDefense, "2026-08-30", 5))
}

func TestParseQuizJSONRespectsMax(t *testing.T) {
	questions := parseQuizJSON(sampleQuizJSON, models.SectorDefense, "2026-08-30", 1)
	assert.Len(t, questions, 1)
}

func TestQuizGeneratorFromLLM(t *testing.T) {
	srv := fakeChatServer(t, sampleQuizJSON, nil)
	g := NewQuizGeneratorWith(NewOpenAIClientWith("k", srv.URL, "gpt-4o", 5*time.Second))

	brief := FallbackBrief(models.SectorDefense, "2026-08-30")
	questions, err := g.Generate(context.Background(), brief, 5)

	require.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.Equal(t, models.SectorDefense, questions[0].Sector)
	assert.Equal(t, "2026-08-30", questions[0].Date)
}

func TestQuizGeneratorRejectsUnusableResponse(t *testing.T) {
	srv := fakeChatServer(t, "I cannot write a quiz today.", nil)
	g := NewQuizGeneratorWith(NewOpenAIClientWith("k", srv.URL, "gpt-4o", 5*time.Second))

	brief := FallbackBrief(models.SectorDefense, "2026-08-30")
	_, err := g.Generate(context.Background(), brief, 5)
	assert.Error(t, err)
}

func TestFallbackQuiz(t *testing.T) {
	questions := FallbackQuiz(models.SectorEnergy, "2026-08-30", 3)

	require.Len(t, questions, 3)
	for i, q := range questions {
		assert.Equal(t, i+1, q.Ordinal)
		assert.True(t, len(q.OptionsList()) >= 2)
		assert.True(t, q.CorrectIndex < len(q.OptionsList()))
	}
}

func TestGetOrGenerateQuizStoresOnce(t *testing.T) {
	db := setupTestDB(t)

	bg := NewBriefGeneratorWith(
		NewOpenAIClientWith("k", "http://localhost:1", "gpt-4o", time.Second),
		NewPerplexityClientWith("k", "http://localhost:1", "sonar-pro", time.Second),
	)
	srv := fakeChatServer(t, sampleQuizJSON, nil)
	qg := NewQuizGeneratorWith(NewOpenAIClientWith("k", srv.URL, "gpt-4o", 5*time.Second))

	first, err := GetOrGenerateQuiz(db, bg, qg, models.SectorDefense, "2026-08-30", 5)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := GetOrGenerateQuiz(db, bg, qg, models.SectorDefense, "2026-08-30", 5)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	var count int64
	db.Model(&models.QuizQuestion{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestGetOrGenerateQuizFallsBack(t *testing.T) {
	db := setupTestDB(t)

	unreachable := NewOpenAIClientWith("k", "http://localhost:1", "gpt-4o", time.Second)
	bg := NewBriefGeneratorWith(unreachable, NewPerplexityClientWith("k", "http://localhost:1", "sonar-pro", time.Second))
	qg := NewQuizGeneratorWith(unreachable)

	questions, err := GetOrGenerateQuiz(db, bg, qg, models.SectorHealth, "2026-08-30", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, questions)
}

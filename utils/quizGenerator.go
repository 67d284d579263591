package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"

	"github.com/piotrniepolak/watchtower2-sub003/models"
)

const quizSystemPrompt = "You write daily news quizzes. Respond with a JSON array only, no prose. " +
	`Each element: {"question": string, "options": [4 strings], "correctIndex": int, "explanation": string}.`

// QuizGenerator turns a daily brief into multiple-choice questions
type QuizGenerator struct {
	openai *OpenAIClient
}

// NewQuizGenerator creates a generator with the config-driven OpenAI client
func NewQuizGenerator() *QuizGenerator {
	return &QuizGenerator{openai: NewOpenAIClient()}
}

// NewQuizGeneratorWith creates a generator with an explicit client, used in tests
func NewQuizGeneratorWith(openai *OpenAIClient) *QuizGenerator {
	return &QuizGenerator{openai: openai}
}

// Generate asks the LLM for count questions grounded in the brief
func (g *QuizGenerator) Generate(ctx context.Context, brief *models.DailyBrief, count int) ([]models.QuizQuestion, error) {
	prompt := fmt.Sprintf(
		"Write %d multiple-choice questions about this intelligence brief.\n\nSummary: %s\n\nKey developments:\n%s",
		count, brief.ExecutiveSummary, strings.Join(brief.DevelopmentsList(), "\n"),
	)

	raw, err := g.openai.Complete(ctx, quizSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %v", err)
	}

	questions := parseQuizJSON(raw, brief.Sector, brief.Date, count)
	if len(questions) == 0 {
		return nil, fmt.Errorf("no usable questions in LLM response")
	}
	return questions, nil
}

// parseQuizJSON extracts well-formed questions from the LLM response,
// tolerating markdown code fences and trailing prose around the array
func parseQuizJSON(raw, sector, date string, max int) []models.QuizQuestion {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end <= start {
		return nil
	}
	arr := gjson.Parse(cleaned[start : end+1])
	if !arr.IsArray() {
		return nil
	}

	var questions []models.QuizQuestion
	arr.ForEach(func(_, item gjson.Result) bool {
		if len(questions) >= max {
			return false
		}
		text := item.Get("question").String()
		correct := int(item.Get("correctIndex").Int())

		var options []string
		item.Get("options").ForEach(func(_, opt gjson.Result) bool {
			options = append(options, opt.String())
			return true
		})

		if text == "" || len(options) < 2 || correct < 0 || correct >= len(options) {
			return true // skip malformed entries
		}

		q := models.QuizQuestion{
			Sector:       sector,
			Date:         date,
			Ordinal:      len(questions) + 1,
			Question:     text,
			CorrectIndex: correct,
			Explanation:  item.Get("explanation").String(),
		}
		q.SetOptions(options)
		questions = append(questions, q)
		return true
	})

	return questions
}

// FallbackQuiz returns generic sector questions when generation fails
func FallbackQuiz(sector, date string, count int) []models.QuizQuestion {
	profile, ok := sectorProfiles[sector]
	if !ok {
		profile = sectorProfile{Name: sector}
	}

	templates := []struct {
		question    string
		options     []string
		correct     int
		explanation string
	}{
		{
			question:    fmt.Sprintf("Which theme dominates today's %s sector brief?", strings.ToLower(profile.Name)),
			options:     []string{"Sustained sector activity", "Sector-wide shutdown", "Complete market exit", "No reported activity"},
			correct:     0,
			explanation: "Fallback briefs summarize the sector's ongoing baseline activity.",
		},
		{
			question:    fmt.Sprintf("How are %s sector equities characterized in today's brief?", strings.ToLower(profile.Name)),
			options:     []string{"Unsupported and collapsing", "Supported by ongoing fundamentals", "Untraded", "Delisted"},
			correct:     1,
			explanation: "The market impact section points to supportive long-cycle fundamentals.",
		},
		{
			question:    "What produces the dashboard's daily intelligence briefs?",
			options:     []string{"Manual newsroom entry", "A research and structuring pipeline over external APIs", "Random text", "User submissions"},
			correct:     1,
			explanation: "Briefs are generated from external research APIs and cached per sector and day.",
		},
	}

	var questions []models.QuizQuestion
	for i := 0; i < count && i < len(templates); i++ {
		t := templates[i]
		q := models.QuizQuestion{
			Sector:       sector,
			Date:         date,
			Ordinal:      i + 1,
			Question:     t.question,
			CorrectIndex: t.correct,
			Explanation:  t.explanation,
		}
		q.SetOptions(t.options)
		questions = append(questions, q)
	}
	return questions
}

// GetOrGenerateQuiz returns the stored questions for (sector, date),
// generating and storing them from the daily brief on first request
func GetOrGenerateQuiz(db *gorm.DB, bg *BriefGenerator, qg *QuizGenerator, sector, date string, count int) ([]models.QuizQuestion, error) {
	var existing []models.QuizQuestion
	if err := db.Where("sector = ? AND date = ?", sector, date).
		Order("ordinal ASC").Find(&existing).Error; err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	brief, err := GetOrGenerateBrief(db, bg, sector, date)
	if err != nil {
		return nil, err
	}

	questions, err := qg.Generate(context.Background(), brief, count)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"sector": sector,
			"date":   date,
		}).Warnf("Quiz generation failed, serving fallback: %v", err)
		questions = FallbackQuiz(sector, date, count)
	}

	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			return nil, err
		}
	}
	return questions, nil
}

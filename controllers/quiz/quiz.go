package quizController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/piotrniepolak/watchtower2-sub003/config"
	"github.com/piotrniepolak/watchtower2-sub003/database"
	"github.com/piotrniepolak/watchtower2-sub003/middleware"
	"github.com/piotrniepolak/watchtower2-sub003/models"
	"github.com/piotrniepolak/watchtower2-sub003/utils"
)

// questionPayload hides the correct answer and explanation
func questionPayload(q *models.QuizQuestion) fiber.Map {
	return fiber.Map{
		"id":       q.ID,
		"sector":   q.Sector,
		"date":     q.Date,
		"ordinal":  q.Ordinal,
		"question": q.Question,
		"options":  q.OptionsList(),
	}
}

// GetTodayQuiz returns today's questions for a sector, generating them from
// the daily brief on first request
func GetTodayQuiz(c *fiber.Ctx) error {
	sector := c.Params("sector")
	if !models.ValidSector(sector) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown sector!", nil)
	}

	today := time.Now().UTC().Format("2006-01-02")
	questions, err := utils.GetOrGenerateQuiz(
		database.Database.Db,
		utils.NewBriefGenerator(),
		utils.NewQuizGenerator(),
		sector, today,
		config.AppConfig.QuizQuestions,
	)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load quiz!", nil)
	}

	payload := make([]fiber.Map, 0, len(questions))
	for i := range questions {
		payload = append(payload, questionPayload(&questions[i]))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched!", fiber.Map{
		"sector":    sector,
		"date":      today,
		"questions": payload,
	})
}

// SubmitAnswer records one response per question per username and returns
// the verdict with the explanation
func SubmitAnswer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question ID!", nil)
	}

	reqData := c.Locals("validatedSubmitAnswer").(*models.QuizResponse)

	var question models.QuizQuestion
	if err := database.Database.Db.First(&question, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if reqData.SelectedIndex < 0 || reqData.SelectedIndex >= len(question.OptionsList()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Selected option out of range!", nil)
	}

	var existing models.QuizResponse
	if err := database.Database.Db.
		Where("question_id = ? AND username = ?", question.ID, reqData.Username).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Question already answered!", nil)
	}

	reqData.QuestionID = question.ID
	reqData.IsCorrect = reqData.SelectedIndex == question.CorrectIndex

	if err := database.Database.Db.Create(reqData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record answer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer recorded!", fiber.Map{
		"isCorrect":    reqData.IsCorrect,
		"correctIndex": question.CorrectIndex,
		"explanation":  question.Explanation,
	})
}

// GetLeaderboard returns per-username correct answer counts for a sector
func GetLeaderboard(c *fiber.Ctx) error {
	sector := c.Params("sector")
	if !models.ValidSector(sector) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown sector!", nil)
	}

	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	type leaderboardRow struct {
		Username     string `json:"username"`
		CorrectCount int64  `json:"correctCount"`
		TotalCount   int64  `json:"totalCount"`
	}

	var rows []leaderboardRow
	err := database.Database.Db.
		Model(&models.QuizResponse{}).
		Select("quiz_responses.username, SUM(CASE WHEN quiz_responses.is_correct THEN 1 ELSE 0 END) AS correct_count, COUNT(*) AS total_count").
		Joins("JOIN quiz_questions ON quiz_questions.id = quiz_responses.question_id").
		Where("quiz_questions.sector = ?", sector).
		Group("quiz_responses.username").
		Order("correct_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched!", fiber.Map{
		"sector":      sector,
		"leaderboard": rows,
	})
}

package quizRoutes

import (
	"github.com/gofiber/fiber/v2"

	quizController "github.com/piotrniepolak/watchtower2-sub003/controllers/quiz"
	quizValidator "github.com/piotrniepolak/watchtower2-sub003/validators/quiz"
)

// SetupQuizRoutes sets up daily quiz routes
func SetupQuizRoutes(app *fiber.App) {
	group := app.Group("/api/quiz")

	group.Post("/questions/:id/answer", quizValidator.SubmitAnswer(), quizController.SubmitAnswer)
	group.Get("/:sector/today", quizController.GetTodayQuiz)
	group.Get("/:sector/leaderboard", quizController.GetLeaderboard)
}
